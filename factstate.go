package factdrill

import "time"

// Priority adjustments applied by RecordOutcome.
const (
	incorrectPenalty = 3
	slowPenalty      = 2
	correctDecay     = 1

	// SlowThreshold is the latency above which an answer counts as slow.
	SlowThreshold = 5 * time.Second
)

// FactState is the learning state of one fact within a session.
type FactState struct {
	Priority           int           `json:"priority"`            // >= 0; higher is asked more often.
	ConsecutiveCorrect int           `json:"consecutive_correct"` // reset on any wrong answer.
	LastLatency        time.Duration `json:"last_latency"`
	LastCorrect        bool          `json:"last_correct"`
}

// FactStore maps facts to their learning state. The zero value is not
// usable; create one with NewFactStore.
type FactStore struct {
	states map[Fact]FactState
}

// NewFactStore returns an empty store.
func NewFactStore() *FactStore {
	return &FactStore{states: make(map[Fact]FactState)}
}

// Get returns the state of f. ok is false if f has not been attempted since
// the last Clear.
func (s *FactStore) Get(f Fact) (FactState, bool) {
	st, ok := s.states[f]
	return st, ok
}

// RecordOutcome applies an answer to f:
//
//	correct:   streak+1, priority-1 (floored at 0)
//	incorrect: streak=0, priority+3
//	latency > SlowThreshold: priority+2 in either case
func (s *FactStore) RecordOutcome(f Fact, correct bool, latency time.Duration) {
	st := s.states[f]
	if correct {
		st.ConsecutiveCorrect++
		st.Priority = max(0, st.Priority-correctDecay)
	} else {
		st.ConsecutiveCorrect = 0
		st.Priority += incorrectPenalty
	}
	if latency > SlowThreshold {
		st.Priority += slowPenalty
	}
	st.LastLatency = latency
	st.LastCorrect = correct
	s.states[f] = st
}

// Clear forgets every fact.
func (s *FactStore) Clear() {
	clear(s.states)
}

// Len returns the number of facts with recorded state.
func (s *FactStore) Len() int {
	return len(s.states)
}

// Snapshot returns a copy of all recorded states.
func (s *FactStore) Snapshot() map[Fact]FactState {
	out := make(map[Fact]FactState, len(s.states))
	for f, st := range s.states {
		out[f] = st
	}
	return out
}

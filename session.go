package factdrill

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Session runs one drill: it selects problems, times answers, feeds outcomes
// back into the fact store and produces the final SessionResult.
//
// A Session is not safe for concurrent use.
type Session struct {
	engine  EngineConfig
	logger  *slog.Logger
	facts   *FactStore
	recent  *RecencyWindow
	sampler *Sampler

	phase     Phase
	id        string
	cfg       SessionConfig
	planned   int
	problems  []Problem
	idx       int
	startedAt time.Time
	deadline  time.Time // zero unless TimeBoxed.
	final     *SessionResult
	onFinish  []func(SessionResult)
}

// NewSession creates an idle Session from the given engine config.
// Zero-value fields are filled with defaults; negative values return an error.
func NewSession(cfg EngineConfig) (*Session, error) {
	ec, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	recent := NewRecencyWindow(ec.RecencySize)
	return &Session{
		engine:  ec,
		logger:  ec.Logger,
		facts:   NewFactStore(),
		recent:  recent,
		sampler: NewSampler(rand.New(rand.NewSource(ec.Seed)), recent),
	}, nil
}

// OnFinish registers fn to be called with the final result whenever the
// session finishes.
func (s *Session) OnFinish(fn func(SessionResult)) {
	s.onFinish = append(s.onFinish, fn)
}

// Start begins a new run from Idle or Finished. It clears all fact state and
// the recency window, then generates the problem sequence: ProblemCount
// problems, or the engine batch size for TimeBoxed sessions. With lazy
// generation only the first problem is drawn now.
func (s *Session) Start(cfg SessionConfig, now time.Time) error {
	if s.phase == Running {
		return ErrSessionRunning
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.normalized()

	s.facts.Clear()
	s.recent.Clear()
	s.cfg = cfg
	s.final = nil
	s.id = shortuuid.New()
	s.startedAt = now
	s.deadline = time.Time{}

	s.planned = cfg.ProblemCount
	if cfg.Mode == TimeBoxed {
		s.planned = s.engine.BatchSize
		s.deadline = now.Add(cfg.Duration())
	}

	n := s.planned
	if s.engine.LazyGeneration {
		n = 1
	}
	s.problems = make([]Problem, 0, s.planned)
	for i := 0; i < n; i++ {
		s.problems = append(s.problems, s.draw())
	}

	s.idx = 0
	s.problems[0].StartedAt = now
	s.phase = Running

	s.logger.Debug("session started",
		"session", s.id,
		"mode", cfg.Mode.String(),
		"operands", cfg.Operands,
		"planned", s.planned,
	)
	return nil
}

func (s *Session) draw() Problem {
	cands := Candidates(s.cfg.Operands, s.facts, s.engine.MasteryStreak)
	a, b := s.sampler.Select(cands, s.cfg.Operands)
	return newProblem(a, b)
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// ID returns the identifier of the current or last run, or "" before the
// first Start.
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration of the current or last run.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// Deadline returns the end of a TimeBoxed run, or the zero time.
func (s *Session) Deadline() time.Time {
	return s.deadline
}

// FactState returns the learning state of f in the current run.
func (s *Session) FactState(f Fact) (FactState, bool) {
	return s.facts.Get(f)
}

// Current returns a copy of the active problem, or nil when not running.
func (s *Session) Current() *Problem {
	if s.phase != Running {
		return nil
	}
	p := s.problems[s.idx]
	return &p
}

// SubmitAnswer records input as the answer to the active problem. Input
// that does not parse as an integer, including "", counts as incorrect.
//
// Only the first submission per problem is accepted. Later submissions, or
// submissions with no active problem, return a zero AnswerResult.
func (s *Session) SubmitAnswer(input string, now time.Time) AnswerResult {
	var answer *int
	if v, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		answer = &v
	}
	return s.complete(answer, false, now)
}

// Reveal completes the active problem without an answer, as when the reveal
// delay runs out. The problem counts as incorrect.
func (s *Session) Reveal(now time.Time) AnswerResult {
	return s.complete(nil, true, now)
}

func (s *Session) complete(answer *int, revealed bool, now time.Time) AnswerResult {
	if s.phase != Running {
		s.logger.Debug("answer ignored: no active problem", "phase", s.phase.String())
		return AnswerResult{}
	}
	p := &s.problems[s.idx]
	if p.Completed() {
		s.logger.Debug("answer ignored: problem already completed",
			"session", s.id,
			"index", s.idx,
		)
		return AnswerResult{}
	}

	p.UserAnswer = answer
	p.Revealed = revealed
	p.Correct = answer != nil && *answer == p.Answer
	p.CompletedAt = now
	elapsed := p.Elapsed()
	p.ElapsedSeconds = elapsed.Seconds()

	s.facts.RecordOutcome(p.Fact(), p.Correct, elapsed)

	return AnswerResult{Accepted: true, Correct: p.Correct, CorrectAnswer: p.Answer}
}

// Advance moves to the next problem and stamps its start time with now. It
// returns false, finishing the session, when no problem remains or the time
// budget of a TimeBoxed run has been used up.
func (s *Session) Advance(now time.Time) bool {
	if s.phase != Running {
		return false
	}
	if !s.deadline.IsZero() && !now.Before(s.deadline) {
		s.finish(now)
		return false
	}
	if s.engine.LazyGeneration && len(s.problems) < s.planned {
		s.problems = append(s.problems, s.draw())
	}
	if s.idx+1 >= len(s.problems) {
		s.finish(now)
		return false
	}
	s.idx++
	s.problems[s.idx].StartedAt = now
	return true
}

// Stop finishes a running session. On an idle or finished session it does
// nothing.
func (s *Session) Stop(now time.Time) {
	if s.phase != Running {
		return
	}
	s.finish(now)
}

func (s *Session) finish(now time.Time) {
	done := make([]Problem, 0, s.idx+1)
	for _, p := range s.problems {
		if p.Completed() {
			done = append(done, p)
		}
	}
	s.final = &SessionResult{
		ID:         s.id,
		Config:     s.cfg,
		StartedAt:  s.startedAt,
		FinishedAt: now,
		Problems:   done,
		Results:    Summarize(done),
	}
	s.phase = Finished

	s.logger.Debug("session finished",
		"session", s.id,
		"completed", len(done),
		"accuracy", fmt.Sprintf("%.1f", s.final.Results.Accuracy),
	)
	for _, fn := range s.onFinish {
		fn(*s.final)
	}
}

// Progress returns the 1-based position of the active problem and the
// planned total. When finished, Current is the number of completed problems.
func (s *Session) Progress() Progress {
	switch s.phase {
	case Running:
		return Progress{Current: s.idx + 1, Total: s.planned}
	case Finished:
		return Progress{Current: len(s.final.Problems), Total: s.planned}
	default:
		return Progress{}
	}
}

// Results summarizes the problems completed so far.
func (s *Session) Results() Results {
	if s.final != nil {
		return s.final.Results
	}
	return Summarize(s.problems)
}

// Final returns the finalized result. ok is false until the session has
// finished.
func (s *Session) Final() (SessionResult, bool) {
	if s.final == nil {
		return SessionResult{}, false
	}
	return *s.final, true
}

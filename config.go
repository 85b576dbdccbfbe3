package factdrill

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// DefaultBatchSize is the number of problems pre-generated for a time-boxed
// session.
const DefaultBatchSize = 100

// SessionConfig is the learner-facing configuration of one session. It is
// the settings record persisted per learner.
type SessionConfig struct {
	Operands           []int `json:"selected_numbers"`
	Mode               Mode  `json:"mode"`
	ProblemCount       int   `json:"problem_count"`    // FixedCount only.
	DurationMinutes    int   `json:"duration_minutes"` // TimeBoxed only.
	SingleAttempt      bool  `json:"single_attempt"`
	RevealAnswer       bool  `json:"reveal_answer"` // Show the answer if none is given in time.
	RevealDelaySeconds int   `json:"reveal_delay_seconds"`
}

// DefaultSessionConfig returns the settings a new learner starts with:
// all operands 1..10, ten problems, no delayed reveal.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Operands:           []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Mode:               FixedCount,
		ProblemCount:       10,
		DurationMinutes:    1,
		RevealDelaySeconds: 3,
	}
}

// Duration returns the time budget of a TimeBoxed session.
func (c SessionConfig) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// RevealDelay returns how long to wait before revealing the answer.
func (c SessionConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelaySeconds) * time.Second
}

// Validate reports the first problem with c, or nil.
func (c SessionConfig) Validate() error {
	if len(c.Operands) == 0 {
		return ErrEmptyOperands
	}
	for _, op := range c.Operands {
		if op < MinOperand || op > MaxOperand {
			return fmt.Errorf("%w: %d not in [%d, %d]", ErrOperandOutOfRange, op, MinOperand, MaxOperand)
		}
	}
	if !c.Mode.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	if c.Mode == FixedCount && c.ProblemCount <= 0 {
		return fmt.Errorf("%w: problem count %d must be positive", ErrInvalidConfig, c.ProblemCount)
	}
	if c.Mode == TimeBoxed && c.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration %d minutes must be positive", ErrInvalidConfig, c.DurationMinutes)
	}
	if c.RevealAnswer && c.RevealDelaySeconds <= 0 {
		return fmt.Errorf("%w: reveal delay %d seconds must be positive", ErrInvalidConfig, c.RevealDelaySeconds)
	}
	return nil
}

// normalized returns a copy of c with operands sorted and deduplicated.
func (c SessionConfig) normalized() SessionConfig {
	ops := slices.Clone(c.Operands)
	slices.Sort(ops)
	c.Operands = slices.Compact(ops)
	return c
}

// EngineConfig tunes the selection engine behind a Session.
// Zero values produce the defaults noted on each field.
type EngineConfig struct {
	RecencySize    int          `json:"recency_size"`    // zero → 5
	MasteryStreak  int          `json:"mastery_streak"`  // zero → 10
	BatchSize      int          `json:"batch_size"`      // zero → 100
	Seed           int64        `json:"seed"`            // zero → seeded from the clock
	LazyGeneration bool         `json:"lazy_generation"` // draw each problem on Advance instead of at Start
	Logger         *slog.Logger `json:"-"`               // nil → slog.Default()
}

func (c EngineConfig) withDefaults() (EngineConfig, error) {
	if c.RecencySize < 0 {
		return c, fmt.Errorf("%w: recency size %d must not be negative", ErrInvalidConfig, c.RecencySize)
	}
	if c.MasteryStreak < 0 {
		return c, fmt.Errorf("%w: mastery streak %d must not be negative", ErrInvalidConfig, c.MasteryStreak)
	}
	if c.BatchSize < 0 {
		return c, fmt.Errorf("%w: batch size %d must not be negative", ErrInvalidConfig, c.BatchSize)
	}
	if c.RecencySize == 0 {
		c.RecencySize = DefaultRecencySize
	}
	if c.MasteryStreak == 0 {
		c.MasteryStreak = DefaultMasteryStreak
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c, nil
}

package factdrill

import "time"

// Problem is one presented a×b question and, once answered, its outcome.
type Problem struct {
	A              int       `json:"a"`
	B              int       `json:"b"`
	Answer         int       `json:"answer"`
	UserAnswer     *int      `json:"user_answer,omitempty"` // nil if no valid answer was given.
	Correct        bool      `json:"correct"`
	Revealed       bool      `json:"revealed"` // answer shown after the reveal delay ran out.
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
}

func newProblem(a, b int) Problem {
	return Problem{A: a, B: b, Answer: a * b}
}

// Fact returns the normalized fact of the problem.
func (p Problem) Fact() Fact {
	return Normalize(p.A, p.B)
}

// Completed reports whether the problem has been answered or revealed.
func (p Problem) Completed() bool {
	return !p.CompletedAt.IsZero()
}

// Elapsed returns the time between presentation and completion.
func (p Problem) Elapsed() time.Duration {
	if !p.Completed() {
		return 0
	}
	return p.CompletedAt.Sub(p.StartedAt)
}

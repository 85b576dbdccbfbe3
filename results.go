package factdrill

import "time"

// Results summarizes the completed problems of a session.
type Results struct {
	TotalProblems    int     `json:"total_problems"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	Accuracy         float64 `json:"accuracy"`     // percent; 0 when TotalProblems is 0.
	TotalTime        float64 `json:"total_time"`   // seconds, summed per problem.
	AverageTime      float64 `json:"average_time"` // seconds per problem.
}

// Summarize computes Results over the completed problems in ps.
// Problems without a completion time are ignored.
func Summarize(ps []Problem) Results {
	var r Results
	for _, p := range ps {
		if !p.Completed() {
			continue
		}
		r.TotalProblems++
		if p.Correct {
			r.CorrectAnswers++
		}
		r.TotalTime += p.ElapsedSeconds
	}
	r.IncorrectAnswers = r.TotalProblems - r.CorrectAnswers
	if r.TotalProblems > 0 {
		r.Accuracy = float64(r.CorrectAnswers) / float64(r.TotalProblems) * 100
		r.AverageTime = r.TotalTime / float64(r.TotalProblems)
	}
	return r
}

// SessionResult is the finalized record of a session handed to the
// statistics collaborator.
type SessionResult struct {
	ID         string        `json:"id"`
	Config     SessionConfig `json:"config"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Problems   []Problem     `json:"problems"` // completed problems only.
	Results    Results       `json:"results"`
}

// AnswerResult is returned by Session.SubmitAnswer and Session.Reveal.
// Accepted is false when there was no unanswered active problem; the other
// fields are then zero.
type AnswerResult struct {
	Accepted      bool `json:"accepted"`
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
}

// Progress reports the position within a running session.
type Progress struct {
	Current int `json:"current"` // 1-based index of the active problem.
	Total   int `json:"total"`
}

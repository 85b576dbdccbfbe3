package stats

import (
	"slices"
	"time"

	"github.com/sky-flux/factdrill"
)

// ProblemStat accumulates attempts at one fact within a day.
type ProblemStat struct {
	Lo              int     `json:"lo"`
	Hi              int     `json:"hi"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	TotalTime       float64 `json:"total_time"`   // seconds
	AverageTime     float64 `json:"average_time"` // seconds per attempt
}

// Fact returns the fact the stat belongs to.
func (p ProblemStat) Fact() factdrill.Fact {
	return factdrill.Fact{Lo: p.Lo, Hi: p.Hi}
}

// Accuracy returns the percentage of correct attempts, 0 with no attempts.
func (p ProblemStat) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts) * 100
}

func (p *ProblemStat) add(correct bool, seconds float64) {
	p.TotalAttempts++
	if correct {
		p.CorrectAttempts++
	}
	p.TotalTime += seconds
	p.AverageTime = p.TotalTime / float64(p.TotalAttempts)
}

func (p *ProblemStat) merge(o ProblemStat) {
	p.TotalAttempts += o.TotalAttempts
	p.CorrectAttempts += o.CorrectAttempts
	p.TotalTime += o.TotalTime
	if p.TotalAttempts > 0 {
		p.AverageTime = p.TotalTime / float64(p.TotalAttempts)
	}
}

// DailyStats aggregates every session finished on one calendar day.
type DailyStats struct {
	Date           string        `json:"date"` // YYYY-MM-DD
	TotalProblems  int           `json:"total_problems"`
	CorrectAnswers int           `json:"correct_answers"`
	Accuracy       float64       `json:"accuracy"`
	TotalTime      float64       `json:"total_time"`
	AverageTime    float64       `json:"average_time"`
	Sessions       int           `json:"sessions"`
	Problems       []ProblemStat `json:"problems"` // sorted by (Lo, Hi)
}

// UserStats is the persisted statistics record of one learner.
type UserStats struct {
	UserID string                `json:"user_id"`
	Days   map[string]DailyStats `json:"daily_stats"`
}

// DayKey returns the YYYY-MM-DD bucket of t in t's location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// Add folds the completed problems into d. Problems without a completion
// time are skipped; a×b and b×a land in the same ProblemStat.
func (d *DailyStats) Add(problems []factdrill.Problem) {
	idx := make(map[factdrill.Fact]int, len(d.Problems))
	for i, p := range d.Problems {
		idx[p.Fact()] = i
	}

	for _, p := range problems {
		if !p.Completed() {
			continue
		}
		f := p.Fact()
		i, ok := idx[f]
		if !ok {
			i = len(d.Problems)
			idx[f] = i
			d.Problems = append(d.Problems, ProblemStat{Lo: f.Lo, Hi: f.Hi})
		}
		d.Problems[i].add(p.Correct, p.ElapsedSeconds)

		d.TotalProblems++
		if p.Correct {
			d.CorrectAnswers++
		}
		d.TotalTime += p.ElapsedSeconds
	}

	if d.TotalProblems > 0 {
		d.Accuracy = float64(d.CorrectAnswers) / float64(d.TotalProblems) * 100
		d.AverageTime = d.TotalTime / float64(d.TotalProblems)
	}
	sortProblems(d.Problems)
}

func sortProblems(ps []ProblemStat) {
	slices.SortFunc(ps, func(a, b ProblemStat) int {
		if a.Lo != b.Lo {
			return a.Lo - b.Lo
		}
		return a.Hi - b.Hi
	})
}

// Dates returns the recorded days, newest first.
func (u UserStats) Dates() []string {
	dates := make([]string, 0, len(u.Days))
	for d := range u.Days {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	slices.Reverse(dates)
	return dates
}

// Merge combines the per-fact stats of the given days, or of every day when
// none are named. Unknown dates are ignored.
func (u UserStats) Merge(dates ...string) []ProblemStat {
	if len(dates) == 0 {
		dates = u.Dates()
	}
	byFact := make(map[factdrill.Fact]*ProblemStat)
	for _, date := range dates {
		day, ok := u.Days[date]
		if !ok {
			continue
		}
		for _, p := range day.Problems {
			acc, ok := byFact[p.Fact()]
			if !ok {
				acc = &ProblemStat{Lo: p.Lo, Hi: p.Hi}
				byFact[p.Fact()] = acc
			}
			acc.merge(p)
		}
	}

	out := make([]ProblemStat, 0, len(byFact))
	for _, p := range byFact {
		out = append(out, *p)
	}
	sortProblems(out)
	return out
}

// Streak counts consecutive practice days ending today, or yesterday if
// there was no practice yet today.
func (u UserStats) Streak(today time.Time) int {
	check := today
	if _, ok := u.Days[DayKey(check)]; !ok {
		check = check.AddDate(0, 0, -1)
	}
	n := 0
	for {
		if _, ok := u.Days[DayKey(check)]; !ok {
			return n
		}
		n++
		check = check.AddDate(0, 0, -1)
	}
}

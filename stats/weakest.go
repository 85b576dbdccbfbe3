package stats

import (
	"cmp"
	"slices"
)

// Weakest returns up to n facts from ps ordered weakest first: lowest
// accuracy, then slowest average time, then fewest attempts. Facts with no
// attempts are skipped. A non-positive n returns all of them.
func Weakest(ps []ProblemStat, n int) []ProblemStat {
	out := make([]ProblemStat, 0, len(ps))
	for _, p := range ps {
		if p.TotalAttempts > 0 {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b ProblemStat) int {
		if c := cmp.Compare(a.Accuracy(), b.Accuracy()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.AverageTime, a.AverageTime); c != 0 {
			return c
		}
		return cmp.Compare(a.TotalAttempts, b.TotalAttempts)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

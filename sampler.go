package factdrill

import (
	"math/rand"
	"sort"
)

// Sampler draws candidates with probability proportional to their weight
// and records each draw in a RecencyWindow.
type Sampler struct {
	rng    *rand.Rand
	recent *RecencyWindow
}

// NewSampler returns a Sampler drawing from rng and pushing into recent.
func NewSampler(rng *rand.Rand, recent *RecencyWindow) *Sampler {
	return &Sampler{rng: rng, recent: recent}
}

// weight returns priority+1, doubled when the fact is not in the recency
// window. Negative results are clamped to zero.
func (s *Sampler) weight(c WeightedFact) int64 {
	w := int64(c.Priority) + 1
	if !s.recent.Contains(c.Fact) {
		w *= 2
	}
	return max(w, 0)
}

// Select picks one candidate and returns its operands in presentation order.
//
// With no candidates it picks an operand uniformly from operands and a
// multiplier uniformly from 1..10. When every candidate has zero weight it
// picks uniformly among the candidates. Select never fails.
func (s *Sampler) Select(cands []WeightedFact, operands []int) (a, b int) {
	if len(cands) == 0 {
		a, b = s.uniform(operands)
		s.recent.Push(Normalize(a, b))
		return a, b
	}

	// Cumulative weights; the draw is the first index whose sum exceeds r.
	cum := make([]int64, len(cands))
	var total int64
	for i, c := range cands {
		total += s.weight(c)
		cum[i] = total
	}

	var i int
	if total == 0 {
		i = s.rng.Intn(len(cands))
	} else {
		r := s.rng.Int63n(total)
		i = sort.Search(len(cum), func(j int) bool { return cum[j] > r })
	}

	c := cands[i]
	s.recent.Push(c.Fact)
	return c.A, c.B
}

func (s *Sampler) uniform(operands []int) (a, b int) {
	if len(operands) == 0 {
		a = MinOperand + s.rng.Intn(MaxOperand)
	} else {
		a = operands[s.rng.Intn(len(operands))]
	}
	b = MinOperand + s.rng.Intn(MaxOperand)
	return a, b
}

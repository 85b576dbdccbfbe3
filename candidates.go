package factdrill

// Candidate generation constants.
const (
	// DefaultMasteryStreak is the consecutive-correct count at which a fact
	// is retired for the rest of the session.
	DefaultMasteryStreak = 10

	// trivialPriority is the starting priority of an unseen ×1, ×2 or ×10 fact.
	trivialPriority = -2
)

// WeightedFact is one selectable problem. A and B keep presentation order.
type WeightedFact struct {
	A        int  `json:"a"`
	B        int  `json:"b"`
	Fact     Fact `json:"fact"`
	Priority int  `json:"priority"`
}

// Candidates enumerates a×b for every a in operands and b in 1..10.
//
// Facts whose streak has reached masteryStreak are left out. Unseen facts
// with a ×1, ×2 or ×10 multiplier start at priority -2; every other fact
// uses its stored priority, or 0 if unseen. Candidates are emitted per
// ordered pair, so a fact reachable from two selected operands appears
// twice. A non-positive masteryStreak means DefaultMasteryStreak.
func Candidates(operands []int, facts *FactStore, masteryStreak int) []WeightedFact {
	if len(operands) == 0 {
		return nil
	}
	if masteryStreak <= 0 {
		masteryStreak = DefaultMasteryStreak
	}

	out := make([]WeightedFact, 0, len(operands)*MaxOperand)
	for _, a := range operands {
		for b := MinOperand; b <= MaxOperand; b++ {
			f := Normalize(a, b)
			st, seen := facts.Get(f)
			if st.ConsecutiveCorrect >= masteryStreak {
				continue
			}
			p := st.Priority
			if !seen && f.trivial() {
				p = trivialPriority
			}
			out = append(out, WeightedFact{A: a, B: b, Fact: f, Priority: p})
		}
	}
	return out
}

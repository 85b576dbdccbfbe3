package factdrill

// DefaultRecencySize is the number of recently presented facts remembered.
const DefaultRecencySize = 5

// RecencyWindow holds the last few presented facts in FIFO order.
type RecencyWindow struct {
	facts []Fact
	size  int
}

// NewRecencyWindow returns an empty window holding up to size facts.
// A non-positive size falls back to DefaultRecencySize.
func NewRecencyWindow(size int) *RecencyWindow {
	if size <= 0 {
		size = DefaultRecencySize
	}
	return &RecencyWindow{facts: make([]Fact, 0, size), size: size}
}

// Contains reports whether f is in the window.
func (w *RecencyWindow) Contains(f Fact) bool {
	for _, g := range w.facts {
		if g == f {
			return true
		}
	}
	return false
}

// Push appends f, evicting the oldest entry once the window is full.
func (w *RecencyWindow) Push(f Fact) {
	if len(w.facts) == w.size {
		copy(w.facts, w.facts[1:])
		w.facts = w.facts[:w.size-1]
	}
	w.facts = append(w.facts, f)
}

// Len returns the number of facts in the window.
func (w *RecencyWindow) Len() int {
	return len(w.facts)
}

// Facts returns the window contents, oldest first.
func (w *RecencyWindow) Facts() []Fact {
	return append([]Fact(nil), w.facts...)
}

// Clear empties the window.
func (w *RecencyWindow) Clear() {
	w.facts = w.facts[:0]
}

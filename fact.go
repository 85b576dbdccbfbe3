package factdrill

import (
	"encoding"
	"fmt"
)

// Table bounds for operands and multipliers.
const (
	MinOperand = 1
	MaxOperand = 10
)

// Fact identifies a multiplication fact independent of operand order.
// Lo is always less than or equal to Hi.
type Fact struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

var (
	_ fmt.Stringer             = Fact{}
	_ encoding.TextMarshaler   = Fact{}
	_ encoding.TextUnmarshaler = (*Fact)(nil)
)

// Normalize returns the fact for a×b. Normalize(a, b) == Normalize(b, a).
func Normalize(a, b int) Fact {
	if a > b {
		a, b = b, a
	}
	return Fact{Lo: a, Hi: b}
}

// Product returns Lo×Hi.
func (f Fact) Product() int {
	return f.Lo * f.Hi
}

// trivial reports whether the fact involves a ×1, ×2 or ×10 multiplier.
func (f Fact) trivial() bool {
	return f.Lo == 1 || f.Lo == 2 || f.Lo == 10
}

// String returns the fact as "LoxHi", e.g. "3x7".
func (f Fact) String() string {
	return fmt.Sprintf("%dx%d", f.Lo, f.Hi)
}

// MarshalText implements encoding.TextMarshaler. Facts can be used as JSON
// object keys.
func (f Fact) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The operands are
// normalized, so "7x3" decodes to the same fact as "3x7".
func (f *Fact) UnmarshalText(text []byte) error {
	var a, b int
	if _, err := fmt.Sscanf(string(text), "%dx%d", &a, &b); err != nil {
		return fmt.Errorf("factdrill: invalid fact %q: %w", text, err)
	}
	*f = Normalize(a, b)
	return nil
}

package factdrill

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Mode selects how a session ends.
type Mode int

const (
	FixedCount Mode = iota + 1 // Ends after SessionConfig.ProblemCount problems.
	TimeBoxed                  // Ends when SessionConfig.Duration has elapsed.
)

var (
	modeNames  = [...]string{FixedCount: "fixed_count", TimeBoxed: "time_boxed"}
	modeByName = map[string]Mode{
		"fixed_count": FixedCount,
		"time_boxed":  TimeBoxed,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Mode(0)
	_ json.Marshaler           = Mode(0)
	_ json.Unmarshaler         = (*Mode)(nil)
	_ encoding.TextMarshaler   = Mode(0)
	_ encoding.TextUnmarshaler = (*Mode)(nil)
)

// String returns "fixed_count" or "time_boxed".
// For invalid values it returns "Mode(n)".
func (m Mode) String() string {
	if m.IsValid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsValid reports whether m is FixedCount or TimeBoxed.
func (m Mode) IsValid() bool {
	return m >= FixedCount && m <= TimeBoxed
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, ok := modeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMode, text)
	}
	*m = v
	return nil
}

// MarshalJSON implements json.Marshaler. Mode serializes as a JSON string.
func (m Mode) MarshalJSON() ([]byte, error) {
	text, err := m.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMode, data)
	}
	return m.UnmarshalText([]byte(s))
}

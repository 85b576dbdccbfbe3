package factdrill

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Phase is the lifecycle stage of a Session.
type Phase int

const (
	Idle     Phase = iota // Not started.
	Running               // Presenting problems.
	Finished              // Results final; Start may begin a new run.
)

var (
	phaseNames  = [...]string{Idle: "Idle", Running: "Running", Finished: "Finished"}
	phaseByName = map[string]Phase{
		"Idle":     Idle,
		"Running":  Running,
		"Finished": Finished,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Phase(0)
	_ json.Marshaler           = Phase(0)
	_ json.Unmarshaler         = (*Phase)(nil)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
)

func (p Phase) isValid() bool {
	return p >= Idle && p <= Finished
}

// String returns the name of the phase ("Idle", "Running", "Finished").
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.isValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.isValid() {
		return nil, fmt.Errorf("factdrill: invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("factdrill: invalid phase: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Phase serializes as a JSON string.
func (p Phase) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("factdrill: invalid phase: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}

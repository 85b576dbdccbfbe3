package factdrill

import "errors"

// Sentinel errors for the factdrill package.
// Use errors.Is to check: errors.Is(err, factdrill.ErrEmptyOperands)
var (
	ErrEmptyOperands     = errors.New("factdrill: no operands selected")
	ErrOperandOutOfRange = errors.New("factdrill: operand out of range")
	ErrInvalidConfig     = errors.New("factdrill: invalid configuration")
	ErrInvalidMode       = errors.New("factdrill: invalid mode")
	ErrSessionRunning    = errors.New("factdrill: session already running")
)

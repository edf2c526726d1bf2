package engine

import "errors"

// Evaluation failures. Both are handled inside the engine: they latch
// the error state and surface through the display contract, never as a
// panic or a returned error from a Submit call.
var (
	ErrDivisionByZero = errors.New("cannot divide by zero")
	ErrNotANumber     = errors.New("not a number")
)

// errorMessage is the human-readable secondary-display text for a
// latched evaluation error.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "Cannot divide by zero"
	case errors.Is(err, ErrNotANumber):
		return "Not a number"
	}
	return "Calculation error"
}

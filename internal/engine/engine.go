// Package engine implements the calculator's input accumulator: a
// deterministic state machine that consumes one semantic event at a
// time and exposes the two display strings a renderer needs. It has no
// I/O, no clock and no rendering dependency; timers such as the
// delayed error dismissal belong to whatever embeds it.
package engine

import (
	"math"
	"strconv"
	"strings"
)

// Engine holds the calculator state. It is not safe for concurrent
// use; callers serialize access (one semantic event runs to completion
// before the next is observed).
type Engine struct {
	// current is the numeral being typed or shown. It is always a
	// parseable, possibly partial decimal ("0", "12.5", "0."), never
	// empty.
	current     string
	previous    float64
	hasPrevious bool
	op          Op

	// awaitingOperand is set right after an operator is chosen: the
	// next digit starts a fresh operand instead of appending.
	awaitingOperand bool
	// justCompleted is set right after "=" produces a result: the next
	// digit starts a new calculation instead of appending to it.
	justCompleted bool

	err       error
	primary   string
	secondary string
}

// New returns an engine in its initial state: "0" shown, no pending
// operation.
func New() *Engine {
	e := &Engine{}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.current = "0"
	e.previous = 0
	e.hasPrevious = false
	e.op = OpNone
	e.awaitingOperand = false
	e.justCompleted = false
	e.err = nil
	e.primary = "0"
	e.secondary = ""
}

// Display returns the primary (current numeral) and secondary
// (in-progress or completed expression) display strings.
func (e *Engine) Display() (primary, secondary string) {
	return e.primary, e.secondary
}

// InError reports whether an evaluation error is latched. While
// latched, every operation except ClearAll is ignored; the embedding
// layer decides when to trigger the reset.
func (e *Engine) InError() bool {
	return e.err != nil
}

// Err returns the latched evaluation error, or nil.
func (e *Engine) Err() error {
	return e.err
}

// SubmitDigit appends digit d (0–9) to the current operand, or starts
// a fresh operand after an operator or a completed calculation.
func (e *Engine) SubmitDigit(d int) {
	if e.err != nil || d < 0 || d > 9 {
		return
	}
	ch := string(rune('0' + d))

	switch {
	case e.awaitingOperand:
		e.current = ch
		e.awaitingOperand = false
	case e.justCompleted:
		e.current = ch
		e.justCompleted = false
		e.secondary = ""
	case e.current == "0":
		e.current = ch
	default:
		e.current += ch
	}
	e.primary = FormatNumeral(e.current)
}

// SubmitDecimalPoint adds the decimal point. A fresh operand starts as
// "0."; a second point in the same numeral is silently ignored.
func (e *Engine) SubmitDecimalPoint() {
	if e.err != nil {
		return
	}

	switch {
	case e.awaitingOperand:
		e.current = "0."
		e.awaitingOperand = false
	case e.justCompleted:
		e.current = "0."
		e.justCompleted = false
		e.secondary = ""
	case !strings.Contains(e.current, "."):
		e.current += "."
	}
	e.primary = FormatNumeral(e.current)
}

// SubmitOperator commits the current operand and selects op. When an
// operator is already pending and a second operand has been entered,
// the pending operation is evaluated first, so chains like 5 + 3 + 2
// resolve eagerly left to right.
func (e *Engine) SubmitOperator(op Op) {
	if e.err != nil || !op.valid() {
		return
	}

	inputValue, err := strconv.ParseFloat(e.current, 64)
	if err != nil {
		e.fail(ErrNotANumber)
		return
	}

	if !e.hasPrevious {
		e.previous = inputValue
		e.hasPrevious = true
	} else if e.op != OpNone && !e.awaitingOperand {
		result, evalErr := evaluate(e.previous, inputValue, e.op)
		if evalErr != nil {
			e.fail(evalErr)
			return
		}
		e.current = numeralString(result)
		e.previous = result
	}

	e.awaitingOperand = true
	e.op = op
	e.justCompleted = false
	e.primary = FormatNumeral(e.current)
	e.secondary = formatValue(e.previous) + " " + op.Symbol() + " "
}

// SubmitEquals evaluates the pending operation. It is a no-op unless
// an operator is pending and an operand was entered after it.
func (e *Engine) SubmitEquals() {
	if e.err != nil {
		return
	}
	if e.op == OpNone || !e.hasPrevious || e.awaitingOperand {
		return
	}

	inputValue, err := strconv.ParseFloat(e.current, 64)
	if err != nil {
		e.fail(ErrNotANumber)
		return
	}

	result, evalErr := evaluate(e.previous, inputValue, e.op)
	if evalErr != nil {
		e.fail(evalErr)
		return
	}

	e.secondary = formatValue(e.previous) + " " + e.op.Symbol() + " " + FormatNumeral(e.current) + " ="
	e.current = numeralString(result)
	e.previous = 0
	e.hasPrevious = false
	e.op = OpNone
	e.awaitingOperand = false
	e.justCompleted = true
	e.primary = FormatNumeral(e.current)
}

// ClearEntry resets the current operand to "0", leaving any pending
// operation in place.
func (e *Engine) ClearEntry() {
	if e.err != nil || e.current == "0" {
		return
	}
	e.current = "0"
	e.primary = "0"
}

// ClearAll restores the initial state, displays included. This is also
// the recovery path out of a latched error.
func (e *Engine) ClearAll() {
	e.reset()
}

// Backspace removes the last character of the current operand. The
// numeral never becomes empty; its floor is "0". Ignored right after
// "=" so a shown result cannot be truncated.
func (e *Engine) Backspace() {
	if e.err != nil || e.justCompleted {
		return
	}
	if len(e.current) <= 1 {
		e.current = "0"
	} else {
		e.current = e.current[:len(e.current)-1]
	}
	e.primary = FormatNumeral(e.current)
}

func (e *Engine) fail(err error) {
	e.err = err
	e.primary = "Error"
	e.secondary = errorMessage(err)
}

// evaluate applies op to (a, b) and rounds away binary floating-point
// noise at eight fraction digits. The smallest positive float offsets
// the value before rounding so representable halves round upward.
func evaluate(a, b float64, op Op) (float64, error) {
	var v float64
	switch op {
	case OpAdd:
		v = a + b
	case OpSubtract:
		v = a - b
	case OpMultiply:
		v = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		v = a / b
	default:
		return 0, ErrNotANumber
	}
	return roundResult(v), nil
}

func roundResult(v float64) float64 {
	return math.Round((v+math.SmallestNonzeroFloat64)*1e8) / 1e8
}

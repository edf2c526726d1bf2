package engine

import "fmt"

// Op identifies a binary arithmetic operation.
type Op string

const (
	OpNone     Op = ""
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
)

// ParseOp maps an operation name to its Op value.
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return Op(s), nil
	}
	return OpNone, fmt.Errorf("unknown operation %q", s)
}

func (op Op) valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Symbol returns the glyph used when rendering an expression: the
// typographic minus, multiplication and division signs rather than
// their ASCII stand-ins.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return ""
}

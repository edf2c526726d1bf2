package engine

import "fmt"

// Kind names a semantic input event. Together with Event this is the
// closed vocabulary transports use; the engine never sees raw key
// codes.
type Kind string

const (
	KindDigit        Kind = "digit"
	KindDecimalPoint Kind = "decimal_point"
	KindOperator     Kind = "operator"
	KindEquals       Kind = "equals"
	KindClearEntry   Kind = "clear_entry"
	KindClearAll     Kind = "clear_all"
	KindBackspace    Kind = "backspace"
)

// Event is one semantic input. Digit is meaningful only for KindDigit,
// Op only for KindOperator.
type Event struct {
	Kind  Kind `json:"type"`
	Digit int  `json:"digit,omitempty"`
	Op    Op   `json:"op,omitempty"`
}

// Apply dispatches ev to the matching Submit method. It returns an
// error only for a malformed event (unknown kind, digit out of range,
// unknown operator); evaluation failures latch the error state instead.
func (e *Engine) Apply(ev Event) error {
	switch ev.Kind {
	case KindDigit:
		if ev.Digit < 0 || ev.Digit > 9 {
			return fmt.Errorf("digit out of range: %d", ev.Digit)
		}
		e.SubmitDigit(ev.Digit)
	case KindDecimalPoint:
		e.SubmitDecimalPoint()
	case KindOperator:
		if !ev.Op.valid() {
			return fmt.Errorf("unknown operation %q", ev.Op)
		}
		e.SubmitOperator(ev.Op)
	case KindEquals:
		e.SubmitEquals()
	case KindClearEntry:
		e.ClearEntry()
	case KindClearAll:
		e.ClearAll()
	case KindBackspace:
		e.Backspace()
	default:
		return fmt.Errorf("unknown event type %q", ev.Kind)
	}
	return nil
}

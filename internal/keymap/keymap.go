// Package keymap is the input adapter between raw key names and the
// engine's semantic event vocabulary. Key names follow the browser
// KeyboardEvent.key convention ("5", ".", "Enter", "Backspace"), so a
// web front end can forward keystrokes verbatim.
package keymap

import (
	"fmt"

	"calcpad/internal/engine"
)

var keys = map[string]engine.Event{
	".": {Kind: engine.KindDecimalPoint},
	",": {Kind: engine.KindDecimalPoint},

	"+": {Kind: engine.KindOperator, Op: engine.OpAdd},
	"-": {Kind: engine.KindOperator, Op: engine.OpSubtract},
	"−": {Kind: engine.KindOperator, Op: engine.OpSubtract},
	"*": {Kind: engine.KindOperator, Op: engine.OpMultiply},
	"x": {Kind: engine.KindOperator, Op: engine.OpMultiply},
	"X": {Kind: engine.KindOperator, Op: engine.OpMultiply},
	"×": {Kind: engine.KindOperator, Op: engine.OpMultiply},
	"/": {Kind: engine.KindOperator, Op: engine.OpDivide},
	"÷": {Kind: engine.KindOperator, Op: engine.OpDivide},

	"=":     {Kind: engine.KindEquals},
	"Enter": {Kind: engine.KindEquals},

	"Backspace": {Kind: engine.KindBackspace},
	"Delete":    {Kind: engine.KindClearEntry},
	"Escape":    {Kind: engine.KindClearAll},
	"c":         {Kind: engine.KindClearAll},
	"C":         {Kind: engine.KindClearAll},
}

// Translate maps one key name to its semantic event. Keys outside the
// calculator's vocabulary return an error; the caller decides whether
// to ignore or report them.
func Translate(key string) (engine.Event, error) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return engine.Event{Kind: engine.KindDigit, Digit: int(key[0] - '0')}, nil
	}
	if ev, ok := keys[key]; ok {
		return ev, nil
	}
	return engine.Event{}, fmt.Errorf("key %q has no calculator meaning", key)
}

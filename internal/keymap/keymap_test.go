package keymap

import (
	"testing"

	"calcpad/internal/engine"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		key  string
		want engine.Event
	}{
		{"0", engine.Event{Kind: engine.KindDigit, Digit: 0}},
		{"7", engine.Event{Kind: engine.KindDigit, Digit: 7}},
		{".", engine.Event{Kind: engine.KindDecimalPoint}},
		{",", engine.Event{Kind: engine.KindDecimalPoint}},
		{"+", engine.Event{Kind: engine.KindOperator, Op: engine.OpAdd}},
		{"-", engine.Event{Kind: engine.KindOperator, Op: engine.OpSubtract}},
		{"*", engine.Event{Kind: engine.KindOperator, Op: engine.OpMultiply}},
		{"x", engine.Event{Kind: engine.KindOperator, Op: engine.OpMultiply}},
		{"/", engine.Event{Kind: engine.KindOperator, Op: engine.OpDivide}},
		{"=", engine.Event{Kind: engine.KindEquals}},
		{"Enter", engine.Event{Kind: engine.KindEquals}},
		{"Backspace", engine.Event{Kind: engine.KindBackspace}},
		{"Delete", engine.Event{Kind: engine.KindClearEntry}},
		{"Escape", engine.Event{Kind: engine.KindClearAll}},
		{"c", engine.Event{Kind: engine.KindClearAll}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := Translate(tt.key)
			if err != nil {
				t.Fatalf("Translate(%q): %v", tt.key, err)
			}
			if got != tt.want {
				t.Fatalf("Translate(%q) = %+v, want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslateRejectsUnknownKeys(t *testing.T) {
	for _, key := range []string{"a", "ArrowUp", "F1", "", "12"} {
		if _, err := Translate(key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestTranslateDrivesEngine(t *testing.T) {
	e := engine.New()
	for _, key := range []string{"5", "+", "3", "Enter"} {
		ev, err := Translate(key)
		if err != nil {
			t.Fatalf("Translate(%q): %v", key, err)
		}
		if err := e.Apply(ev); err != nil {
			t.Fatalf("applying key %q: %v", key, err)
		}
	}
	if primary, _ := e.Display(); primary != "8" {
		t.Fatalf("expected %q, got %q", "8", primary)
	}
}

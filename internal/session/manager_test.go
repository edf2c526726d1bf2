package session

import (
	"testing"
	"time"

	"calcpad/internal/engine"
)

func divideByZeroEvents() []engine.Event {
	return []engine.Event{
		{Kind: engine.KindDigit, Digit: 5},
		{Kind: engine.KindOperator, Op: engine.OpDivide},
		{Kind: engine.KindDigit, Digit: 0},
		{Kind: engine.KindEquals},
	}
}

func TestManagerCreateGetDelete(t *testing.T) {
	m := NewManager(0, 0)

	s := m.Create()
	if s.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Count())
	}

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("expected to get session %q back", s.ID)
	}

	if !m.Delete(s.ID) {
		t.Fatal("expected delete to report existing session")
	}
	if m.Delete(s.ID) {
		t.Fatal("expected delete of missing session to report false")
	}
	if m.Count() != 0 {
		t.Fatalf("expected 0 sessions, got %d", m.Count())
	}
}

func TestSessionApply(t *testing.T) {
	m := NewManager(0, 0)
	s := m.Create()

	snap, err := s.Apply([]engine.Event{
		{Kind: engine.KindDigit, Digit: 5},
		{Kind: engine.KindOperator, Op: engine.OpAdd},
		{Kind: engine.KindDigit, Digit: 3},
		{Kind: engine.KindEquals},
	})
	if err != nil {
		t.Fatalf("applying events: %v", err)
	}
	if snap.Primary != "8" {
		t.Fatalf("expected primary %q, got %q", "8", snap.Primary)
	}
	if snap.Error {
		t.Fatal("did not expect error state")
	}
}

func TestSessionApplyStopsAtMalformedEvent(t *testing.T) {
	m := NewManager(0, 0)
	s := m.Create()

	snap, err := s.Apply([]engine.Event{
		{Kind: engine.KindDigit, Digit: 4},
		{Kind: "sqrt"},
		{Kind: engine.KindDigit, Digit: 2},
	})
	if err == nil {
		t.Fatal("expected error for malformed event")
	}
	// Events before the malformed one were applied.
	if snap.Primary != "4" {
		t.Fatalf("expected primary %q, got %q", "4", snap.Primary)
	}
}

func TestErrorAutoReset(t *testing.T) {
	m := NewManager(20*time.Millisecond, 0)
	s := m.Create()

	snap, err := s.Apply(divideByZeroEvents())
	if err != nil {
		t.Fatalf("applying events: %v", err)
	}
	if !snap.Error || snap.Primary != "Error" {
		t.Fatalf("expected latched error display, got %+v", snap)
	}
	if snap.Secondary == "" {
		t.Fatal("expected non-empty error message in secondary display")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		snap = s.Snapshot()
		if !snap.Error {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("error state was not auto-dismissed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if snap.Primary != "0" || snap.Secondary != "" {
		t.Fatalf("expected initial displays after auto-reset, got %+v", snap)
	}
}

func TestManualClearDisarmsAutoReset(t *testing.T) {
	m := NewManager(time.Hour, 0)
	s := m.Create()

	if _, err := s.Apply(divideByZeroEvents()); err != nil {
		t.Fatalf("applying events: %v", err)
	}

	snap, err := s.Apply([]engine.Event{{Kind: engine.KindClearAll}})
	if err != nil {
		t.Fatalf("applying clear: %v", err)
	}
	if snap.Error || snap.Primary != "0" {
		t.Fatalf("expected cleared state, got %+v", snap)
	}

	s.mu.Lock()
	armed := s.resetTimer != nil
	s.mu.Unlock()
	if armed {
		t.Fatal("expected reset timer to be disarmed after manual clear")
	}
}

func TestZeroErrorResetDisablesTimer(t *testing.T) {
	m := NewManager(0, 0)
	s := m.Create()

	if _, err := s.Apply(divideByZeroEvents()); err != nil {
		t.Fatalf("applying events: %v", err)
	}

	s.mu.Lock()
	armed := s.resetTimer != nil
	s.mu.Unlock()
	if armed {
		t.Fatal("expected no reset timer with auto-dismiss disabled")
	}
	if !s.Snapshot().Error {
		t.Fatal("expected error state to persist")
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(0, time.Minute)

	idle := m.Create()
	fresh := m.Create()

	// Backdate the idle session past the TTL.
	idle.mu.Lock()
	idle.lastUsed = time.Now().Add(-2 * time.Minute)
	idle.mu.Unlock()

	if removed := m.Sweep(time.Now()); removed != 1 {
		t.Fatalf("expected 1 session swept, got %d", removed)
	}

	if _, ok := m.Get(idle.ID); ok {
		t.Fatal("expected idle session to be evicted")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Fatal("expected fresh session to survive")
	}
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	m := NewManager(0, 0)
	s := m.Create()

	s.mu.Lock()
	s.lastUsed = time.Now().Add(-24 * time.Hour)
	s.mu.Unlock()

	if removed := m.Sweep(time.Now()); removed != 0 {
		t.Fatalf("expected no sweeping without a TTL, got %d", removed)
	}
}

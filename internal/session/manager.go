// Package session hosts calculator engines behind the HTTP and
// websocket surface. Each session owns one engine and serializes its
// events; the registry evicts sessions after an idle TTL. The delayed
// error dismissal the engine deliberately does not implement lives
// here.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"calcpad/internal/engine"
)

// Snapshot is what a renderer needs after any event: the two display
// strings and whether an evaluation error is latched.
type Snapshot struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Error     bool   `json:"error"`
}

// Session owns a single engine. All access goes through its mutex so
// one semantic event runs to completion before the next is observed.
type Session struct {
	ID string

	mu         sync.Mutex
	eng        *engine.Engine
	lastUsed   time.Time
	errorReset time.Duration
	resetTimer *time.Timer
}

func (s *Session) snapshotLocked() Snapshot {
	primary, secondary := s.eng.Display()
	return Snapshot{
		Primary:   primary,
		Secondary: secondary,
		Error:     s.eng.InError(),
	}
}

// Snapshot returns the current display state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.snapshotLocked()
}

// Apply runs events in order and returns the resulting snapshot. A
// malformed event stops the batch; everything before it has already
// been applied. When a batch leaves the engine in the error state, the
// session schedules an automatic ClearAll after the configured delay.
func (s *Session) Apply(events []engine.Event) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	for _, ev := range events {
		if err := s.eng.Apply(ev); err != nil {
			return s.snapshotLocked(), err
		}
	}

	s.armErrorResetLocked()
	return s.snapshotLocked(), nil
}

func (s *Session) armErrorResetLocked() {
	if s.eng.InError() {
		if s.resetTimer == nil && s.errorReset > 0 {
			s.resetTimer = time.AfterFunc(s.errorReset, s.dismissError)
		}
		return
	}
	// A manual clear beat the timer; disarm it.
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Session) dismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTimer = nil
	if s.eng.InError() {
		s.eng.ClearAll()
	}
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

// Manager is the session registry.
type Manager struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	errorReset time.Duration
	ttl        time.Duration
}

// NewManager returns a registry whose sessions auto-clear a latched
// error after errorReset and are evicted after ttl of inactivity.
// A zero errorReset disables the automatic dismissal; a zero ttl
// disables eviction.
func NewManager(errorReset, ttl time.Duration) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		errorReset: errorReset,
		ttl:        ttl,
	}
}

// Create registers a fresh session with its own engine.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:         uuid.New().String(),
		eng:        engine.New(),
		lastUsed:   time.Now(),
		errorReset: m.errorReset,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
	}
	return ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// RunSweeper sweeps on the given interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

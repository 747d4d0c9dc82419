// Package dialogue tracks per-session slot collection across turns: which
// slots are already known, which one the bot is currently asking for, and
// when the session is complete enough to run a lookup.
package dialogue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// Session is the mutable per-conversation state: the slot awaiting an
// answer plus the values collected so far. Zero Awaiting means no question
// is pending.
type Session struct {
	Awaiting   model.Slot `json:"awaiting,omitempty"`
	University string     `json:"university,omitempty"`
	Department string     `json:"department,omitempty"`
	Program    string     `json:"program,omitempty"`
	Campus     string     `json:"campus,omitempty"`
	Year       int        `json:"year,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SessionStore is the injected persistence abstraction for sessions. The
// engine holds no ambient global state; implementations guard their own
// concurrency.
type SessionStore interface {
	Get(id string) (Session, bool)
	Put(id string, s Session)
	Delete(id string)
	// DeleteExpired drops sessions not updated since the cutoff and returns
	// how many were removed.
	DeleteExpired(cutoff time.Time) int
}

// MemoryStore is a mutex-guarded in-memory SessionStore. Nothing
// survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *MemoryStore) Put(id string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
	m.sessions[id] = s
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *MemoryStore) DeleteExpired(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the current session count.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Janitor evicts sessions older than ttl every interval until the context
// ends. Run it on its own goroutine; abandoned sessions would otherwise
// accumulate without bound under session-id churn.
func (m *MemoryStore) Janitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.DeleteExpired(m.now().Add(-ttl)); removed > 0 {
				zap.L().Debug("evicted expired sessions", zap.Int("count", removed))
			}
		}
	}
}

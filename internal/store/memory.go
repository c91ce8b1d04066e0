package store

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ashureev/ledgerbot/internal/domain"
)

// MemoryConfig controls session retention. Zero values keep every session
// for the life of the process.
type MemoryConfig struct {
	// TTL is how long a session may go without updates before EvictExpired
	// drops it. Zero disables expiry.
	TTL time.Duration
	// Capacity caps the number of sessions. At capacity, Insert evicts the
	// least recently updated session. Zero means unbounded.
	Capacity int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Memory is the in-process SessionStore. A single mutex guards the map, so
// every Update for a key runs to completion before the next one starts.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewMemory creates an empty in-memory session store.
func NewMemory(cfg MemoryConfig) *Memory {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Memory{
		sessions: make(map[string]*domain.Session),
		ttl:      cfg.TTL,
		capacity: cfg.Capacity,
		now:      now,
	}
}

// Insert stores a copy of s under s.ID.
func (m *Memory) Insert(s *domain.Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("insert session: missing id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("insert session %s: %w", s.ID, domain.ErrSessionExists)
	}
	if m.capacity > 0 && len(m.sessions) >= m.capacity {
		m.evictOldestLocked()
	}

	stored := s.Clone()
	stored.UpdatedAt = m.now()
	m.sessions[s.ID] = stored
	return nil
}

// Get returns a copy of the session stored under id.
func (m *Memory) Get(id string) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Update applies fn to a working copy and commits it when fn succeeds.
func (m *Memory) Update(id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("update session %s: %w", id, domain.ErrSessionNotFound)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return current.Clone(), err
	}
	working.ID = current.ID
	working.Activity = current.Activity
	working.Date = current.Date
	working.CreatedAt = current.CreatedAt
	working.UpdatedAt = m.now()
	m.sessions[id] = working
	return working.Clone(), nil
}

// List returns copies of every session, most recently updated first.
func (m *Memory) List() []*domain.Session {
	m.mu.Lock()
	out := make([]*domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Len returns the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// EvictExpired drops sessions whose last update is older than the TTL.
func (m *Memory) EvictExpired(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	threshold := now.Add(-m.ttl)
	evicted := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(threshold) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (m *Memory) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if oldestID == "" || s.UpdatedAt.Before(oldest) {
			oldestID, oldest = id, s.UpdatedAt
		}
	}
	if oldestID == "" {
		return
	}
	delete(m.sessions, oldestID)
	slog.Info("Session evicted at capacity", "session_id", oldestID, "capacity", m.capacity)
}

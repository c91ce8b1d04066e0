// Package store provides the session store and the finished-entry archive.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ashureev/ledgerbot/internal/domain"
)

// SessionStore owns every tracking session for the life of the process.
// Sessions are keyed by the identity of the message that displays them and
// are only ever handed out as copies.
type SessionStore interface {
	// Insert stores a new session under its ID.
	// It fails with domain.ErrSessionExists if the ID is taken.
	Insert(s *domain.Session) error

	// Get returns a copy of the session stored under id.
	Get(id string) (*domain.Session, bool)

	// Update runs fn on a working copy of the session and commits the copy
	// only if fn returns nil. Calls for the same id never interleave.
	// It returns domain.ErrSessionNotFound for unknown ids and fn's error
	// unchanged otherwise.
	Update(id string, fn func(s *domain.Session) error) (*domain.Session, error)

	// List returns copies of all stored sessions, most recently updated first.
	List() []*domain.Session

	// Len returns the number of stored sessions.
	Len() int

	// EvictExpired drops sessions idle longer than the store's TTL and
	// returns how many were removed.
	EvictExpired(now time.Time) int
}

// Entry is the archived record of a finished session.
type Entry struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"session_id"`
	Activity   domain.Activity `json:"activity"`
	Date       string          `json:"date"`
	Text       string          `json:"text"`
	Fields     json.RawMessage `json:"fields"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Archive records finished entries. In-progress sessions are never archived.
type Archive interface {
	// Record stores a finished entry.
	Record(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Ping verifies the archive is reachable.
	Ping(ctx context.Context) error

	// Close releases the archive.
	Close() error
}

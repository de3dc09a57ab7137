// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Used when no Redis address is configured, and in tests.
//
// Characteristics:
//   - Stores copies of *overlay.Session keyed by ID, so callers cannot mutate
//     stored state behind the store's back.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optional TTL: sessions idle longer than the TTL are treated as missing.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/waffle-cheatsheet/internal/overlay"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for overlay sessions.
// Implementations are backed by memory (this file) or Redis (redis.go).
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *overlay.Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is missing or expired.
	Get(ctx context.Context, id string) (*overlay.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions
	sessions map[string]overlay.Session // keyed by Session.ID
	ttl      time.Duration              // 0 = never expire
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]overlay.Session), ttl: ttl, now: time.Now}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *overlay.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// Get looks up a session by ID and returns a copy.
func (m *memory) Get(ctx context.Context, id string) (*overlay.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		_ = m.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete drops the session from the map.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

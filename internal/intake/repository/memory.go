package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/domain"
)

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// lazily on access and by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Compile-time check that MemoryStore implements SessionStore.
var _ SessionStore = (*MemoryStore)(nil)

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return m.ttl > 0 && !now.Before(e.expiresAt)
}

// Get returns a copy of the session or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (domain.Session, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	if now := m.now(); m.expired(e, now) {
		if e, ok = m.evictExpired(id, now); !ok {
			return domain.Session{}, ErrNotFound
		}
	}
	return e.session.Clone(), nil
}

// evictExpired re-reads the entry under the write lock and deletes it only if
// it is still expired at now. A Save that refreshed the entry in between wins.
func (m *MemoryStore) evictExpired(id uuid.UUID, now time.Time) (memoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if m.expired(e, now) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

// Save stores a copy of the session and refreshes its expiry.
func (m *MemoryStore) Save(_ context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[session.ID] = memoryEntry{session: session.Clone(), expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Delete removes the session. Deleting an unknown id returns ErrNotFound.
func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

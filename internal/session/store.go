// Package session encapsulates client session state behind an explicit store
// instead of ambient key-value storage. Components receive a Store and never
// reach for globals.
package session

import "sync"

// Session is the typed session state: the bearer token attached to upstream
// requests plus the role and user id used for conditional behavior.
type Session struct {
	Token  string
	Role   string
	UserID string
}

// Store loads, saves, and clears the current session.
type Store interface {
	// Load returns the current session and whether one is present.
	Load() (Session, bool)
	// Save replaces the current session.
	Save(Session)
	// Clear removes the current session.
	Clear()
}

// MemoryStore is an in-process Store, suitable for CLI tools and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Session
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// Save implements Store.
func (m *MemoryStore) Save(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &s
}

// Clear implements Store.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

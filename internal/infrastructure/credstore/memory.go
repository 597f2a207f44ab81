// Package credstore holds the session artifact (token + role) for one
// browsing context. It performs no validation of token contents; it is a
// dumb holder with atomic set/get/clear.
package credstore

import (
	"sync"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// Memory is an in-process credential store. Used by tests and anywhere a
// store needs to exist independently of an HTTP exchange.
// Implements domain.CredentialStore.
type Memory struct {
	mu      sync.RWMutex
	session domain.Session
	held    bool
}

// NewMemory creates an empty in-memory credential store.
func NewMemory() *Memory {
	return &Memory{}
}

// Set stores the session. A session that does not satisfy Valid is rejected
// so the store can never hold a token without a role or vice versa.
func (m *Memory) Set(s domain.Session) error {
	if !s.Valid() {
		return domain.ErrNoSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.held = true
	return nil
}

// Get returns the current session, if any.
func (m *Memory) Get() (domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.held {
		return domain.Session{}, false
	}
	return m.session, true
}

// Clear removes the session. Clearing an empty store is a no-op.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = domain.Session{}
	m.held = false
}

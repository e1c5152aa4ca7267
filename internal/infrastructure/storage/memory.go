// Package storage provides the durable client-side session stores. All
// implementations persist two keys: the access token and the serialised
// user profile.
package storage

import (
	"sync"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

// MemoryStore keeps the session in-process. Default for tests and for
// embedders that manage persistence themselves.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *domain.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveSession(token string, user *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.user = user.Clone()
	return nil
}

func (m *MemoryStore) SaveUser(user *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user.Clone()
	return nil
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *MemoryStore) User() (*domain.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone(), m.user != nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.user = nil
	return nil
}

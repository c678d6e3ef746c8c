// internal/pkg/session/memory_store.go
package session

import (
	"context"
	"fmt"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore holds sessions in process memory. Used by tests and when
// running without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.JTI] = *s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, jti string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[jti]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return &s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, jti)
	return nil
}

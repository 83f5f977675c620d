// Package session keeps the per-conversation workflow state. The in-memory
// store is the default for a single process; the Redis store externalizes
// sessions so multiple worker processes can share them.
package session

import (
	"context"
	"sync"

	model "github.com/inakado/aspy-bot/internal/models"
)

// Store persists conversation sessions keyed by chat ID.
// Get returns (nil, nil) when no session exists.
type Store interface {
	Get(ctx context.Context, chatID int64) (*model.Session, error)
	Save(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, chatID int64) error
}

// MemoryStore is a concurrency-safe in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]model.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]model.Session)}
}

func (m *MemoryStore) Get(_ context.Context, chatID int64) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (m *MemoryStore) Save(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ChatID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}

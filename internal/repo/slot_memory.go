package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// MemorySlotStore keeps slots in process memory. State is lost on restart.
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemorySlotStore returns an empty in-memory store.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string]string)}
}

func (s *MemorySlotStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return "", fmt.Errorf("repo.MemorySlotStore.Get: %w", domain.ErrNotFound)
	}
	return v, nil
}

func (s *MemorySlotStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}

func (s *MemorySlotStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}

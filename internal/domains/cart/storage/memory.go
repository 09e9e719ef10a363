package storage

import (
	"context"
	"strings"
	"sync"
)

// memoryStorage keeps carts in a mutex-guarded map.
// Used in tests and local development.
type memoryStorage struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryStorage() PersistentStorage {
	return &memoryStorage{store: make(map[string][]byte)}
}

var _ PersistentStorage = (*memoryStorage)(nil)

func (s *memoryStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.store[key]
	if !ok {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the stored slice
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, true, nil
}

func (s *memoryStorage) Save(_ context.Context, key string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(raw))
	copy(stored, raw)
	s.store[key] = stored
	return nil
}

func (s *memoryStorage) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.store, key)
	return nil
}

func (s *memoryStorage) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

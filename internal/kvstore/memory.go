package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is the default per-process backend. It is the single writer
// for its own data; there is no cross-process visibility.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers []func(key string)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	watchers := s.watchers
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(key)
	}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	watchers := s.watchers
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(key)
	}
	return nil
}

func (s *MemoryStore) Watch(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

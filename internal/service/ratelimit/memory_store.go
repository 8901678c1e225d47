package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the process-local Store. Counters reset on restart and
// are not shared across instances.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]Window
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]Window),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	window, ok := s.windows[key]
	if !ok {
		return nil, nil
	}
	return &window, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, window Window, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows[key] = window
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

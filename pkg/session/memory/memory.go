// Package memory implements an in-memory session store.
package memory

import (
	"context"
	"sync"
)

// Store provides an in-memory implementation of session.Store.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores the value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Len reports how many keys are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

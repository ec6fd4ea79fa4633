package memory

import (
	"context"
	"sync"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// Store keeps records in-process. Nothing survives a restart; it backs tests
// and STORE_BACKEND=memory.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

// Get returns a copy of the stored value or ports.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), value...)
	return nil
}

package kv

import (
	"context"
	"encoding/json"
	"sync"

	apperrors "cutrack/internal/platform/errors"
)

// MemoryStore keeps JSON-encoded values in a map, so callers see the same
// copy semantics as with SQLiteStore.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, &apperrors.PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return &apperrors.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	s.mu.Lock()
	s.values[key] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether key is present.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

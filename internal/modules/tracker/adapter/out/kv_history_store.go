package out

import (
	"context"
	"sync"

	"cutrack/internal/modules/tracker/domain"
	trackerout "cutrack/internal/modules/tracker/port/out"
	"cutrack/internal/platform/kv"
)

const (
	HistoryKey          = "taskHistory"
	DefaultHistoryLimit = 100
)

// KVHistoryStore keeps the history log as one capped list under HistoryKey.
type KVHistoryStore struct {
	mu    sync.Mutex
	store kv.Store
	limit int
}

func NewKVHistoryStore(store kv.Store, limit int) trackerout.HistoryStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &KVHistoryStore{store: store, limit: limit}
}

func (s *KVHistoryStore) Append(ctx context.Context, record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, HistoryKey, domain.AppendCapped(records, record, s.limit))
}

func (s *KVHistoryStore) List(ctx context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *KVHistoryStore) load(ctx context.Context) ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	if _, err := s.store.Get(ctx, HistoryKey, &records); err != nil {
		return nil, err
	}
	return records, nil
}

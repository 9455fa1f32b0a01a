package out

import (
	"context"

	"cutrack/internal/modules/tracker/domain"
	trackerout "cutrack/internal/modules/tracker/port/out"
	"cutrack/internal/platform/kv"
)

const SnapshotKey = "trackerState"

type KVSnapshotStore struct {
	store kv.Store
}

func NewKVSnapshotStore(store kv.Store) trackerout.SnapshotStore {
	return &KVSnapshotStore{store: store}
}

func (s *KVSnapshotStore) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	snap := domain.Snapshot{}
	ok, err := s.store.Get(ctx, SnapshotKey, &snap)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, ok, nil
}

func (s *KVSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	return s.store.Set(ctx, SnapshotKey, snapshot)
}

func (s *KVSnapshotStore) Delete(ctx context.Context) error {
	return s.store.Delete(ctx, SnapshotKey)
}

package out

import (
	"context"

	"cutrack/internal/modules/stats/domain"
	statsout "cutrack/internal/modules/stats/port/out"
	"cutrack/internal/platform/kv"
)

const CacheKey = "timeStatistics"

type KVCache struct {
	store kv.Store
}

func NewKVCache(store kv.Store) statsout.Cache {
	return &KVCache{store: store}
}

func (c *KVCache) Save(ctx context.Context, cached domain.Cached) error {
	return c.store.Set(ctx, CacheKey, cached)
}

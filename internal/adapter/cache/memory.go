package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"taskapp/internal/core/port"
)

// MemoryCache is the in-process default for avatar response caching.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

var _ port.CacheRepository = (*MemoryCache)(nil)

func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	mc.cache.Set(key, value, ttl)
	return nil
}

func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, found := mc.cache.Get(key); found {
		if bytes, ok := value.([]byte); ok {
			return bytes, nil
		}
	}

	return nil, nil
}

func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.cache.Delete(key)
	return nil
}

func (mc *MemoryCache) Close() error {
	mc.cache.Flush()
	return nil
}

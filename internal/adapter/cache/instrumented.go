package cache

import (
	"context"
	"time"

	"taskapp/internal/core/port"
	"taskapp/internal/telemetry"
)

// InstrumentedCache decorates another CacheRepository with hit/miss
// counters. A nil value from the inner Get counts as a miss.
type InstrumentedCache struct {
	name    string
	inner   port.CacheRepository
	metrics *telemetry.AppMetrics
}

func NewInstrumentedCache(name string, inner port.CacheRepository, metrics *telemetry.AppMetrics) *InstrumentedCache {
	return &InstrumentedCache{
		name:    name,
		inner:   inner,
		metrics: metrics,
	}
}

var _ port.CacheRepository = (*InstrumentedCache)(nil)

func (ic *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return ic.inner.Set(ctx, key, value, ttl)
}

func (ic *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := ic.inner.Get(ctx, key)

	if err == nil {
		if value == nil {
			ic.metrics.RecordCacheMiss(ic.name)
		} else {
			ic.metrics.RecordCacheHit(ic.name)
		}
	}

	return value, err
}

func (ic *InstrumentedCache) Delete(ctx context.Context, key string) error {
	return ic.inner.Delete(ctx, key)
}

func (ic *InstrumentedCache) Close() error {
	return ic.inner.Close()
}

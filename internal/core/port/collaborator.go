package port

import (
	"context"
	"time"
)

// Notifier is the external notification collaborator. Calls are best-effort;
// the account service never fails an operation on a notification error.
type Notifier interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendCancellation(ctx context.Context, email, name string) error
}

// ImageProcessor is the external image-processing collaborator. Normalize
// returns the stored representation of an uploaded avatar.
type ImageProcessor interface {
	Normalize(data []byte) ([]byte, error)
}

// CacheRepository backs response-level caching of public avatar bytes.
// Get returns (nil, nil) on a miss.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

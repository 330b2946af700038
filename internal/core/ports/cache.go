package ports

import (
	"context"
	"time"
)

// BytesCache is a key/value cache with per-key TTL.
// Get reports a miss as (nil, false, nil).
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

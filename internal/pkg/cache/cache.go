// Package cache implements get-or-compute on top of a byte cache.
//
// Values are JSON encoded. The cache is best effort: a failing Get is treated
// as a miss and a failing Set is ignored, so callers always get the computed
// value. Invalidation is explicit and done by the writers after they commit.
// A reader that computed before a commit can still Set after the writer's
// Delete; that stale value lives until its TTL expires.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the subset of a byte cache GetOrCompute needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GetOrCompute returns the cached value under key or, on a miss, calls compute
// and stores its result for ttl. Errors from compute are returned as is and
// never cached.
//
// Example:
//
//	views, err := cache.GetOrCompute(ctx, store, "parcels:available", time.Minute,
//	    func(ctx context.Context) ([]readmodel.ParcelView, error) {
//	        return loadAvailable(ctx)
//	    })
func GetOrCompute[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	if store != nil {
		if raw, ok, err := store.Get(ctx, key); err == nil && ok {
			var cached T
			if err = json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if store != nil {
		if raw, err := json.Marshal(value); err == nil {
			_ = store.Set(ctx, key, raw, ttl)
		}
	}

	return value, nil
}

// Noop never stores anything. It is used when no cache backend is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Noop) Delete(context.Context, ...string) error {
	return nil
}

// Package queries contains the read operations. Handlers read committed
// state through ports.Repositories and cache their views with
// cache.GetOrCompute. Writers invalidate the keys after they commit.
package queries

import (
	"time"

	"parcelhub/internal/core/ports"
	pkgcache "parcelhub/internal/pkg/cache"
)

const (
	// DefaultCacheTTL bounds how long a view can be stale when an invalidation is lost.
	DefaultCacheTTL = 30 * time.Second

	// AvailableParcelsMaxTTL caps the TTL of the available list, the key every
	// take and drop invalidates and the one most exposed to a late Set.
	AvailableParcelsMaxTTL = 5 * time.Second
)

// ReadModel is shared by all query handlers.
type ReadModel struct {
	repos ports.Repositories
	cache pkgcache.Store
	ttl   time.Duration
}

// NewReadModel uses a no-op cache when c is nil and DefaultCacheTTL when ttl is not positive.
func NewReadModel(repos ports.Repositories, c ports.BytesCache, ttl time.Duration) ReadModel {
	var store pkgcache.Store = pkgcache.Noop{}
	if c != nil {
		store = c
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return ReadModel{
		repos: repos,
		cache: store,
		ttl:   ttl,
	}
}

func (rm ReadModel) availableTTL() time.Duration {
	return min(rm.ttl, AvailableParcelsMaxTTL)
}

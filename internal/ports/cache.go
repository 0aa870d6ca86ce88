package ports

import (
	"context"
	"time"

	"github.com/devbush/ytgrab/internal/domain"
)

// CachedProbe is a stored analysis result.
type CachedProbe struct {
	URL       string
	Info      *domain.PlaylistInfo
	CreatedAt time.Time // when this item was cached
	ExpiresAt time.Time // when this item should be considered stale
}

// ProbeCache handles persistent caching of analysis results.
type ProbeCache interface {
	// Get retrieves a cached item by URL, returning domain.ErrCacheMiss if not found.
	Get(ctx context.Context, url string) (*CachedProbe, error)

	// Set stores an item in the cache.
	Set(ctx context.Context, item *CachedProbe) error

	// Delete removes a specific item from the cache.
	Delete(ctx context.Context, url string) error

	// CleanExpired removes all expired items and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes all cached items.
	Clear(ctx context.Context) error

	// Stats returns cache statistics: item count and total size in bytes.
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}

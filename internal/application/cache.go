package application

import (
	"context"
	"fmt"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// CacheStats summarizes the probe cache
type CacheStats struct {
	ItemCount int
	TotalSize int64
}

// CacheService exposes maintenance operations on the probe cache
type CacheService struct {
	cache ports.ProbeCache
}

// NewCacheService creates a new cache service
func NewCacheService(cache ports.ProbeCache) *CacheService {
	return &CacheService{cache: cache}
}

func (s *CacheService) Stats(ctx context.Context) (*CacheStats, error) {
	count, size, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache stats: %w", err)
	}
	return &CacheStats{ItemCount: count, TotalSize: size}, nil
}

// CleanExpired removes stale analyses and reports how many were dropped
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	return s.cache.CleanExpired(ctx)
}

func (s *CacheService) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// Forget drops the analysis of one URL. The URL is normalized the same
// way Analyze does before it is used as a key.
func (s *CacheService) Forget(ctx context.Context, rawURL string) error {
	u, err := domain.ValidateURL(rawURL)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, u)
}

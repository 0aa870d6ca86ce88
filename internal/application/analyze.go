package application

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// AnalyzeOptions configures URL analysis
type AnalyzeOptions struct {
	NoCache bool
}

// AnalyzeResult contains the entries behind a URL
type AnalyzeResult struct {
	Info      *domain.PlaylistInfo
	FromCache bool
}

// AnalyzeService resolves URLs into downloadable entries
type AnalyzeService struct {
	prober   ports.MediaProber
	cache    ports.ProbeCache
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAnalyzeService creates a new analyze service
func NewAnalyzeService(prober ports.MediaProber, cache ports.ProbeCache, cacheTTL time.Duration, logger zerolog.Logger) *AnalyzeService {
	return &AnalyzeService{
		prober:   prober,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze validates rawURL and returns its entries, all selected
func (s *AnalyzeService) Analyze(ctx context.Context, rawURL string, opts AnalyzeOptions) (*AnalyzeResult, error) {
	url, err := domain.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if !opts.NoCache && s.cache != nil {
		cached, err := s.cache.Get(ctx, url)
		switch {
		case err == nil:
			return &AnalyzeResult{Info: clonePlaylist(cached.Info), FromCache: true}, nil
		case errors.Is(err, domain.ErrCacheMiss), errors.Is(err, domain.ErrCacheExpired):
		default:
			s.logger.Warn().Err(err).Str("url", url).Msg("cache read failed")
		}
	}

	info, err := s.prober.Probe(ctx, url)
	if err != nil {
		return nil, err
	}
	if info.SourceURL == "" {
		info.SourceURL = url
	}

	if s.cache != nil && s.cacheTTL > 0 {
		now := s.now()
		item := &ports.CachedProbe{
			URL:       url,
			Info:      clonePlaylist(info),
			CreatedAt: now,
			ExpiresAt: now.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, item); err != nil {
			s.logger.Warn().Err(err).Str("url", url).Msg("cache write failed")
		}
	}

	return &AnalyzeResult{Info: info}, nil
}

// clonePlaylist copies the entries so callers can change selections freely
func clonePlaylist(info *domain.PlaylistInfo) *domain.PlaylistInfo {
	if info == nil {
		return nil
	}
	out := *info
	out.Entries = slices.Clone(info.Entries)
	return &out
}

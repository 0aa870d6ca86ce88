package ports

import (
	"context"

	"github.com/devbush/ytgrab/internal/domain"
)

// DownloadRequest describes a single yt-dlp invocation
type DownloadRequest struct {
	JobID        string
	Entry        domain.MediaEntry
	Format       domain.Format
	AudioQuality string // only used for mp3, e.g. 320K
	OutputDir    string
}

// DownloadResult contains the outcome of a finished download
type DownloadResult struct {
	OutputPath string // last destination reported by yt-dlp
}

// MediaProber resolves a URL into one or more downloadable entries.
type MediaProber interface {
	// Probe runs a flat extraction and returns the entries behind url.
	Probe(ctx context.Context, url string) (*domain.PlaylistInfo, error)
}

// MediaDownloader runs the downloader subprocess for one entry.
type MediaDownloader interface {
	// Download blocks until the process exits. Events are delivered on the
	// calling goroutine's behalf in order; emit must not block for long.
	// Cancelling ctx kills the process and returns domain.ErrStopped.
	Download(ctx context.Context, req DownloadRequest, emit func(domain.Event)) (*DownloadResult, error)
}

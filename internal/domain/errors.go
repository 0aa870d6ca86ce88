package domain

import "errors"

var (
	// Input errors
	ErrInvalidURL    = errors.New("invalid media URL")
	ErrUnknownFormat = errors.New("unknown download format")
	ErrNoSelection   = errors.New("no entries selected")

	// Media errors reported by yt-dlp
	ErrVideoUnavailable = errors.New("video is unavailable or private")
	ErrUnsupportedURL   = errors.New("URL is not supported by yt-dlp")
	ErrAgeRestricted    = errors.New("video is age restricted and requires sign-in")
	ErrRateLimited      = errors.New("rate limited by the remote site")

	// Job control
	ErrStopped = errors.New("download stopped")

	// Dependency errors
	ErrYtDlpNotFound       = errors.New("yt-dlp not found")
	ErrFFmpegNotFound      = errors.New("ffmpeg not found")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrUnsupportedPlatform = errors.New("no prebuilt binaries for this platform")

	// Cache errors
	ErrCacheExpired = errors.New("cache expired")
	ErrCacheMiss    = errors.New("cache miss")
)

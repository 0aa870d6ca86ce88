package deps

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/devbush/ytgrab/internal/ports"
)

const (
	connectTimeout  = 30 * time.Second
	requestTimeout  = 300 * time.Second
	maxChecksumSize = 1 << 20
)

// Fetcher downloads files over HTTP with retries
type Fetcher struct {
	client *http.Client
	fs     afero.Fs
	logger zerolog.Logger

	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsed      time.Duration
}

// NewFetcher creates a fetcher writing into fs
func NewFetcher(fs afero.Fs, logger zerolog.Logger) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext

	return &Fetcher{
		client:          &http.Client{Transport: transport, Timeout: requestTimeout},
		fs:              fs,
		logger:          logger,
		initialInterval: time.Second,
		maxInterval:     10 * time.Second,
		maxElapsed:      60 * time.Second,
	}
}

// statusError is a non-2xx response
type statusError struct {
	url  string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.url, e.code)
}

func (f *Fetcher) retry(ctx context.Context, name string, hooks ports.InstallHooks, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialInterval
	b.MaxInterval = f.maxInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if hooks.Downloading != nil {
			hooks.Downloading(name)
		}
		return struct{}{}, op()
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(f.maxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			f.logger.Warn().Err(err).Dur("wait", wait).Str("file", name).Msg("download failed, retrying")
			if hooks.Retrying != nil {
				hooks.Retrying(name, err)
			}
		}),
	)
	return err
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	resp.Body.Close()

	err = &statusError{url: url, code: resp.StatusCode}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
			return nil, backoff.RetryAfter(secs)
		}
		return nil, err
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, backoff.Permanent(err)
	}
	return nil, err
}

// Fetch downloads url to dest and returns the hex sha256 of the body.
// label names the download in hook callbacks. The body goes to a temporary
// file next to dest which is renamed on success and removed on failure.
func (f *Fetcher) Fetch(ctx context.Context, url, dest, label string, hooks ports.InstallHooks) (string, error) {
	var digest string

	err := f.retry(ctx, label, hooks, func() error {
		resp, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		digest, err = f.writeBody(ctx, resp, dest, hooks.Progress)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return digest, nil
}

func (f *Fetcher) writeBody(ctx context.Context, resp *http.Response, dest string, progress func(int64, int64)) (string, error) {
	tmp, err := afero.TempFile(f.fs, filepath.Dir(dest), "."+filepath.Base(dest)+"-*.part")
	if err != nil {
		return "", backoff.Permanent(err)
	}

	success := false
	defer func() {
		tmp.Close()
		if !success {
			f.fs.Remove(tmp.Name())
		}
	}()

	hash := sha256.New()
	counter := &progressWriter{total: resp.ContentLength, report: progress}
	if _, err := io.Copy(io.MultiWriter(tmp, hash, counter), resp.Body); err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", backoff.Permanent(err)
	}
	if err := f.fs.Rename(tmp.Name(), dest); err != nil {
		return "", backoff.Permanent(err)
	}

	success = true
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Text downloads a small text resource such as a checksum listing
func (f *Fetcher) Text(ctx context.Context, url string) (string, error) {
	var body []byte
	err := f.retry(ctx, filepath.Base(url), ports.InstallHooks{}, func() error {
		resp, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxChecksumSize))
		return err
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CloseIdleConnections releases pooled connections
func (f *Fetcher) CloseIdleConnections() {
	f.client.CloseIdleConnections()
}

type progressWriter struct {
	written int64
	total   int64
	report  func(downloaded, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.report != nil {
		p.report(p.written, p.total)
	}
	return len(b), nil
}

package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// waitDelay bounds how long Wait keeps reading pipes after a kill
const waitDelay = 5 * time.Second

// Client runs yt-dlp and ffmpeg as child processes
type Client struct {
	locator *Locator
	logger  zerolog.Logger
}

// NewClient creates a client that resolves binaries through locator
func NewClient(locator *Locator, logger zerolog.Logger) *Client {
	return &Client{locator: locator, logger: logger}
}

// Locator returns the binary locator used by the client
func (c *Client) Locator() *Locator {
	return c.locator
}

func (c *Client) command(ctx context.Context, bin string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = childEnv(os.Environ(), c.locator.BinDir, runtime.GOOS)
	cmd.WaitDelay = waitDelay
	configureProcess(cmd)
	c.logger.Debug().Str("bin", bin).Strs("args", args).Msg("exec")
	return cmd
}

func (c *Client) ytDlp() (string, error) {
	status := c.locator.Resolve(domain.ToolYtDlp)
	if !status.Available() {
		return "", domain.ErrYtDlpNotFound
	}
	return status.Path, nil
}

// Download runs yt-dlp for one entry, streaming progress through emit
func (c *Client) Download(ctx context.Context, req ports.DownloadRequest, emit func(domain.Event)) (*ports.DownloadResult, error) {
	if emit == nil {
		emit = func(domain.Event) {}
	}

	bin, err := c.ytDlp()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpeg := c.locator.Resolve(domain.ToolFFmpeg)
	cmd := c.command(ctx, bin, BuildArgs(req, ffmpeg.Path)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr := &tailBuffer{}
	cmd.Stderr = stderr

	emit(domain.Event{JobID: req.JobID, Kind: domain.EventStarting, Message: req.Entry.Title})

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start yt-dlp: %w", err)
		emit(domain.Event{JobID: req.JobID, Kind: domain.EventFailed, Err: err})
		return nil, err
	}

	outputPath := c.stream(stdout, req.JobID, emit)
	waitErr := cmd.Wait()

	if waitErr != nil && ctx.Err() != nil {
		c.logger.Info().Str("job", req.JobID).Msg("download stopped")
		emit(domain.Event{JobID: req.JobID, Kind: domain.EventStopped, Err: domain.ErrStopped})
		return nil, domain.ErrStopped
	}
	if waitErr != nil {
		err := translateError(stderr.String(), waitErr)
		c.logger.Warn().Err(err).Str("job", req.JobID).Msg("download failed")
		emit(domain.Event{JobID: req.JobID, Kind: domain.EventFailed, Err: err})
		return nil, err
	}

	if outputPath == "" {
		outputPath = expectedOutput(req)
	}
	emit(domain.Event{JobID: req.JobID, Kind: domain.EventCompleted, Percent: 100, OutputPath: outputPath})
	return &ports.DownloadResult{OutputPath: outputPath}, nil
}

// stream reads stdout until EOF and returns the last destination seen
func (c *Client) stream(r io.Reader, jobID string, emit func(domain.Event)) string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var destination string
	stages := make(map[string]bool)

	for scanner.Scan() {
		line := parseLine(scanner.Text())
		if line.Destination != "" {
			destination = line.Destination
		}
		if line.IsProgress {
			emit(domain.Event{
				JobID:   jobID,
				Kind:    domain.EventProgress,
				Percent: line.Percent,
				Speed:   line.Speed,
				ETA:     line.ETA,
			})
		}
		if line.Stage != "" && !stages[line.Stage] {
			stages[line.Stage] = true
			emit(domain.Event{JobID: jobID, Kind: domain.EventConverting, Message: line.Stage})
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.Debug().Err(err).Msg("stdout scan stopped")
		// keep the child from blocking on a full pipe
		_, _ = io.Copy(io.Discard, r)
	}
	return destination
}

// Update runs yt-dlp's self update and returns its status line
func (c *Client) Update(ctx context.Context) (string, error) {
	bin, err := c.ytDlp()
	if err != nil {
		return "", err
	}

	stderr := &tailBuffer{}
	cmd := c.command(ctx, bin, "-U")
	cmd.Stderr = stderr
	out, err := cmd.Output()
	if err != nil {
		if detail := lastErrorLine(stderr.String()); detail != "" {
			return "", fmt.Errorf("yt-dlp update failed: %s", detail)
		}
		return "", fmt.Errorf("yt-dlp update failed: %w", err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "up to date") || strings.Contains(line, "Updated") {
			return strings.TrimSpace(line), nil
		}
	}
	return "update check finished", nil
}

// FFmpegVersion runs ffmpeg -version and returns the first line, shortened
func (c *Client) FFmpegVersion(ctx context.Context) (string, error) {
	status := c.locator.Resolve(domain.ToolFFmpeg)
	if !status.Available() {
		return "", domain.ErrFFmpegNotFound
	}

	out, err := c.command(ctx, status.Path, "-version").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("ffmpeg exited with status %d", exitErr.ExitCode())
		}
		return "", fmt.Errorf("failed to run ffmpeg: %w", err)
	}
	return shortVersion(string(out)), nil
}

func shortVersion(output string) string {
	first, _, _ := strings.Cut(output, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "ffmpeg detected"
	}
	if len(first) > 30 {
		first = first[:30]
	}
	return first
}

var _ ports.MediaDownloader = (*Client)(nil)

package ytdlp

import (
	"fmt"
	"strings"

	"github.com/devbush/ytgrab/internal/domain"
)

var stderrPatterns = []struct {
	needles []string
	err     error
}{
	{[]string{"Private video", "Video unavailable"}, domain.ErrVideoUnavailable},
	{[]string{"HTTP Error 429"}, domain.ErrRateLimited},
	{[]string{"Unsupported URL"}, domain.ErrUnsupportedURL},
	{[]string{"Sign in to confirm your age"}, domain.ErrAgeRestricted},
	{[]string{"ffprobe and ffmpeg not found", "ffmpeg not found"}, domain.ErrFFmpegNotFound},
}

// translateError maps yt-dlp's stderr onto a domain error
func translateError(stderr string, cause error) error {
	detail := lastErrorLine(stderr)

	for _, p := range stderrPatterns {
		for _, needle := range p.needles {
			if strings.Contains(stderr, needle) {
				if detail == "" {
					return p.err
				}
				return fmt.Errorf("%w: %s", p.err, detail)
			}
		}
	}

	if detail != "" {
		return fmt.Errorf("yt-dlp failed: %s", detail)
	}
	return fmt.Errorf("yt-dlp failed: %w", cause)
}

// lastErrorLine prefers the last "ERROR:" line, else the last non-empty one
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
		if last == "" {
			last = line
		}
	}
	return last
}

package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

const untitled = "Untitled"

type probeEntry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Thumbnail      string   `json:"thumbnail"`
	Duration       *float64 `json:"duration"`
	DurationString string   `json:"duration_string"`
	Thumbnails     []struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
}

type probeResponse struct {
	Type           string       `json:"_type"`
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	WebpageURL     string       `json:"webpage_url"`
	Thumbnail      string       `json:"thumbnail"`
	Duration       *float64     `json:"duration"`
	DurationString string       `json:"duration_string"`
	Entries        []probeEntry `json:"entries"`
}

// Probe runs a flat extraction for url
func (c *Client) Probe(ctx context.Context, url string) (*domain.PlaylistInfo, error) {
	bin, err := c.ytDlp()
	if err != nil {
		return nil, err
	}

	stderr := &tailBuffer{}
	cmd := c.command(ctx, bin, "--flat-playlist", "-J", "--no-warnings", url)
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, translateError(stderr.String(), err)
	}
	return parseProbe(out, url)
}

func parseProbe(data []byte, sourceURL string) (*domain.PlaylistInfo, error) {
	var resp probeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	if resp.Type == "playlist" {
		info := &domain.PlaylistInfo{
			Title:      orDefault(resp.Title, "Playlist"),
			IsPlaylist: true,
			SourceURL:  sourceURL,
		}
		for _, e := range resp.Entries {
			if e.ID == "" {
				continue
			}
			thumb := e.Thumbnail
			if thumb == "" && len(e.Thumbnails) > 0 {
				thumb = e.Thumbnails[len(e.Thumbnails)-1].URL
			}
			info.Entries = append(info.Entries, domain.MediaEntry{
				ID:             e.ID,
				Title:          orDefault(e.Title, untitled),
				URL:            orDefault(e.URL, domain.YouTubeWatchURL(e.ID)),
				Thumbnail:      thumb,
				Duration:       e.Duration,
				DurationString: e.DurationString,
				Selected:       true,
			})
		}
		return info, nil
	}

	return &domain.PlaylistInfo{
		Title: orDefault(resp.Title, untitled),
		Entries: []domain.MediaEntry{{
			ID:             resp.ID,
			Title:          orDefault(resp.Title, untitled),
			URL:            orDefault(resp.WebpageURL, sourceURL),
			Thumbnail:      resp.Thumbnail,
			Duration:       resp.Duration,
			DurationString: resp.DurationString,
			Selected:       true,
		}},
		SourceURL: sourceURL,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

var _ ports.MediaProber = (*Client)(nil)

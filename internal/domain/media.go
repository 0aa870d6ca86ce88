package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// YouTubeWatchURL builds the canonical watch URL for a video ID
func YouTubeWatchURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

// MediaEntry is a single downloadable video
type MediaEntry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	Duration       *float64 `json:"duration,omitempty"`
	DurationString string   `json:"duration_string,omitempty"`
	Selected       bool     `json:"selected"`
}

// FormatDuration returns a human readable duration like 3:07
func (e *MediaEntry) FormatDuration() string {
	if e.DurationString != "" {
		return e.DurationString
	}
	if e.Duration != nil {
		total := int(*e.Duration)
		return fmt.Sprintf("%d:%02d", total/60, total%60)
	}
	return "??:??"
}

// PlaylistInfo is the result of analyzing a URL. A single video is
// represented as a one-entry list with IsPlaylist false.
type PlaylistInfo struct {
	Title      string       `json:"title"`
	Entries    []MediaEntry `json:"entries"`
	IsPlaylist bool         `json:"is_playlist"`
	SourceURL  string       `json:"source_url"`
}

// Selected returns the selected entries in playlist order
func (p *PlaylistInfo) Selected() []MediaEntry {
	var out []MediaEntry
	for _, e := range p.Entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// SelectOnly marks exactly the given 0-based indexes as selected
func (p *PlaylistInfo) SelectOnly(indexes []int) {
	want := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		want[i] = true
	}
	for i := range p.Entries {
		p.Entries[i].Selected = want[i]
	}
}

// ValidateURL checks that s looks like something yt-dlp can be pointed at
func ValidateURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %s (expected http or https)", ErrInvalidURL, s)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %s (missing host)", ErrInvalidURL, s)
	}
	return s, nil
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/devbush/ytgrab/internal/domain"
)

// FormatSize formats a byte count, e.g. 1536 -> "1.5 KiB"
func FormatSize(b int64) string {
	if b < 0 {
		return "?"
	}
	return humanize.IBytes(uint64(b))
}

// FormatElapsed formats a duration rounded to tenths of a second
func FormatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Truncate shortens s to at most n terminal columns, ending with "..."
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	tail := "..."
	limit := n - len(tail)
	if n <= len(tail) {
		tail, limit = "", n
	}

	var sb strings.Builder
	width := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if width+w > limit {
			break
		}
		sb.WriteRune(r)
		width += w
	}
	return sb.String() + tail
}

// FormatEntryLine formats a playlist entry as a single line for display
// Example: " 3. Never Gonna Give You Up            3:33"
func FormatEntryLine(index int, entry domain.MediaEntry, maxTitleLen int) string {
	title := Truncate(entry.Title, maxTitleLen)
	pad := maxTitleLen - lipgloss.Width(title)
	if pad < 0 {
		pad = 0
	}

	return fmt.Sprintf("%3d. %s%*s  %7s", index+1, title, pad, "", entry.FormatDuration())
}

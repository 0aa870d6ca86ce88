package domain

import (
	"fmt"
	"strings"
)

// Format is the container or codec the user wants on disk
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatM4A  Format = "m4a"
	FormatFLAC Format = "flac"
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
)

// DefaultFormat is used when nothing is configured
const DefaultFormat = FormatMP3

// DefaultAudioQuality is passed to yt-dlp for lossy audio extraction
const DefaultAudioQuality = "320K"

// Formats lists every supported format, audio first
func Formats() []Format {
	return []Format{FormatMP3, FormatWAV, FormatM4A, FormatFLAC, FormatMP4, FormatWebM}
}

// ParseFormat converts a user supplied string into a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (use one of mp3, wav, m4a, flac, mp4, webm)", ErrUnknownFormat, s)
}

// IsAudio reports whether the format is produced by audio extraction
func (f Format) IsAudio() bool {
	switch f {
	case FormatMP3, FormatWAV, FormatM4A, FormatFLAC:
		return true
	}
	return false
}

// Label returns a short description for menus
func (f Format) Label() string {
	switch f {
	case FormatMP3:
		return "MP3 (audio)"
	case FormatWAV:
		return "WAV (audio, lossless)"
	case FormatM4A:
		return "M4A (audio)"
	case FormatFLAC:
		return "FLAC (audio, lossless)"
	case FormatMP4:
		return "MP4 (video)"
	case FormatWebM:
		return "WebM (video)"
	}
	return string(f)
}

func (f Format) String() string {
	return string(f)
}

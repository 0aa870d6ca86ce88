package ytdlp

import (
	"path/filepath"

	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/ports"
)

// BuildArgs returns the yt-dlp arguments for a download. The URL is always
// the last argument.
func BuildArgs(req ports.DownloadRequest, ffmpegPath string) []string {
	template := filepath.Join(req.OutputDir, domain.OutputBaseName(req.Entry)+".%(ext)s")

	args := []string{
		"--no-playlist",
		"--newline",
		"--progress",
		"--embed-thumbnail",
		"--add-metadata",
		"-o", template,
	}

	switch req.Format {
	case domain.FormatMP3:
		quality := req.AudioQuality
		if quality == "" {
			quality = domain.DefaultAudioQuality
		}
		args = append(args, "-x", "--audio-format", "mp3", "--audio-quality", quality)
	case domain.FormatWAV, domain.FormatM4A, domain.FormatFLAC:
		args = append(args, "-x", "--audio-format", string(req.Format))
	case domain.FormatMP4:
		args = append(args,
			"-f", "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
			"--merge-output-format", "mp4",
		)
	case domain.FormatWebM:
		args = append(args,
			"-f", "bestvideo[ext=webm]+bestaudio/best",
			"--merge-output-format", "webm",
		)
	}

	if ffmpegPath != "" {
		args = append(args, "--ffmpeg-location", ffmpegPath)
	}

	return append(args, req.Entry.URL)
}

// expectedOutput guesses the final file when yt-dlp printed no destination
func expectedOutput(req ports.DownloadRequest) string {
	return filepath.Join(req.OutputDir, domain.OutputBaseName(req.Entry)+"."+string(req.Format))
}

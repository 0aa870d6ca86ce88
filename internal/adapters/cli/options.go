package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/devbush/ytgrab/internal/application"
	"github.com/devbush/ytgrab/internal/config"
	"github.com/devbush/ytgrab/internal/domain"
)

// maxParallel bounds --parallel
const maxParallel = 8

// downloadFlags holds the flags shared by every command that downloads
type downloadFlags struct {
	format          string
	audioQuality    string
	outputDir       string
	items           string
	all             bool
	parallel        int
	continueOnError bool
	noCache         bool
	skipSetup       bool
}

var dl downloadFlags

// queueOptions merges flags over config defaults. outputDir is resolved
// separately because it may involve a prompt.
func (f downloadFlags) queueOptions(cfg *config.Config, outputDir string) (application.QueueOptions, error) {
	format, err := cfg.GetFormat()
	if err != nil {
		return application.QueueOptions{}, fmt.Errorf("config: %w", err)
	}
	if f.format != "" {
		if format, err = domain.ParseFormat(f.format); err != nil {
			return application.QueueOptions{}, err
		}
	}

	quality := cfg.Defaults.AudioQuality
	if f.audioQuality != "" {
		quality = f.audioQuality
	}
	if quality == "" {
		quality = domain.DefaultAudioQuality
	}

	parallel := cfg.Defaults.Parallel
	if f.parallel > 0 {
		parallel = f.parallel
	}
	parallel = max(1, min(parallel, maxParallel))

	return application.QueueOptions{
		Format:          format,
		AudioQuality:    quality,
		OutputDir:       outputDir,
		Parallel:        parallel,
		ContinueOnError: f.continueOnError,
	}, nil
}

// applySelection marks entries according to --items and --all. It reports
// whether the selection was decided by flags.
func (f downloadFlags) applySelection(info *domain.PlaylistInfo) (bool, error) {
	switch {
	case f.items != "":
		indexes, err := domain.ParseSelection(f.items, len(info.Entries))
		if err != nil {
			return false, err
		}
		info.SelectOnly(indexes)
		return true, nil
	case f.all:
		for i := range info.Entries {
			info.Entries[i].Selected = true
		}
		return true, nil
	}
	return false, nil
}

// explicitOutputDir returns the directory from --output-dir or the config,
// made absolute. Empty means the user never chose one.
func (f downloadFlags) explicitOutputDir(cfg *config.Config) (string, error) {
	dir := f.outputDir
	if dir == "" {
		if !cfg.HasDownloadDir() {
			return "", nil
		}
		dir = cfg.Defaults.DownloadDir
	}
	return filepath.Abs(dir)
}

// isInteractive reports whether both stdin and stdout are terminals
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

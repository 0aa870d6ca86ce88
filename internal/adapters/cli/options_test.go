package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/devbush/ytgrab/internal/config"
	"github.com/devbush/ytgrab/internal/domain"
)

func TestQueueOptions_Defaults(t *testing.T) {
	opts, err := downloadFlags{}.queueOptions(config.DefaultConfig(), "/music")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Format != domain.FormatMP3 {
		t.Errorf("Format = %s, want mp3", opts.Format)
	}
	if opts.AudioQuality != "320K" {
		t.Errorf("AudioQuality = %s, want 320K", opts.AudioQuality)
	}
	if opts.Parallel != 1 || opts.ContinueOnError {
		t.Errorf("Parallel = %d ContinueOnError = %v, want 1 false", opts.Parallel, opts.ContinueOnError)
	}
	if opts.OutputDir != "/music" {
		t.Errorf("OutputDir = %s, want /music", opts.OutputDir)
	}
}

func TestQueueOptions_FlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Format = "wav"
	cfg.Defaults.Parallel = 3

	flags := downloadFlags{format: "FLAC", audioQuality: "192K", parallel: 50, continueOnError: true}
	opts, err := flags.queueOptions(cfg, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Format != domain.FormatFLAC {
		t.Errorf("Format = %s, want flac", opts.Format)
	}
	if opts.AudioQuality != "192K" {
		t.Errorf("AudioQuality = %s, want 192K", opts.AudioQuality)
	}
	if opts.Parallel != maxParallel {
		t.Errorf("Parallel = %d, want %d", opts.Parallel, maxParallel)
	}
	if !opts.ContinueOnError {
		t.Error("ContinueOnError should be set")
	}
}

func TestQueueOptions_InvalidFormat(t *testing.T) {
	_, err := downloadFlags{format: "ogg"}.queueOptions(config.DefaultConfig(), "")
	if !errors.Is(err, domain.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}

	cfg := config.DefaultConfig()
	cfg.Defaults.Format = "aiff"
	if _, err := (downloadFlags{}).queueOptions(cfg, ""); !errors.Is(err, domain.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat from config", err)
	}
}

func playlist(n int) *domain.PlaylistInfo {
	info := &domain.PlaylistInfo{IsPlaylist: true}
	for i := 0; i < n; i++ {
		info.Entries = append(info.Entries, domain.MediaEntry{ID: string(rune('a' + i)), Selected: true})
	}
	return info
}

func selectedIDs(info *domain.PlaylistInfo) string {
	var s string
	for _, e := range info.Selected() {
		s += e.ID
	}
	return s
}

func TestApplySelection(t *testing.T) {
	tests := []struct {
		name    string
		flags   downloadFlags
		decided bool
		want    string
		wantErr bool
	}{
		{"no flags", downloadFlags{}, false, "abcde", false},
		{"items", downloadFlags{items: "1,3-4"}, true, "acd", false},
		{"all", downloadFlags{all: true}, true, "abcde", false},
		{"items win over all", downloadFlags{items: "5", all: true}, true, "e", false},
		{"out of range", downloadFlags{items: "9"}, false, "abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := playlist(5)
			decided, err := tt.flags.applySelection(info)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if decided != tt.decided {
				t.Errorf("decided = %v, want %v", decided, tt.decided)
			}
			if got := selectedIDs(info); got != tt.want {
				t.Errorf("selected = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplicitOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()

	dir, err := downloadFlags{}.explicitOutputDir(cfg)
	if err != nil || dir != "" {
		t.Fatalf("explicitOutputDir() = %q, %v, want empty", dir, err)
	}

	cfg.Defaults.DownloadDir = "/saved"
	dir, _ = downloadFlags{}.explicitOutputDir(cfg)
	if !filepath.IsAbs(dir) || filepath.Base(dir) != "saved" {
		t.Errorf("explicitOutputDir() = %q, want config value", dir)
	}

	dir, _ = downloadFlags{outputDir: "rel"}.explicitOutputDir(cfg)
	if !filepath.IsAbs(dir) || filepath.Base(dir) != "rel" {
		t.Errorf("explicitOutputDir() = %q, want absolute path ending in rel", dir)
	}
}

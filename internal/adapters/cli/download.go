package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devbush/ytgrab/internal/adapters/cli/tui"
	"github.com/devbush/ytgrab/internal/application"
	"github.com/devbush/ytgrab/internal/config"
	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/i18n"
)

var errCancelled = errors.New("cancelled")

// ensureTools runs the first-run bootstrap when a tool is missing
func ensureTools(ctx context.Context, app *App) error {
	if dl.skipSetup {
		return nil
	}

	missing := false
	for _, s := range app.SetupSvc.Status() {
		if !s.Available() {
			missing = true
		}
	}
	if !missing {
		return nil
	}

	display := tui.NewSetupDisplay(os.Stdout, quietFlag, isTerminal(os.Stdout))
	return app.SetupSvc.Bootstrap(ctx, display.Handle)
}

func analyze(ctx context.Context, app *App, rawURL string) (*domain.PlaylistInfo, error) {
	spin := tui.StartSpinner(os.Stdout, app.Msg.T(i18n.AnalyzeRunning), !quietFlag && isTerminal(os.Stdout))
	result, err := app.AnalyzeSvc.Analyze(ctx, rawURL, application.AnalyzeOptions{NoCache: dl.noCache})
	spin.Stop()
	if err != nil {
		return nil, err
	}

	info := result.Info
	app.Logger.Debug().Str("url", info.SourceURL).Int("entries", len(info.Entries)).
		Bool("cached", result.FromCache).Msg("analyzed")
	if !quietFlag {
		fmt.Println(app.Msg.T(i18n.AnalyzeFound, len(info.Entries), info.Title))
	}
	return info, nil
}

// chooseEntries applies --items/--all, falling back to the interactive
// selector for playlists
func chooseEntries(app *App, info *domain.PlaylistInfo, interactive bool) ([]domain.MediaEntry, error) {
	decided, err := dl.applySelection(info)
	if err != nil {
		return nil, err
	}

	if !decided && interactive && info.IsPlaylist && len(info.Entries) > 1 {
		indexes, err := tui.RunEntrySelector(app.Msg.T(i18n.PromptSelect), info.Entries)
		if err != nil {
			return nil, err
		}
		if indexes == nil {
			return nil, errCancelled
		}
		info.SelectOnly(indexes)
	}

	selected := info.Selected()
	if len(selected) == 0 {
		return nil, domain.ErrNoSelection
	}
	return selected, nil
}

// resolveOutputDir returns the download directory. On first use in a
// terminal the user is asked for one and the answer is saved.
func resolveOutputDir(app *App, interactive bool) (string, error) {
	dir, err := dl.explicitOutputDir(app.Config)
	if err != nil || dir != "" {
		return dir, err
	}

	dir = config.DefaultDownloadDir()
	if !interactive {
		return dir, nil
	}

	answer, ok, err := tui.RunPrompt(app.Msg.T(i18n.PromptDownloadDir), dir, nil)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errCancelled
	}

	if err := app.Config.Set("defaults.download_dir", expandHome(answer)); err != nil {
		return "", err
	}
	if err := saveDownloadDir(app.Config.Defaults.DownloadDir); err != nil {
		app.Logger.Warn().Err(err).Msg("could not save download directory")
	}
	return app.Config.Defaults.DownloadDir, nil
}

// saveDownloadDir persists dir without writing environment overrides
func saveDownloadDir(dir string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return err
	}
	cfg.Defaults.DownloadDir = dir
	return cfg.SaveDefault()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func runQueue(ctx context.Context, app *App, entries []domain.MediaEntry, opts application.QueueOptions) error {
	jobs := application.NewJobs(entries, opts)
	progress := tui.NewQueueProgress(os.Stdout, jobs, app.Msg, quietFlag, isTerminal(os.Stdout))

	app.Logger.Info().Int("jobs", len(jobs)).Str("format", string(opts.Format)).
		Str("dir", opts.OutputDir).Int("parallel", opts.Parallel).Msg("queue start")

	summary := app.QueueSvc.Run(ctx, jobs, opts, progress.Update)
	progress.Complete(summary.Jobs, summary.Duration)
	return summary.Err()
}

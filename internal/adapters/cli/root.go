package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devbush/ytgrab/internal/adapters/cli/tui"
	"github.com/devbush/ytgrab/internal/domain"
	"github.com/devbush/ytgrab/internal/i18n"
	"github.com/devbush/ytgrab/internal/log"
)

var (
	// Global flags
	langFlag    string
	quietFlag   bool
	verboseFlag bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ytgrab [url]",
		Short: "Download audio and video with yt-dlp",
		Long: `ytgrab downloads videos and playlists as audio or video files.

It manages its own copies of yt-dlp and ffmpeg: on first use both tools
are downloaded into the data directory when they are not already installed.

Provide a video or playlist URL to download it, or run without arguments
in a terminal for an interactive prompt.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging,
		RunE:              runRoot,
		SilenceUsage:      true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&langFlag, "lang", "", "Interface language: auto, en, ko, ja, zh-CN")
	pf.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output and logs")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")
	addDownloadFlags(rootCmd)

	rootCmd.AddCommand(NewInfoCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func addDownloadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&dl.format, "format", "f", "", "Output format: mp3, wav, m4a, flac, mp4, webm")
	f.StringVar(&dl.audioQuality, "audio-quality", "", "MP3 bitrate passed to yt-dlp (e.g. 320K)")
	f.StringVarP(&dl.outputDir, "output-dir", "o", "", "Download directory (default: configured download_dir)")
	f.StringVar(&dl.items, "items", "", "Playlist items to download, e.g. 1-3,7")
	f.BoolVar(&dl.all, "all", false, "Download every playlist item without asking")
	f.IntVar(&dl.parallel, "parallel", 0, "Number of simultaneous downloads (default: config, 1)")
	f.BoolVar(&dl.continueOnError, "continue-on-error", false, "Keep downloading after a failed item")
	f.BoolVar(&dl.noCache, "no-cache", false, "Analyze the URL again instead of using the cache")
	f.BoolVar(&dl.skipSetup, "skip-setup", false, "Do not install missing yt-dlp or ffmpeg")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := ""
	if verboseFlag {
		level = "debug"
	}
	log.Configure(log.Config{
		Level:   level,
		Output:  os.Stderr,
		Console: true,
		Quiet:   quietFlag,
	})
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	ctx := cmd.Context()

	if len(args) == 0 {
		if !isInteractive() {
			return errors.New("a URL is required when not running in a terminal")
		}
		err = runInteractive(ctx, app)
	} else {
		err = runDownload(ctx, app, args[0], isInteractive())
	}

	if errors.Is(err, errCancelled) {
		fmt.Println("Cancelled")
		return nil
	}
	return err
}

func runDownload(ctx context.Context, app *App, rawURL string, interactive bool) error {
	if err := ensureTools(ctx, app); err != nil {
		return err
	}

	info, err := analyze(ctx, app, rawURL)
	if err != nil {
		return err
	}
	entries, err := chooseEntries(app, info, interactive)
	if err != nil {
		return err
	}

	outputDir, err := resolveOutputDir(app, interactive)
	if err != nil {
		return err
	}
	opts, err := dl.queueOptions(app.Config, outputDir)
	if err != nil {
		return err
	}
	return runQueue(ctx, app, entries, opts)
}

// runInteractive prompts for the URL, the entries and the format
func runInteractive(ctx context.Context, app *App) error {
	if err := ensureTools(ctx, app); err != nil {
		return err
	}

	rawURL, ok, err := tui.RunPrompt(app.Msg.T(i18n.PromptURL), "", func(s string) error {
		_, err := domain.ValidateURL(s)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}

	info, err := analyze(ctx, app, rawURL)
	if err != nil {
		return err
	}
	entries, err := chooseEntries(app, info, true)
	if err != nil {
		return err
	}

	outputDir, err := resolveOutputDir(app, true)
	if err != nil {
		return err
	}
	opts, err := dl.queueOptions(app.Config, outputDir)
	if err != nil {
		return err
	}

	if dl.format == "" {
		format, ok, err := tui.RunFormatMenu(app.Msg.T(i18n.PromptFormat), opts.Format)
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
		opts.Format = format
	}

	return runQueue(ctx, app, entries, opts)
}

// Execute runs the CLI. Ctrl-C cancels running downloads.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

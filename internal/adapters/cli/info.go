package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbush/ytgrab/internal/adapters/cli/tui"
	"github.com/devbush/ytgrab/internal/application"
	"github.com/devbush/ytgrab/internal/domain"
)

var infoJSONFlag bool

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <url>",
		Short: "List the items behind a URL without downloading",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	cmd.Flags().BoolVar(&infoJSONFlag, "json", false, "Print the analysis as JSON")
	cmd.Flags().BoolVar(&dl.noCache, "no-cache", false, "Analyze the URL again instead of using the cache")
	cmd.Flags().BoolVar(&dl.skipSetup, "skip-setup", false, "Do not install missing yt-dlp or ffmpeg")
	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	ctx := cmd.Context()

	if err := ensureTools(ctx, app); err != nil {
		return err
	}

	result, err := app.AnalyzeSvc.Analyze(ctx, args[0], application.AnalyzeOptions{NoCache: dl.noCache})
	if err != nil {
		return err
	}

	if infoJSONFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Info)
	}

	printInfo(result.Info, result.FromCache)
	return nil
}

func printInfo(info *domain.PlaylistInfo, cached bool) {
	kind := "Video"
	if info.IsPlaylist {
		kind = "Playlist"
	}

	fmt.Println()
	fmt.Printf("%s: %s\n", kind, info.Title)
	fmt.Printf("URL:   %s\n", info.SourceURL)
	fmt.Printf("Items: %d", len(info.Entries))
	if cached {
		fmt.Print(" [cached]")
	}
	fmt.Println()
	fmt.Println()
	for i, e := range info.Entries {
		fmt.Println(tui.FormatEntryLine(i, e, 50))
	}
	fmt.Println()
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/ytgrab/internal/domain"
)

var batchFileFlag string

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [urls...]",
		Short: "Download several URLs in one queue",
		Long: `Download several videos or playlists in one queue.

Provide URLs as arguments and/or via a file with --file. Playlists are
expanded to all of their items.

Example:
  ytgrab batch https://youtu.be/a https://youtu.be/b
  ytgrab batch --file urls.txt --format flac
  ytgrab batch --file urls.txt --parallel 3 --continue-on-error`,
		RunE: runBatch,
	}

	cmd.Flags().StringVar(&batchFileFlag, "file", "", "File with URLs (one per line)")
	addDownloadFlags(cmd)
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	ctx := cmd.Context()

	urls, err := CollectInputs(args, batchFileFlag, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no valid URLs provided")
	}

	if err := ensureTools(ctx, app); err != nil {
		return err
	}

	var infos []*domain.PlaylistInfo
	for _, u := range urls {
		info, err := analyze(ctx, app, u)
		if err != nil {
			if ctx.Err() != nil || !dl.continueOnError {
				return fmt.Errorf("%s: %w", u, err)
			}
			fmt.Printf("✗ %s: %v\n", u, err)
			continue
		}
		infos = append(infos, info)
	}

	entries := mergeEntries(infos)
	if len(entries) == 0 {
		return domain.ErrNoSelection
	}

	outputDir, err := resolveOutputDir(app, isInteractive())
	if err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Println("Cancelled")
			return nil
		}
		return err
	}
	opts, err := dl.queueOptions(app.Config, outputDir)
	if err != nil {
		return err
	}
	return runQueue(ctx, app, entries, opts)
}

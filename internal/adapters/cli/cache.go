package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/ytgrab/internal/adapters/cli/tui"
	"github.com/devbush/ytgrab/internal/config"
)

var clearAllFlag bool

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached URL analyses",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear [url]",
		Short: "Remove expired entries, one URL, or everything with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCacheClear,
	}
	clearCmd.Flags().BoolVar(&clearAllFlag, "all", false, "Clear all cache entries")

	cmd.AddCommand(clearCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	stats, err := app.CacheSvc.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Cache Statistics:")
	fmt.Printf("  Items: %d\n", stats.ItemCount)
	fmt.Printf("  Size:  %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Printf("  TTL:   %s\n", app.Config.Defaults.CacheTTL)
	fmt.Printf("  Path:  %s\n", config.ProbeCacheDir())
	fmt.Println()

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch {
	case clearAllFlag:
		if err := app.CacheSvc.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("All cache entries cleared")
	case len(args) == 1:
		if err := app.CacheSvc.Forget(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed cached analysis for %s\n", args[0])
	default:
		cleaned, err := app.CacheSvc.CleanExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d expired entries\n", cleaned)
	}

	return nil
}

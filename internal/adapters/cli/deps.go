package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbush/ytgrab/internal/adapters/cli/tui"
	"github.com/devbush/ytgrab/internal/config"
	"github.com/devbush/ytgrab/internal/domain"
)

var depsForceFlag bool

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage dependencies (yt-dlp, ffmpeg)",
		RunE:  runDepsStatus,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	installCmd := &cobra.Command{
		Use:       "install [yt-dlp|ffmpeg]",
		Short:     "Install missing tools into the data directory",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(domain.ToolYtDlp), string(domain.ToolFFmpeg)},
		RunE:      runDepsInstall,
	}
	installCmd.Flags().BoolVar(&depsForceFlag, "force", false, "Reinstall even if the tool is already present")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp and check ffmpeg",
		RunE:  runDepsUpdate,
	}

	cmd.AddCommand(statusCmd, installCmd, updateCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Dependency Status:")
	fmt.Println()
	for _, s := range app.SetupSvc.Status() {
		switch {
		case !s.Available():
			fmt.Printf("  %-8s not found\n", s.Tool+":")
		case s.Bundled:
			fmt.Printf("  %-8s installed (%s)\n", s.Tool+":", s.Path)
		default:
			fmt.Printf("  %-8s system (%s)\n", s.Tool+":", s.Path)
		}
	}
	fmt.Println()
	fmt.Printf("  Data directory: %s\n", config.BinDir())
	fmt.Println()

	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := config.EnsureDirs(); err != nil {
		return err
	}

	tools := []domain.Tool{domain.ToolYtDlp, domain.ToolFFmpeg}
	if len(args) == 1 {
		tools = []domain.Tool{domain.Tool(args[0])}
	}

	display := tui.NewSetupDisplay(os.Stdout, quietFlag, isTerminal(os.Stdout))
	for _, tool := range tools {
		if status := app.SetupSvc.Resolve(tool); status.Available() && !depsForceFlag {
			fmt.Printf("%s is already installed (%s)\n", tool, status.Path)
			continue
		}
		if err := app.SetupSvc.Install(ctx, tool, display.Handle); err != nil {
			return fmt.Errorf("failed to install %s: %w", tool, err)
		}
		display.Handle(domain.SetupEvent{
			Stage:   domain.SetupCompleted,
			Message: fmt.Sprintf("%s installed", tool),
		})
	}
	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !app.SetupSvc.Resolve(domain.ToolYtDlp).Available() {
		return fmt.Errorf("%w: run 'ytgrab deps install' first", domain.ErrYtDlpNotFound)
	}

	display := tui.NewSetupDisplay(os.Stdout, quietFlag, isTerminal(os.Stdout))
	if _, err := app.SetupSvc.Update(ctx, display.Handle); err != nil {
		return err
	}
	if app.SetupSvc.Resolve(domain.ToolFFmpeg).Available() {
		_, _ = app.SetupSvc.CheckFFmpeg(ctx, display.Handle)
	}
	return nil
}

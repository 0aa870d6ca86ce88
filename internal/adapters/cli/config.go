package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/devbush/ytgrab/internal/config"
)

// NewConfigCmd creates the config subcommand
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		RunE:  runConfigShow,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.ConfigPath())
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a setting and save it",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE:      runConfigSet,
	}

	cmd.AddCommand(showCmd, pathCmd, setCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	// load without env overrides so they are not persisted
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return err
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := cfg.SaveDefault(); err != nil {
		return err
	}

	fmt.Printf("Saved %s to %s\n", args[0], config.ConfigPath())
	return nil
}

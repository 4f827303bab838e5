// Package cli provides the headcount commands.
package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/config"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dataDir    string
	logLevel   string
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "headcount",
		Short: "District education analytics",
		Long: `headcount loads per-district education data (kindergarten participation,
graduation rates, standardized test proficiency and economic indicators), computes
variations, correlations, growth rankings and threshold result sets, and renders
them into a static report or serves them over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv(config.EnvConfig),
		"YAML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding the source CSV files")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newBuildCommand(opts),
		newServeCommand(opts),
		newGrowthCommand(opts),
		newCorrelateCommand(opts),
		newResultsCommand(opts),
		newVariationCommand(opts),
		newSmokeCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// printJSON writes v as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("headcount %s (%s)\n", Version, Commit)
		},
	}
}

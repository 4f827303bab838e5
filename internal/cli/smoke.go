package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/smoke"
	"github.com/okian/headcount/pkg/logger"
)

func newSmokeCommand() *cobra.Command {
	cfg := smoke.Config{}

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check a running headcount API end to end",
		Long: `smoke lists the districts of a running server, fetches each one concurrently and
verifies the growth ranking and correlation counts against the listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr(), "text"); err != nil {
				return err
			}
			stats, err := smoke.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", smoke.DefaultBaseURL, "base URL of the service")
	cmd.Flags().IntVar(&cfg.Workers, "workers", smoke.DefaultWorkers, "concurrent district fetches")
	cmd.Flags().IntVar(&cfg.Grade, "grade", smoke.DefaultGrade, "grade of the growth ranking checked")
	cmd.Flags().IntVar(&cfg.Top, "top", smoke.DefaultTop, "growth entries requested")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", smoke.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log every district fetch")
	return cmd
}

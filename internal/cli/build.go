package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/adapters/render"
	"github.com/okian/headcount/pkg/logger"
)

type buildOutput struct {
	BuildID   string `json:"build_id"`
	OutputDir string `json:"output_dir"`
	Pages     int    `json:"pages"`
	Districts int    `json:"districts"`
}

func newBuildCommand(opts *globalOptions) *cobra.Command {
	var (
		outDir  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the static HTML report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if outDir == "" {
				outDir = cfg.OutputDir
			}
			if workers < 1 {
				workers = cfg.RenderWorkers
			}

			r, err := render.New(svc, outDir,
				render.WithWorkers(workers),
				render.WithLogger(logger.Named("render")),
			)
			if err != nil {
				return err
			}
			m, err := r.Build(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, buildOutput{
				BuildID:   m.BuildID,
				OutputDir: outDir,
				Pages:     m.PageCount(),
				Districts: len(m.Districts),
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default output_dir)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent district renders (default render_workers)")
	return cmd
}

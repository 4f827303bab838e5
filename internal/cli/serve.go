package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/headcount/internal/adapters/http/api"
	"github.com/okian/headcount/internal/adapters/http/site"
	"github.com/okian/headcount/internal/adapters/http/swagger"
	service "github.com/okian/headcount/internal/app"
	"github.com/okian/headcount/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 10 * time.Second
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the rendered report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, cfg, err := opts.start(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if addr == "" {
				addr = cfg.Addr
			}
			go startServiceMetricsUpdater(ctx, svc)
			return serve(ctx, newHTTPServer(ctx, addr, svc, cfg.OutputDir))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default addr)")
	return cmd
}

// newHTTPServer mounts the API, the OpenAPI document and, when it has been built,
// the static report.
func newHTTPServer(ctx context.Context, addr string, svc *service.Service, reportDir string) *http.Server {
	router := api.NewServer(svc, svc).Handler()
	swagger.Register(router)
	if err := site.Register(router, reportDir); err != nil {
		logger.Get().Warn(ctx, "report not served; run build first",
			logger.String("output_dir", reportDir), logger.Error(err))
	}

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	log := logger.Get()

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}

// startServiceMetricsUpdater refreshes the district, memory and goroutine gauges
// until ctx ends. GetStats updates them as a side effect.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/headcount/internal/app"
	"github.com/okian/headcount/internal/config"
	"github.com/okian/headcount/pkg/logger"
)

// load reads the configuration, applies flag overrides and initializes logging on
// the command's stderr.
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(cmd.Context(), o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// start loads the configuration and a started service over it.
func (o *globalOptions) start(cmd *cobra.Command) (*service.Service, *config.Config, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(
		service.WithConfig(cfg),
		service.WithLogger(logger.Named("service")),
	)
	if err := svc.Start(cmd.Context()); err != nil {
		return nil, nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, cfg, nil
}

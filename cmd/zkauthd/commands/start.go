package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zkauthd/zkauthd/internal/logger"
	"github.com/zkauthd/zkauthd/internal/server"
	"github.com/zkauthd/zkauthd/internal/telemetry"
	"github.com/zkauthd/zkauthd/pkg/config"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the zkauthd server",
	Long: `Start the zkauthd server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/zkauthd/config.yaml.

Examples:
  # Start with the default config
  zkauthd start

  # Start with a custom config file
  zkauthd start --config /etc/zkauthd/config.yaml

  # Start with environment variable overrides
  ZKAUTHD_LOGGING_LEVEL=DEBUG zkauthd start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "zkauthd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown", logger.KeyError, err.Error())
		}
	}()

	logger.Info("starting zkauthd",
		"version", Version,
		"log_level", cfg.Logging.Level,
		logger.KeyListenAddr, cfg.Server.ListenAddr,
	)

	return server.New(cfg).Run(ctx)
}

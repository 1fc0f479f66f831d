package server

import (
	"context"
	"fmt"

	"github.com/aidanlogic/aidanlogic/internal/config"
	"github.com/aidanlogic/aidanlogic/internal/logging"
	"github.com/aidanlogic/aidanlogic/internal/telemetry"
	"github.com/aidanlogic/aidanlogic/internal/version"
)

// Start initializes logging and tracing from cfg and serves until ctx is done
func Start(ctx context.Context, cfg *config.Config) error {
	logConfig := logging.DefaultConfig(cfg.LogFile, cfg.LogLevel)
	logConfig.LogRequests = cfg.LogRequests

	logger, err := logging.Init(logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	logger.Info("Starting server in %s mode (%s)", cfg.Environment, version.Info())

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		// ctx is already cancelled at this point
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	return NewServer(cfg, logger).Run(ctx)
}

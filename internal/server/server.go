package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aidanlogic/aidanlogic/internal/api/handlers"
	"github.com/aidanlogic/aidanlogic/internal/api/middleware"
	"github.com/aidanlogic/aidanlogic/internal/config"
	"github.com/aidanlogic/aidanlogic/internal/logging"
	"github.com/aidanlogic/aidanlogic/internal/server/routes"
	"github.com/aidanlogic/aidanlogic/internal/service"

	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds how long in-flight submissions may take to finish
const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *logging.Logger
}

// NewServer wires services, handlers and routes from configuration
func NewServer(cfg *config.Config, logger *logging.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Gin's own logger is replaced by middleware.RequestLogger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	// An empty list trusts no proxy, so forwarding headers are ignored
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("Ignoring TRUSTED_PROXIES: %v", err)
		router.SetTrustedProxies(nil)
	}
	routes.SetupGlobalMiddleware(router, cfg, logger)

	contactService := service.NewContactService(
		service.NewTurnstileService(cfg.TurnstileSecretKey, cfg.TurnstileVerifyURL, cfg.TurnstileTimeout),
		service.NewFormspreeService(cfg.FormspreeEndpoint(), cfg.FormspreeTimeout),
		logger,
	)

	routes.Setup(router,
		&routes.Handlers{
			Contact: handlers.NewContactHandler(contactService),
			Health:  handlers.NewHealthHandler(),
		},
		&routes.Middleware{
			Validation: middleware.NewValidationMiddleware(),
		},
	)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", ":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.cfg.Port, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Two sequential provider calls must fit in here
		WriteTimeout: s.cfg.TurnstileTimeout + s.cfg.FormspreeTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening on %s", listener.Addr())
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("API server stopped")
	return nil
}

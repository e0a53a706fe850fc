package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/langassist/internal/auth"
	"github.com/heartmarshall/langassist/internal/config"
	"github.com/heartmarshall/langassist/internal/service/view"
	"github.com/heartmarshall/langassist/internal/transport/middleware"
	"github.com/heartmarshall/langassist/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires the
// generation backend, the assistant and the session store, and serves
// HTTP until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("provider", cfg.Generation.Provider),
	)

	svc, gen, err := NewAssistant(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init assistant: %w", err)
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = auth.GenerateSecret()
		if err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn("session secret not configured, using an ephemeral one; tokens will not survive a restart")
	}
	tokens := auth.NewSessionManager(secret, cfg.Session.Issuer, cfg.Session.TTL)

	sessions := view.NewManager(logger, svc, cfg.Session.MaxSessions, cfg.Session.TTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := newRouter(routerDeps{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		tokens:   tokens,
		limiter:  limiter,
		checks:   map[string]rest.Checker{"generation": generationCheck(gen)},
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		// Websocket handlers end when ctx is canceled.
		BaseContext: func(net.Listener) context.Context { return ctx },
		ErrorLog:    slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped", slog.Int("sessions", sessions.Len()))
	return nil
}

package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sqliteadapter "github.com/ericfisherdev/pwshare/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/pwshare/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/pwshare/internal/adapter/driving/web"
	"github.com/ericfisherdev/pwshare/internal/application"
	"github.com/ericfisherdev/pwshare/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"session_ttl", cfg.SessionTTL,
		"sealing", cfg.SealKey != nil,
		"secure_cookies", cfg.SecureCookies,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	userStore := sqliteadapter.NewUserRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(db, cfg.SealKey)
	shareStore := sqliteadapter.NewShareRepo(db, cfg.SealKey)

	// 6. Create services.
	accountSvc, err := application.NewAccountService(userStore, cfg.BcryptCost, logger)
	if err != nil {
		return err
	}
	credentialSvc := application.NewCredentialService(credentialStore, shareStore)
	sharingSvc := application.NewSharingService(userStore, credentialStore, shareStore, logger)

	// 7. Sessions.
	sessionKey, err := resolveSessionKey(cfg)
	if err != nil {
		return err
	}
	sessions := webhandler.NewSessionManager(sessionKey, cfg.SessionTTL, cfg.SecureCookies)

	// 8. Register API and web routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(db, logger))
	webHandler := webhandler.NewHandler(accountSvc, credentialSvc, sharingSvc, sessions, cfg.SecureCookies, logger)
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// 9. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	// 10. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// resolveSessionKey returns the configured session signing key, or a random
// one when none is set.
func resolveSessionKey(cfg *config.Config) ([]byte, error) {
	if cfg.HasSessionKey() {
		return []byte(cfg.SessionKey), nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	slog.Warn("PWSHARE_SESSION_KEY not set, using a random key; sessions end on restart")
	return key, nil
}

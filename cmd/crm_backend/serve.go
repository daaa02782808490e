package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/crm_backend/internal/core/services"
	"github.com/SscSPs/crm_backend/internal/handlers"
	"github.com/SscSPs/crm_backend/internal/middleware"
	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/SscSPs/crm_backend/internal/platform/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. On PostgreSQL pending migrations are applied first;
SQLite databases get their schema when opened. When FIRST_SUPERUSER is set the
bootstrap admin is created if missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), appCfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default()

	if cfg.DatabaseDriver == config.DriverPostgres {
		logger.Info("Running database migrations...")
		result, err := database.MigratePostgres(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if result.Applied {
			logger.Info("Database migrations applied successfully.", slog.Uint64("version", uint64(result.Version)))
		} else {
			logger.Info("No new migrations to apply.")
		}
	}

	repos, closeStore, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	container := services.NewServiceContainer(cfg, repos)

	if cfg.FirstSuperuser != "" {
		admin, err := container.User.EnsureSuperuser(ctx, cfg.FirstSuperuser, cfg.FirstSuperuserEmail, cfg.FirstSuperuserPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap superuser: %w", err)
		}
		logger.Info("Superuser available", slog.Int64("user_id", admin.UserID), slog.String("username", admin.Username))
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("driver", cfg.DatabaseDriver))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case sig := <-stop:
		logger.Info("Shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

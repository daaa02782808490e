package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/crm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/SscSPs/crm_backend/internal/platform/database"
	"github.com/SscSPs/crm_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/crm_backend/internal/repositories/database/sqlite"
)

// openRepositories connects to the configured store and returns its repositories.
// The returned closer releases the connection pool.
func openRepositories(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		slog.Info("Database connection pool established.", slog.String("driver", cfg.DatabaseDriver))
		return pgsql.NewRepositoryProvider(dbPool), dbPool.Close, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		slog.Info("SQLite database opened.", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), func() { _ = db.Close() }, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}

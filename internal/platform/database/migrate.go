package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/crm_backend/internal/platform/database/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationResult describes the outcome of a migration run.
type MigrationResult struct {
	Version uint
	Dirty   bool
	Applied bool // false when the schema was already current
}

// MigratePostgres applies all pending "up" migrations to the database at databaseURL.
func MigratePostgres(databaseURL string) (MigrationResult, error) {
	m, closeDB, err := newPostgresMigrator(databaseURL)
	if err != nil {
		return MigrationResult{}, err
	}
	defer closeDB()

	result := MigrationResult{Applied: true}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		result.Applied = false
	} else if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return finishMigration(m, result)
}

// RollbackPostgres reverts the given number of migrations.
func RollbackPostgres(databaseURL string, steps int) (MigrationResult, error) {
	if steps <= 0 {
		return MigrationResult{}, fmt.Errorf("steps must be positive, got %d", steps)
	}
	m, closeDB, err := newPostgresMigrator(databaseURL)
	if err != nil {
		return MigrationResult{}, err
	}
	defer closeDB()

	if err := m.Steps(-steps); err != nil {
		return MigrationResult{}, fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return finishMigration(m, MigrationResult{Applied: true})
}

func finishMigration(m *migrate.Migrate, result MigrationResult) (MigrationResult, error) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("failed to read migration version: %w", err)
	}
	result.Version = version
	result.Dirty = dirty

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return MigrationResult{}, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return MigrationResult{}, fmt.Errorf("migration database error: %w", dbErr)
	}
	return result, nil
}

// newPostgresMigrator opens a standard sql.DB through pgx/v5/stdlib for the migrate postgres driver.
func newPostgresMigrator(databaseURL string) (*migrate.Migrate, func(), error) {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	closeDB := func() { _ = migrationDB.Close() }

	if err := migrationDB.Ping(); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, closeDB, nil
}

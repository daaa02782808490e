package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// GetSchemaSQL returns the authoritative SQLite schema.
func GetSchemaSQL() string {
	return sqliteSchema
}

// OpenSQLite opens the SQLite database at path (":memory:" for a private in-memory store)
// and applies the schema. Foreign keys are enforced and every transaction takes the
// write lock up front, so a read-modify-write inside one transaction cannot interleave
// with another writer.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serialises writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, GetSchemaSQL()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	params := "_foreign_keys=on&_txlock=immediate&_busy_timeout=5000"
	if path == ":memory:" {
		return "file::memory:?" + params
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return "file:" + path + "?" + params
}

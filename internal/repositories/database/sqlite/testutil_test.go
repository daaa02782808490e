package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/crm_backend/internal/platform/database"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := database.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedUser inserts a user and returns its ID.
func seedUser(t *testing.T, db *sql.DB, username string, active bool) int64 {
	t.Helper()
	now := time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO users (username, email, hashed_password, role, is_active, created_at, updated_at) VALUES (?, ?, 'x', 'manager', ?, ?, ?)",
		username, username+"@example.com", active, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedClient inserts a client owned by createdBy and returns its ID.
func seedClient(t *testing.T, db *sql.DB, name string, createdBy int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO clients (name, created_by, created_at, updated_at) VALUES (?, ?, ?, ?)",
		name, createdBy, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func countDeals(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM deals").Scan(&n); err != nil {
		t.Fatalf("failed to count deals: %v", err)
	}
	return n
}

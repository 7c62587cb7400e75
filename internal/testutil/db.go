// Package testutil opens migrated SQLite databases for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lumenfide/lumen/internal/db"
)

// NewDB returns a migrated database in t.TempDir(), closed on cleanup.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	connection := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	ctx := context.Background()
	database, err := db.Init(ctx, db.DriverSQLite, connection)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(ctx, database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return database
}

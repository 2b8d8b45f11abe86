// Package testutil holds helpers shared by package tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/database"
)

// OpenTestDB returns a migrated SQLite database living in t.TempDir().  The
// pool is closed when the test finishes.
func OpenTestDB(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "directory.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db, config.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"

	"github.com/iliyamo/booking-directory/internal/config"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// prepare points goose at the embedded migration set for driver and returns
// the directory inside the embedded filesystem.
func prepare(driver string) (string, error) {
	var dialect goose.Dialect
	switch driver {
	case config.DriverMySQL, "":
		dialect, driver = goose.DialectMySQL, config.DriverMySQL
	case config.DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}
	return path.Join("migrations", driver), nil
}

// Migrate runs all pending migrations for driver.
func Migrate(db *sql.DB, driver string) error {
	dir, err := prepare(driver)
	if err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback undoes the most recent migration.
func Rollback(db *sql.DB, driver string) error {
	dir, err := prepare(driver)
	if err != nil {
		return err
	}
	if err := goose.Down(db, dir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB, driver string) (int64, error) {
	if _, err := prepare(driver); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db)
}

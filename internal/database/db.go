// Package database opens the SQL connection pool and applies schema
// migrations.  MySQL is the production backend; SQLite serves local
// development and tests with the same repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/booking-directory/internal/config"
)

// Open connects to the database selected by cfg.DBDriver and verifies the
// connection.
func Open(cfg config.Config) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.DriverMySQL, "":
		return OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	mc := mysql.NewConfig()
	mc.User = user
	mc.Passwd = pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, port)
	mc.DBName = name
	// parseTime -> DATETIME -> time.Time | loc=UTC keeps times consistent
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path with
// foreign keys enforced on every connection.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping verifies the pool with a timeout.
func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

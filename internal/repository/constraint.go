package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MySQL server error numbers for constraint violations.
const (
	mysqlDuplicateEntry  = 1062
	mysqlBadNull         = 1048
	mysqlNoDefault       = 1364
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// classify maps a driver constraint error to one of the package sentinels.
// The driver error stays in the chain so callers can still log it.  Errors
// that are not constraint violations are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if kind := constraintKind(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}

func constraintKind(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicateName
		case mysqlBadNull, mysqlNoDefault:
			return ErrMissingField
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return ErrInvalidReference
		}
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrDuplicateName
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ErrMissingField
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrInvalidReference
		}
		// without extended result codes only the message tells them apart
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return ErrDuplicateName
		case strings.Contains(msg, "NOT NULL constraint failed"):
			return ErrMissingField
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return ErrInvalidReference
		}
	}
	return nil
}

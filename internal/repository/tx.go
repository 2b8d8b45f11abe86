package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside a transaction on db.  The transaction is committed
// when fn returns nil and rolled back otherwise (including when fn
// panics), so it is always finished before WithTx returns.  The error from
// fn is returned as is; a commit failure is classified like any other
// driver error.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", classify(err))
	}
	committed = true
	return nil
}

// nullIfEmpty lets NOT NULL columns reject blank form values instead of
// storing empty strings.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

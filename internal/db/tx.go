// Package db holds the small sqlite helpers shared by the key-value store.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WithTx runs fn in a transaction, committing when it returns nil and
// rolling back otherwise. fn's error is returned unwrapped.
func WithTx(ctx context.Context, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PutKV upserts one row of the kv table, stamping it with at.
func PutKV(ctx context.Context, e Execer, key, value string, at time.Time) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, at.Unix())
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Or returns the value of n, or fallback when the column was NULL.
func Or[T any](n sql.Null[T], fallback T) T {
	if !n.Valid {
		return fallback
	}
	return n.V
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

type contextKey string

const txKey contextKey = "sqlite_tx"

// TxFromContext returns the transaction carried by ctx, or nil.
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey).(*sql.Tx)
	return tx
}

// Transactor runs a function inside a single transaction. Services depend on
// this interface so tests can substitute a pass-through.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithTx begins a transaction, places it in the context for repositories to
// pick up, and commits if fn returns nil, rolling back otherwise. Nested
// calls reuse the transaction already in the context.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.Handle().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

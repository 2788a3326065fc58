package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// maxTxAttempts bounds transparent retries of serialization failures.
const maxTxAttempts = 3

// isRetryableTxError reports whether err is a Postgres serialization failure
// (40001) or deadlock (40P01). Both mean the transaction lost a race and a
// fresh attempt may succeed.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// withTxRetry runs fn up to maxTxAttempts times, retrying only on
// serialization failures. When attempts are exhausted the error surfaces as
// ErrConflict so callers can translate it uniformly.
func withTxRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: transaction aborted after %d attempts: %v", apperrors.ErrConflict, maxTxAttempts, err)
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	"github.com/bizsuite/expense_ledger_app/internal/models"
	"github.com/bizsuite/expense_ledger_app/internal/utils/accounting"
	"github.com/bizsuite/expense_ledger_app/internal/utils/mapping"
)

const accountColumns = `account_id, account_number, name, description, balance, low_balance_threshold, is_active, parent_account_id, sibling_sequence, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// scanAccount scans a single account row into a model. It handles the
// nullable parent_account_id column.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.Description,
		&m.Balance,
		&m.LowBalanceThreshold,
		&m.IsActive,
		&parentID,
		&m.SiblingSequence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

// collectAccounts drains rows into domain accounts.
func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// insertAccountTx inserts an account row inside the given transaction.
func insertAccountTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	// parent_account_id is NULL for root accounts.
	var parentID sql.NullString
	if m.ParentAccountID != "" {
		parentID = sql.NullString{String: m.ParentAccountID, Valid: true}
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.Name,
		m.Description,
		m.Balance,
		m.LowBalanceThreshold,
		m.IsActive,
		parentID,
		m.SiblingSequence,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to insert account %s: %w", m.AccountID, err)
	}
	return nil
}

// SaveRootAccount inserts a new root account. The account number is drawn
// from a database sequence inside the same transaction as the insert, so
// concurrent creations get distinct numbers and no gaps appear on conflict
// retries within an attempt.
func (r *PgxAccountRepository) SaveRootAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	err := withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('account_number_seq');`).Scan(&seq); err != nil {
			return fmt.Errorf("failed to obtain account number sequence value: %w", err)
		}
		account.AccountNumber = accounting.FormatAccountNumber(seq)

		if err := insertAccountTx(ctx, tx, account); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SaveSiblingAccount inserts a new sibling account. The parent row is locked
// for the duration of the transaction, so the per-parent sequence assignment
// cannot race with a concurrent sibling creation or a merge.
func (r *PgxAccountRepository) SaveSiblingAccount(ctx context.Context, account domain.Account, parentAccountID string) (*domain.Account, error) {
	err := withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		parent, err := findAccountByIDForUpdate(ctx, tx, parentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, parentAccountID)
			}
			return err
		}
		if parent.ParentAccountID != "" {
			return fmt.Errorf("%w: account %s is itself a sibling", apperrors.ErrInvalidParent, parentAccountID)
		}
		if !parent.IsActive {
			return fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parentAccountID)
		}

		// MAX+1 is safe here because the parent row lock serializes sibling
		// creations under the same parent.
		var nextSeq int
		seqQuery := `SELECT COALESCE(MAX(sibling_sequence), 0) + 1 FROM accounts WHERE parent_account_id = $1;`
		if err := tx.QueryRow(ctx, seqQuery, parentAccountID).Scan(&nextSeq); err != nil {
			return fmt.Errorf("failed to compute sibling sequence for parent %s: %w", parentAccountID, err)
		}
		account.SiblingSequence = nextSeq
		account.AccountNumber = accounting.FormatSiblingNumber(parent.AccountNumber, nextSeq)

		if err := insertAccountTx(ctx, tx, account); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// findAccountByIDForUpdate retrieves an account by ID and locks its row.
// Must be called within a transaction.
func findAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`

	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID + " not found")
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves a paginated list of active root accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE AND parent_account_id IS NULL
		ORDER BY account_number
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	return collectAccounts(rows)
}

// ListSiblings retrieves all siblings of a parent in sequence order.
func (r *PgxAccountRepository) ListSiblings(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE parent_account_id = $1
		ORDER BY sibling_sequence;
	`
	rows, err := r.Pool.Query(ctx, query, parentAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query siblings of account %s: %w", parentAccountID, err)
	}
	return collectAccounts(rows)
}

// ListLowBalanceAccounts retrieves active root accounts whose balance sits
// below their advisory threshold. Accounts with a zero threshold never report.
func (r *PgxAccountRepository) ListLowBalanceAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE
		  AND parent_account_id IS NULL
		  AND low_balance_threshold > 0
		  AND balance < low_balance_threshold
		ORDER BY account_number;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query low balance accounts: %w", err)
	}
	return collectAccounts(rows)
}

// UpdateAccount updates an existing account's editable details. Balance,
// number, parent and sequence are never written through this path.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, low_balance_threshold = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.LowBalanceThreshold,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing account from one already inactive.
		_, findErr := r.FindAccountByID(ctx, accountID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check account status after deactivation attempt for %s: %w", accountID, findErr)
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

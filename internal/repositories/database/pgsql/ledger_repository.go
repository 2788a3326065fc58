package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	"github.com/bizsuite/expense_ledger_app/internal/models"
	"github.com/bizsuite/expense_ledger_app/internal/utils/mapping"
	"github.com/bizsuite/expense_ledger_app/internal/utils/pagination"
)

const transactionColumns = `transaction_id, account_id, amount, transaction_type, source, payee_type, payee_id, category, occurred_at, description, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for transaction data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// nullIfEmpty maps the models' empty-string convention to SQL NULL for the
// type-specific transaction columns.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func queueInsertTransaction(batch *pgx.Batch, m models.Transaction) {
	batch.Queue(insertTransactionQuery,
		m.TransactionID,
		m.AccountID,
		m.Amount,
		m.TransactionType,
		nullIfEmpty(m.Source),
		nullIfEmpty(m.PayeeType),
		nullIfEmpty(m.PayeeID),
		nullIfEmpty(m.Category),
		m.OccurredAt,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
}

// applyBalanceDeltaTx adjusts an account balance inside a transaction. The
// caller must already hold the row lock.
func applyBalanceDeltaTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s disappeared during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// SaveDeposit appends a deposit and increments the account balance in one
// database transaction. The account row is locked first, so the increment
// applies to a balance no concurrent writer can be mutating.
func (r *PgxLedgerRepository) SaveDeposit(ctx context.Context, txn domain.Transaction) error {
	return withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		account, err := findAccountByIDForUpdate(ctx, tx, txn.AccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
		}

		batch := &pgx.Batch{}
		queueInsertTransaction(batch, mapping.ToModelTransaction(txn))
		if err := sendTransactionBatch(ctx, tx, batch); err != nil {
			return err
		}

		if err := applyBalanceDeltaTx(ctx, tx, txn.AccountID, txn.Amount, txn.CreatedBy, txn.CreatedAt); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	})
}

// SavePayments appends one or more payments and decrements the account
// balance by their sum, all-or-nothing. The overdraft check runs against the
// balance read under the row lock; on shortfall nothing is written and the
// error carries the exact amounts. Sibling accounts are exempt from the
// check: backdated expense backfill may drive them negative.
func (r *PgxLedgerRepository) SavePayments(ctx context.Context, accountID string, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return fmt.Errorf("%w: no payments to save", apperrors.ErrValidation)
	}

	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}

	return withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		account, err := findAccountByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
		}
		if !account.AllowsNegativeBalance() && account.Balance.LessThan(total) {
			return &apperrors.InsufficientFundsError{Available: account.Balance, Required: total}
		}

		batch := &pgx.Batch{}
		for _, txn := range txns {
			queueInsertTransaction(batch, mapping.ToModelTransaction(txn))
		}
		if err := sendTransactionBatch(ctx, tx, batch); err != nil {
			return err
		}

		if err := applyBalanceDeltaTx(ctx, tx, accountID, total.Neg(), txns[0].CreatedBy, txns[0].CreatedAt); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	})
}

// sendTransactionBatch executes queued transaction inserts and surfaces the
// first failure, translating unique violations to ErrDuplicate.
func sendTransactionBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction already recorded", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute transaction insert batch: %w", err)
	}
	return nil
}

// MergeSibling folds a sibling account into its parent: every transaction row
// is reassigned to the parent, the sibling balance moves to the parent and
// the sibling row is deleted, all in one database transaction. Both rows stay
// locked throughout, so the checks below hold at commit time. A repeated
// merge finds no sibling row and fails with ErrNotFound.
func (r *PgxLedgerRepository) MergeSibling(ctx context.Context, siblingAccountID string, allowNonZero bool, userID string, now time.Time) (*domain.MergeResult, error) {
	var result *domain.MergeResult

	err := withTxRetry(ctx, func(ctx context.Context) error {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}
		defer r.Rollback(ctx, tx)

		sibling, err := findAccountByIDForUpdate(ctx, tx, siblingAccountID)
		if err != nil {
			return err
		}
		if sibling.ParentAccountID == "" {
			return fmt.Errorf("%w: account %s has no parent", apperrors.ErrNotSibling, siblingAccountID)
		}
		if !sibling.Balance.IsZero() && !allowNonZero {
			return fmt.Errorf("%w: sibling balance %s is non-zero", apperrors.ErrPrivilegeRequired, sibling.Balance.String())
		}

		parent, err := findAccountByIDForUpdate(ctx, tx, sibling.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewAppError(500, "parent account "+sibling.ParentAccountID+" missing for sibling "+siblingAccountID, err)
			}
			return err
		}

		// Reassignment touches account_id only; transaction rows are otherwise
		// immutable, including their audit fields.
		reassign := `UPDATE transactions SET account_id = $2 WHERE account_id = $1;`
		cmdTag, err := tx.Exec(ctx, reassign, siblingAccountID, parent.AccountID)
		if err != nil {
			return fmt.Errorf("failed to reassign transactions of sibling %s: %w", siblingAccountID, err)
		}
		merged := int(cmdTag.RowsAffected())

		if !sibling.Balance.IsZero() {
			if err := applyBalanceDeltaTx(ctx, tx, parent.AccountID, sibling.Balance, userID, now); err != nil {
				return err
			}
		}

		deleteQuery := `DELETE FROM accounts WHERE account_id = $1;`
		if _, err := tx.Exec(ctx, deleteQuery, siblingAccountID); err != nil {
			return fmt.Errorf("failed to delete merged sibling %s: %w", siblingAccountID, err)
		}

		if err := r.Commit(ctx, tx); err != nil {
			return err
		}

		result = &domain.MergeResult{
			ParentAccountID:    parent.AccountID,
			SiblingAccountID:   siblingAccountID,
			TransactionsMerged: merged,
			BalanceTransferred: sibling.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListTransactionsByAccountID retrieves a paginated list of transactions for
// an account using token-based pagination. Ordering is occurred_at DESC with
// created_at DESC as the stable tie-break; the token encodes both.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	args := []interface{}{accountID}

	if filter.From != nil {
		args = append(args, *filter.From)
		baseQuery += ` AND occurred_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		// Date filters are day-granular; 'to' is inclusive of its whole day.
		args = append(args, filter.To.Add(24*time.Hour))
		baseQuery += ` AND occurred_at < $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		baseQuery += ` AND transaction_type = $` + strconv.Itoa(len(args))
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastOccurredAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		// Tuple comparison against the cursor pair.
		args = append(args, lastOccurredAt, lastCreatedAt)
		baseQuery += ` AND (occurred_at, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + `
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		var m models.Transaction
		var source, payeeType, payeeID, category sql.NullString
		err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.Amount,
			&m.TransactionType,
			&source,
			&payeeType,
			&payeeID,
			&category,
			&m.OccurredAt,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		m.Source = source.String
		m.PayeeType = payeeType.String
		m.PayeeID = payeeID.String
		m.Category = category.String
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	From      *time.Time
	To        *time.Time
	Type      *domain.TransactionType
	Limit     int
	NextToken *string
}

// LedgerReader defines read operations for transaction data
type LedgerReader interface {
	// ListTransactionsByAccountID retrieves transactions for an account,
	// ordered by occurred_at descending with created_at as tie-break, using
	// token-based cursor pagination. Returns the page and the next token.
	ListTransactionsByAccountID(ctx context.Context, accountID string, filter TransactionFilter) ([]domain.Transaction, *string, error)
}

// LedgerWriter defines the atomic write operations of the ledger. Every method
// runs its balance-check-then-write sequence inside a single database
// transaction holding a row lock on the account, so concurrent writers cannot
// observe a stale balance.
type LedgerWriter interface {
	// SaveDeposit appends a deposit and increments the account balance.
	SaveDeposit(ctx context.Context, txn domain.Transaction) error

	// SavePayments appends one or more payments and decrements the account
	// balance by their sum, all-or-nothing. Fails with InsufficientFundsError
	// (no mutation) when a root account's locked balance cannot cover the
	// sum; sibling accounts may overdraw while staging backdated history.
	SavePayments(ctx context.Context, accountID string, txns []domain.Transaction) error

	// MergeSibling reassigns every transaction of the sibling to its parent,
	// transfers the sibling balance to the parent and hard-deletes the sibling
	// row, atomically. When allowNonZero is false a non-zero sibling balance
	// fails the merge with ErrPrivilegeRequired.
	MergeSibling(ctx context.Context, siblingAccountID string, allowNonZero bool, userID string, now time.Time) (*domain.MergeResult, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}

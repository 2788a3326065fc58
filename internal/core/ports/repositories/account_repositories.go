package repositories

import (
	"context"
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListSiblings retrieves all sibling accounts of a parent, ordered by
	// sibling sequence ascending.
	ListSiblings(ctx context.Context, parentAccountID string) ([]domain.Account, error)

	// ListLowBalanceAccounts retrieves active root accounts whose balance has
	// dropped under their advisory threshold.
	ListLowBalanceAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveRootAccount persists a new root account, assigning its sequential
	// account number atomically. The returned account carries the number.
	SaveRootAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// SaveSiblingAccount persists a new sibling of the given parent, assigning
	// its per-parent sequence under a lock on the parent row. Fails with
	// ErrInvalidParent when the parent is itself a sibling.
	SaveSiblingAccount(ctx context.Context, account domain.Account, parentAccountID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's editable details. Balance is
	// never written through this path.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

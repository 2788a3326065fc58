package services

import (
	"context"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListSiblings retrieves the sibling accounts of a root account, ordered
	// by sibling sequence ascending.
	ListSiblings(ctx context.Context, parentAccountID string) ([]domain.Account, error)

	// ListLowBalanceAccounts retrieves active root accounts below their
	// advisory low-balance threshold.
	ListLowBalanceAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates a new root account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// CreateSibling creates a new sibling account under a root account.
	CreateSibling(ctx context.Context, parentAccountID string, req dto.CreateSiblingRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's editable details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListSiblings(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListLowBalanceAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveRootAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveSiblingAccount(ctx context.Context, account domain.Account, parentAccountID string) (*domain.Account, error) {
	args := m.Called(ctx, account, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), nextToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveDeposit(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockLedgerRepository) SavePayments(ctx context.Context, accountID string, txns []domain.Transaction) error {
	args := m.Called(ctx, accountID, txns)
	return args.Error(0)
}

func (m *MockLedgerRepository) MergeSibling(ctx context.Context, siblingAccountID string, allowNonZero bool, userID string, now time.Time) (*domain.MergeResult, error) {
	args := m.Called(ctx, siblingAccountID, allowNonZero, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MergeResult), args.Error(1)
}

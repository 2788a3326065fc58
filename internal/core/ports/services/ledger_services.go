package services

import (
	"context"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
)

// LedgerSvcFacade defines the ledger operations: recording immutable deposits
// and payments against an account and reading them back.
type LedgerSvcFacade interface {
	// RecordDeposit appends a deposit and increments the account balance.
	RecordDeposit(ctx context.Context, accountID string, req dto.DepositRequest, userID string) (*domain.Transaction, error)

	// RecordPayment appends a payment, failing with InsufficientFundsError if
	// the account balance cannot cover it.
	RecordPayment(ctx context.Context, accountID string, req dto.PaymentRequest, userID string) (*domain.Transaction, error)

	// RecordPaymentBatch records all payments atomically, failing the whole
	// batch if their sum exceeds the account balance.
	RecordPaymentBatch(ctx context.Context, accountID string, req dto.PaymentBatchRequest, userID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a filtered, cursor-paginated page of an
	// account's transactions.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

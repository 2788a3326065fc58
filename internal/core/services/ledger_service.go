package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
	"github.com/bizsuite/expense_ledger_app/internal/middleware"
)

// ledgerService implements the LedgerSvcFacade interface.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// findWritableAccount fetches an account and rejects writes to inactive ones.
func (s *ledgerService) findWritableAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *ledgerService) RecordDeposit(ctx context.Context, accountID string, req dto.DepositRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findWritableAccount(ctx, accountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       accountID,
		Amount:          req.Amount,
		TransactionType: domain.Deposit,
		Source:          domain.DepositSource(req.Source),
		OccurredAt:      occurredAt,
		Description:     req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// The repository re-reads the account under a row lock and applies the
	// insert plus balance increment in one database transaction.
	if err := s.ledgerRepo.SaveDeposit(ctx, txn); err != nil {
		logger.Error("Failed to save deposit",
			slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Deposit recorded successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", accountID),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *ledgerService) RecordPayment(ctx context.Context, accountID string, req dto.PaymentRequest, userID string) (*domain.Transaction, error) {
	txns, err := s.RecordPaymentBatch(ctx, accountID, dto.PaymentBatchRequest{Payments: []dto.PaymentRequest{req}}, userID)
	if err != nil {
		return nil, err
	}
	return &txns[0], nil
}

func (s *ledgerService) RecordPaymentBatch(ctx context.Context, accountID string, req dto.PaymentBatchRequest, userID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Payments) == 0 {
		return nil, fmt.Errorf("%w: at least one payment is required", apperrors.ErrValidation)
	}

	if _, err := s.findWritableAccount(ctx, accountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txns := make([]domain.Transaction, 0, len(req.Payments))
	for i, p := range req.Payments {
		occurredAt := now
		if p.OccurredAt != nil {
			occurredAt = p.OccurredAt.UTC()
		}
		txn := domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       accountID,
			Amount:          p.Amount,
			TransactionType: domain.Payment,
			PayeeType:       domain.PayeeType(p.PayeeType),
			PayeeID:         p.PayeeID,
			Category:        p.Category,
			OccurredAt:      occurredAt,
			Description:     p.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: payment %d: %s", apperrors.ErrValidation, i, err.Error())
		}
		txns = append(txns, txn)
	}

	// The balance gate lives in the repository: the account row is locked,
	// the sum of the batch is checked against the fresh balance and either
	// every payment commits or none does.
	if err := s.ledgerRepo.SavePayments(ctx, accountID, txns); err != nil {
		logger.Error("Failed to save payments",
			slog.String("error", err.Error()),
			slog.String("account_id", accountID),
			slog.Int("payment_count", len(txns)))
		return nil, err
	}

	logger.Info("Payments recorded successfully",
		slog.String("account_id", accountID),
		slog.Int("payment_count", len(txns)))
	return txns, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, fmt.Errorf("%w: 'to' date must not precede 'from' date", apperrors.ErrValidation)
	}

	filter := portsrepo.TransactionFilter{
		From:      params.From,
		To:        params.To,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Type != nil {
		t := domain.TransactionType(*params.Type)
		filter.Type = &t
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, filter)
	if err != nil {
		logger.Error("Failed to list transactions",
			slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

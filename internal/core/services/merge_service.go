package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/middleware"
)

// mergeService implements the MergeSvcFacade interface.
type mergeService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewMergeService creates a new merge coordinator service.
func NewMergeService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.MergeSvcFacade {
	return &mergeService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure mergeService implements the MergeSvcFacade interface
var _ portssvc.MergeSvcFacade = (*mergeService)(nil)

func (s *mergeService) MergeIntoParent(ctx context.Context, siblingAccountID string, actorIsPrivileged bool, userID string) (*domain.MergeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Friendly pre-checks outside the lock. The repository repeats them on
	// fresh rows inside the database transaction, so a concurrent writer
	// cannot slip between check and merge.
	sibling, err := s.accountRepo.FindAccountByID(ctx, siblingAccountID)
	if err != nil {
		return nil, err
	}
	if !sibling.IsSibling() {
		return nil, fmt.Errorf("%w: account %s has no parent", apperrors.ErrNotSibling, siblingAccountID)
	}
	if !sibling.Balance.IsZero() && !actorIsPrivileged {
		return nil, fmt.Errorf("%w: sibling balance %s is non-zero", apperrors.ErrPrivilegeRequired, sibling.Balance.String())
	}

	now := time.Now().UTC()
	result, err := s.ledgerRepo.MergeSibling(ctx, siblingAccountID, actorIsPrivileged, userID, now)
	if err != nil {
		logger.Error("Failed to merge sibling account",
			slog.String("error", err.Error()),
			slog.String("sibling_id", siblingAccountID))
		return nil, err
	}

	logger.Info("Sibling account merged successfully",
		slog.String("sibling_id", result.SiblingAccountID),
		slog.String("parent_id", result.ParentAccountID),
		slog.Int("transactions_merged", result.TransactionsMerged),
		slog.String("balance_transferred", result.BalanceTransferred.String()))
	return result, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
	"github.com/bizsuite/expense_ledger_app/internal/middleware"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	accountRepo      portsrepo.AccountRepositoryFacade
	defaultThreshold decimal.Decimal
}

// NewAccountService creates a new account service. defaultThreshold is the
// policy default for the advisory low-balance threshold of new root accounts.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, defaultThreshold decimal.Decimal) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:      repo,
		defaultThreshold: defaultThreshold,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	threshold := s.defaultThreshold
	if req.LowBalanceThreshold != nil {
		if req.LowBalanceThreshold.IsNegative() {
			return nil, fmt.Errorf("%w: low balance threshold must not be negative", apperrors.ErrValidation)
		}
		threshold = *req.LowBalanceThreshold
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:           uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		Balance:             decimal.Zero,
		LowBalanceThreshold: threshold,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The repository assigns the sequential account number atomically.
	saved, err := s.accountRepo.SaveRootAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created successfully",
		slog.String("account_id", saved.AccountID),
		slog.String("account_number", saved.AccountNumber))
	return saved, nil
}

func (s *accountService) CreateSibling(ctx context.Context, parentAccountID string, req dto.CreateSiblingRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: sibling account name is required", apperrors.ErrValidation)
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, parentAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find parent account", slog.String("error", err.Error()), slog.String("parent_id", parentAccountID))
		}
		return nil, err
	}
	// Siblings of siblings are forbidden; backdated history always folds into
	// exactly one root.
	if parent.IsSibling() {
		return nil, fmt.Errorf("%w: account %s is itself a sibling", apperrors.ErrInvalidParent, parentAccountID)
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parentAccountID)
	}

	now := time.Now().UTC()
	sibling := domain.Account{
		AccountID:           uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		Balance:             decimal.Zero,
		LowBalanceThreshold: decimal.Zero, // staging accounts carry no advisory threshold
		IsActive:            true,
		ParentAccountID:     parentAccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// The repository assigns SiblingSequence and the derived account number
	// while holding a lock on the parent row.
	saved, err := s.accountRepo.SaveSiblingAccount(ctx, sibling, parentAccountID)
	if err != nil {
		logger.Error("Failed to save sibling account", slog.String("error", err.Error()), slog.String("parent_id", parentAccountID))
		return nil, err
	}

	logger.Info("Sibling account created successfully",
		slog.String("account_id", saved.AccountID),
		slog.String("account_number", saved.AccountNumber),
		slog.Int("sibling_sequence", saved.SiblingSequence))
	return saved, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID",
				slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListSiblings(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	// Verify the parent exists first so a bogus ID yields NotFound rather
	// than an empty list.
	if _, err := s.GetAccountByID(ctx, parentAccountID); err != nil {
		return nil, err
	}

	siblings, err := s.accountRepo.ListSiblings(ctx, parentAccountID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list siblings",
			slog.String("error", err.Error()), slog.String("parent_id", parentAccountID))
		return nil, fmt.Errorf("failed to list siblings of %s: %w", parentAccountID, err)
	}
	if siblings == nil {
		return []domain.Account{}, nil
	}
	return siblings, nil
}

func (s *accountService) ListLowBalanceAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListLowBalanceAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list low balance accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list low balance accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.LowBalanceThreshold != nil {
		if req.LowBalanceThreshold.IsNegative() {
			return nil, fmt.Errorf("%w: low balance threshold must not be negative", apperrors.ErrValidation)
		}
		account.LowBalanceThreshold = *req.LowBalanceThreshold
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

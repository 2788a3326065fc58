package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizsuite/expense_ledger_app/internal/apperrors"
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/core/services"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LedgerSvcFacade
	userID          string
	account         domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "EXP-001",
		Name:          "Operations",
		Balance:       decimal.NewFromInt(1000),
		IsActive:      true,
	}
}

func (suite *LedgerServiceTestSuite) expectAccountLookup() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).
		Return(&suite.account, nil).Once()
}

func (suite *LedgerServiceTestSuite) TestRecordDeposit_Success() {
	suite.expectAccountLookup()

	req := dto.DepositRequest{
		Amount: decimal.RequireFromString("250.75"),
		Source: "MANUAL",
	}

	suite.mockLedgerRepo.On("SaveDeposit", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.AccountID == suite.account.AccountID &&
			txn.TransactionType == domain.Deposit &&
			txn.Source == domain.SourceManual &&
			txn.Amount.Equal(decimal.RequireFromString("250.75")) &&
			!txn.OccurredAt.IsZero()
	})).Return(nil).Once()

	txn, err := suite.service.RecordDeposit(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.Equal(suite.T(), suite.userID, txn.CreatedBy)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordDeposit_BackdatedOccurredAt() {
	suite.expectAccountLookup()

	past := time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC)
	req := dto.DepositRequest{
		Amount:     decimal.NewFromInt(10),
		Source:     "TRANSFER",
		OccurredAt: &past,
	}

	suite.mockLedgerRepo.On("SaveDeposit", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OccurredAt.Equal(past) && txn.CreatedAt.After(past)
	})).Return(nil).Once()

	_, err := suite.service.RecordDeposit(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.NoError(suite.T(), err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordDeposit_InvalidSource() {
	suite.expectAccountLookup()

	req := dto.DepositRequest{Amount: decimal.NewFromInt(10), Source: "WIRE"}

	_, err := suite.service.RecordDeposit(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveDeposit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRecordDeposit_InactiveAccount() {
	suite.account.IsActive = false
	suite.expectAccountLookup()

	req := dto.DepositRequest{Amount: decimal.NewFromInt(10), Source: "MANUAL"}

	_, err := suite.service.RecordDeposit(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestRecordDeposit_AccountNotFound() {
	missingID := uuid.NewString()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, missingID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := dto.DepositRequest{Amount: decimal.NewFromInt(10), Source: "MANUAL"}

	_, err := suite.service.RecordDeposit(context.Background(), missingID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_Success() {
	suite.expectAccountLookup()

	req := dto.PaymentRequest{
		Amount:    decimal.NewFromInt(400),
		PayeeType: "CONTRACTOR",
		PayeeID:   uuid.NewString(),
		Category:  "consulting",
	}

	suite.mockLedgerRepo.On("SavePayments", mock.Anything, suite.account.AccountID, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1 &&
			txns[0].TransactionType == domain.Payment &&
			txns[0].PayeeType == domain.PayeeContractor &&
			txns[0].Amount.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()

	txn, err := suite.service.RecordPayment(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Payment, txn.TransactionType)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_InsufficientFunds() {
	suite.expectAccountLookup()

	// Balance 100.00, payment 100.01: one cent over must fail.
	req := dto.PaymentRequest{
		Amount:    decimal.RequireFromString("100.01"),
		PayeeType: "PERSON",
	}

	shortErr := &apperrors.InsufficientFundsError{
		Available: decimal.RequireFromString("100.00"),
		Required:  decimal.RequireFromString("100.01"),
	}
	suite.mockLedgerRepo.On("SavePayments", mock.Anything, suite.account.AccountID, mock.Anything).
		Return(shortErr).Once()

	_, err := suite.service.RecordPayment(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	var ife *apperrors.InsufficientFundsError
	assert.ErrorAs(suite.T(), err, &ife)
	assert.True(suite.T(), ife.Shortfall().Equal(decimal.RequireFromString("0.01")))
}

func (suite *LedgerServiceTestSuite) TestRecordPayment_SiblingBackfillOverdraws() {
	// A zero-balance sibling accepts a backdated $50 payment, ending at -50.
	// That deficit is settled later by a privileged merge into the parent.
	sibling := domain.Account{
		AccountID:       uuid.NewString(),
		AccountNumber:   "EXP-001-01",
		Name:            "Operations 2022 history",
		Balance:         decimal.Zero,
		IsActive:        true,
		ParentAccountID: suite.account.AccountID,
		SiblingSequence: 1,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, sibling.AccountID).
		Return(&sibling, nil).Once()

	past := time.Date(2022, 11, 3, 0, 0, 0, 0, time.UTC)
	req := dto.PaymentRequest{
		Amount:     decimal.NewFromInt(50),
		PayeeType:  "CONTRACTOR",
		Category:   "maintenance",
		OccurredAt: &past,
	}

	suite.mockLedgerRepo.On("SavePayments", mock.Anything, sibling.AccountID, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 1 && txns[0].OccurredAt.Equal(past)
	})).Return(nil).Once()

	txn, err := suite.service.RecordPayment(context.Background(), sibling.AccountID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), txn.OccurredAt.Equal(past))
	assert.True(suite.T(), sibling.Balance.Add(txn.SignedAmount()).Equal(decimal.NewFromInt(-50)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentBatch_AllOrNothing() {
	suite.expectAccountLookup()

	// Payments of 300, 400 and 500 against a balance of 1000: the whole batch
	// must be rejected with a shortfall of 200, none recorded individually.
	req := dto.PaymentBatchRequest{Payments: []dto.PaymentRequest{
		{Amount: decimal.NewFromInt(300), PayeeType: "EMPLOYEE"},
		{Amount: decimal.NewFromInt(400), PayeeType: "CONTRACTOR"},
		{Amount: decimal.NewFromInt(500), PayeeType: "BUSINESS"},
	}}

	shortErr := &apperrors.InsufficientFundsError{
		Available: decimal.NewFromInt(1000),
		Required:  decimal.NewFromInt(1200),
	}
	suite.mockLedgerRepo.On("SavePayments", mock.Anything, suite.account.AccountID, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 3
	})).Return(shortErr).Once()

	_, err := suite.service.RecordPaymentBatch(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	var ife *apperrors.InsufficientFundsError
	assert.ErrorAs(suite.T(), err, &ife)
	assert.True(suite.T(), ife.Shortfall().Equal(decimal.NewFromInt(200)))
	// Exactly one atomic repository call for the whole batch.
	suite.mockLedgerRepo.AssertNumberOfCalls(suite.T(), "SavePayments", 1)
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentBatch_Success() {
	suite.expectAccountLookup()

	req := dto.PaymentBatchRequest{Payments: []dto.PaymentRequest{
		{Amount: decimal.NewFromInt(300), PayeeType: "EMPLOYEE"},
		{Amount: decimal.NewFromInt(400), PayeeType: "CONTRACTOR"},
	}}

	suite.mockLedgerRepo.On("SavePayments", mock.Anything, suite.account.AccountID, mock.Anything).
		Return(nil).Once()

	txns, err := suite.service.RecordPaymentBatch(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), txns, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordPaymentBatch_InvalidPayee() {
	suite.expectAccountLookup()

	req := dto.PaymentBatchRequest{Payments: []dto.PaymentRequest{
		{Amount: decimal.NewFromInt(300), PayeeType: "EMPLOYEE"},
		{Amount: decimal.NewFromInt(400), PayeeType: "ROBOT"},
	}}

	_, err := suite.service.RecordPaymentBatch(context.Background(), suite.account.AccountID, req, suite.userID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePayments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_Success() {
	suite.expectAccountLookup()

	now := time.Now().UTC()
	txns := []domain.Transaction{
		{
			TransactionID:   uuid.NewString(),
			AccountID:       suite.account.AccountID,
			Amount:          decimal.NewFromInt(100),
			TransactionType: domain.Deposit,
			Source:          domain.SourceManual,
			OccurredAt:      now,
			AuditFields:     domain.AuditFields{CreatedAt: now},
		},
	}

	suite.mockLedgerRepo.On("ListTransactionsByAccountID", mock.Anything, suite.account.AccountID, mock.Anything).
		Return(txns, "next-token", nil).Once()

	page, err := suite.service.ListTransactions(context.Background(), suite.account.AccountID, dto.ListTransactionsParams{Limit: 20})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), page.Transactions, 1)
	assert.NotNil(suite.T(), page.NextToken)
	assert.Equal(suite.T(), "next-token", *page.NextToken)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_InvalidDateRange() {
	suite.expectAccountLookup()

	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ListTransactions(context.Background(), suite.account.AccountID, dto.ListTransactionsParams{From: &from, To: &to})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

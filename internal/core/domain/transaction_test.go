package domain_test

import (
	"testing"
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid manual deposit",
			tx: domain.Transaction{
				TransactionID:   "txn_123",
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(100.00),
				TransactionType: domain.Deposit,
				Source:          domain.SourceManual,
				OccurredAt:      now,
			},
			wantErr: false,
		},
		{
			name: "valid payment to employee",
			tx: domain.Transaction{
				TransactionID:   "txn_124",
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(42.50),
				TransactionType: domain.Payment,
				PayeeType:       domain.PayeeEmployee,
				PayeeID:         "emp_9",
				Category:        "supplies",
				OccurredAt:      now.AddDate(-1, 0, 0), // backdated is fine at this layer
			},
			wantErr: false,
		},
		{
			name: "zero amount rejected",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.Zero,
				TransactionType: domain.Deposit,
				Source:          domain.SourceManual,
				OccurredAt:      now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "negative amount rejected",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromFloat(-1),
				TransactionType: domain.Payment,
				PayeeType:       domain.PayeePerson,
				OccurredAt:      now,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "deposit with missing source",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromInt(10),
				TransactionType: domain.Deposit,
				OccurredAt:      now,
			},
			wantErr: true,
			errMsg:  "deposit source",
		},
		{
			name: "payment with unknown payee type",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromInt(10),
				TransactionType: domain.Payment,
				PayeeType:       domain.PayeeType("ROBOT"),
				OccurredAt:      now,
			},
			wantErr: true,
			errMsg:  "payee type",
		},
		{
			name: "missing account",
			tx: domain.Transaction{
				Amount:          decimal.NewFromInt(10),
				TransactionType: domain.Deposit,
				Source:          domain.SourceManual,
				OccurredAt:      now,
			},
			wantErr: true,
			errMsg:  "must reference an account",
		},
		{
			name: "missing occurrence date",
			tx: domain.Transaction{
				AccountID:       "acc_123",
				Amount:          decimal.NewFromInt(10),
				TransactionType: domain.Deposit,
				Source:          domain.SourceManual,
			},
			wantErr: true,
			errMsg:  "occurrence date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(12.34)

	dep := domain.Transaction{Amount: amount, TransactionType: domain.Deposit}
	pay := domain.Transaction{Amount: amount, TransactionType: domain.Payment}

	assert.True(t, dep.SignedAmount().Equal(amount))
	assert.True(t, pay.SignedAmount().Equal(amount.Neg()))
}

func TestAccount_IsSibling(t *testing.T) {
	root := domain.Account{AccountID: "a1", AccountNumber: "EXP-001"}
	sibling := domain.Account{AccountID: "a2", AccountNumber: "EXP-001-01", ParentAccountID: "a1", SiblingSequence: 1}

	assert.False(t, root.IsSibling())
	assert.True(t, sibling.IsSibling())
}

func TestAccount_AllowsNegativeBalance(t *testing.T) {
	root := domain.Account{AccountID: "a1", AccountNumber: "EXP-001", Balance: decimal.Zero}
	sibling := domain.Account{AccountID: "a2", AccountNumber: "EXP-001-01", ParentAccountID: "a1", SiblingSequence: 1, Balance: decimal.Zero}

	// Roots never overdraw; siblings may, so that backdated expense history
	// can be entered against funding that left the books long ago.
	assert.False(t, root.AllowsNegativeBalance())
	assert.True(t, sibling.AllowsNegativeBalance())
}

func TestAccount_IsBelowThreshold(t *testing.T) {
	acc := domain.Account{
		Balance:             decimal.NewFromInt(499),
		LowBalanceThreshold: decimal.NewFromInt(500),
	}
	assert.True(t, acc.IsBelowThreshold())

	acc.Balance = decimal.NewFromInt(500)
	assert.False(t, acc.IsBelowThreshold())
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a row is a deposit or a payment.
type TransactionType string

const (
	Deposit TransactionType = "DEPOSIT"
	Payment TransactionType = "PAYMENT"
)

// Transaction represents a ledger transaction row as stored in the database.
// Rows are append-only; a sibling merge rewrites account_id in bulk and
// nothing else.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Source          string          `db:"source"`     // Deposits only, nullable
	PayeeType       string          `db:"payee_type"` // Payments only, nullable
	PayeeID         string          `db:"payee_id"`   // Payments only, nullable
	Category        string          `db:"category"`   // Payments only, nullable
	OccurredAt      time.Time       `db:"occurred_at"`
	Description     string          `db:"description"`
	AuditFields
}

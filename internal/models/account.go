package models

import (
	"github.com/shopspring/decimal"
)

// Account represents an expense account row as stored in the database.
// Note: ParentAccountID uses string for the nullable foreign key; the
// repository maps empty string <-> NULL.
type Account struct {
	AccountID           string          `db:"account_id"`
	AccountNumber       string          `db:"account_number"`
	Name                string          `db:"name"`
	Description         string          `db:"description"`
	Balance             decimal.Decimal `db:"balance"`
	LowBalanceThreshold decimal.Decimal `db:"low_balance_threshold"`
	IsActive            bool            `db:"is_active"`
	ParentAccountID     string          `db:"parent_account_id"` // Nullable
	SiblingSequence     int             `db:"sibling_sequence"`  // 0 for roots
	AuditFields                         // Embed common audit fields
}

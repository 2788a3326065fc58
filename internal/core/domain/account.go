package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents an expense account within the core domain.
// This is the primary representation used by services.
//
// A root account has no parent and lives indefinitely. A sibling account is a
// temporary staging account linked to exactly one root account, used to enter
// backdated history without disturbing the root's current balance. Siblings
// cannot themselves have siblings.
type Account struct {
	AccountID           string          `json:"accountID"`           // Primary key (UUID)
	AccountNumber       string          `json:"accountNumber"`       // Human readable, e.g. "EXP-001" or "EXP-001-01"
	Name                string          `json:"name"`                // User-defined name
	Description         string          `json:"description"`         // Nullable user description
	Balance             decimal.Decimal `json:"balance"`             // Always sum(deposits) - sum(payments)
	LowBalanceThreshold decimal.Decimal `json:"lowBalanceThreshold"` // Advisory alert level, not enforced
	IsActive            bool            `json:"isActive"`
	ParentAccountID     string          `json:"parentAccountID"` // Set only on siblings; references a root account
	SiblingSequence     int             `json:"siblingSequence"` // 1-based per parent; 0 for roots
	AuditFields
}

// IsSibling reports whether the account is a staging sibling of a root account.
func (a Account) IsSibling() bool {
	return a.ParentAccountID != ""
}

// AllowsNegativeBalance reports whether payments may drive the balance below
// zero. Siblings stage backdated expense history whose funding left the books
// long ago, so they may overdraw; a root account never can. The deficit is
// settled when a privileged caller merges the sibling into its parent.
func (a Account) AllowsNegativeBalance() bool {
	return a.IsSibling()
}

// IsBelowThreshold reports whether the balance has dropped under the advisory
// low-balance threshold.
func (a Account) IsBelowThreshold() bool {
	return a.Balance.LessThan(a.LowBalanceThreshold)
}

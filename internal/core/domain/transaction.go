package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a deposit into or a
// payment out of an account.
type TransactionType string

const (
	Deposit TransactionType = "DEPOSIT"
	Payment TransactionType = "PAYMENT"
)

// DepositSource describes where deposited funds came from.
type DepositSource string

const (
	SourceManual   DepositSource = "MANUAL"   // external/cash funding
	SourceTransfer DepositSource = "TRANSFER" // moved from another account in the wider system
)

// PayeeType identifies the kind of recipient of a payment.
type PayeeType string

const (
	PayeeEmployee   PayeeType = "EMPLOYEE"
	PayeeContractor PayeeType = "CONTRACTOR"
	PayeePerson     PayeeType = "PERSON"
	PayeeBusiness   PayeeType = "BUSINESS"
)

// Transaction represents a single immutable deposit or payment against one
// account. Transactions are never edited or individually deleted; a merge
// reassigns AccountID in bulk and leaves every other field untouched.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary key (UUID)
	AccountID       string          `json:"accountID"`     // FK -> Account.accountID (may be a sibling)
	Amount          decimal.Decimal `json:"amount"`        // Positive value
	TransactionType TransactionType `json:"transactionType"`
	Source          DepositSource   `json:"source,omitempty"`    // Deposits only
	PayeeType       PayeeType       `json:"payeeType,omitempty"` // Payments only
	PayeeID         string          `json:"payeeID,omitempty"`   // Payments only; opaque reference
	Category        string          `json:"category,omitempty"`  // Payments only
	OccurredAt      time.Time       `json:"occurredAt"`          // Caller-supplied; may be backdated on siblings
	Description     string          `json:"description"`
	AuditFields                     // CreatedAt is the system recorded-at timestamp
}

// Validate checks structural invariants of a transaction line.
func (t Transaction) Validate() error {
	if t.AccountID == "" {
		return errors.New("transaction must reference an account")
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}
	switch t.TransactionType {
	case Deposit:
		if t.Source != SourceManual && t.Source != SourceTransfer {
			return errors.New("deposit source must be MANUAL or TRANSFER")
		}
	case Payment:
		switch t.PayeeType {
		case PayeeEmployee, PayeeContractor, PayeePerson, PayeeBusiness:
		default:
			return errors.New("payment payee type must be EMPLOYEE, CONTRACTOR, PERSON or BUSINESS")
		}
	default:
		return errors.New("transaction type must be DEPOSIT or PAYMENT")
	}
	if t.OccurredAt.IsZero() {
		return errors.New("transaction must carry an occurrence date")
	}
	return nil
}

// SignedAmount returns the balance delta this transaction applies to its
// account: positive for deposits, negative for payments.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Payment {
		return t.Amount.Neg()
	}
	return t.Amount
}

package dto

import (
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest defines the data needed to record a deposit.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Source      string          `json:"source" binding:"required,oneof=MANUAL TRANSFER"`
	Description string          `json:"description"`
	OccurredAt  *time.Time      `json:"occurredAt"` // Optional; defaults to now.
}

// PaymentRequest defines the data needed to record a single payment.
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PayeeType   string          `json:"payeeType" binding:"required,oneof=EMPLOYEE CONTRACTOR PERSON BUSINESS"`
	PayeeID     string          `json:"payeeID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredAt  *time.Time      `json:"occurredAt"` // Optional; defaults to now.
}

// PaymentBatchRequest wraps multiple payments that must commit together.
type PaymentBatchRequest struct {
	Payments []PaymentRequest `json:"payments" binding:"required,min=1,dive"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Source          string          `json:"source,omitempty"`
	PayeeType       string          `json:"payeeType,omitempty"`
	PayeeID         string          `json:"payeeID,omitempty"`
	Category        string          `json:"category,omitempty"`
	OccurredAt      time.Time       `json:"occurredAt"`
	RecordedAt      time.Time       `json:"recordedAt"`
	Description     string          `json:"description"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Source:          string(txn.Source),
		PayeeType:       string(txn.PayeeType),
		PayeeID:         txn.PayeeID,
		Category:        txn.Category,
		OccurredAt:      txn.OccurredAt,
		RecordedAt:      txn.CreatedAt,
		Description:     txn.Description,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Type      *string    `form:"type" binding:"omitempty,oneof=DEPOSIT PAYMENT"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

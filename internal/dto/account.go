package dto

import (
	"time"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new root account.
type CreateAccountRequest struct {
	Name                string           `json:"name" binding:"required"`
	Description         string           `json:"description"` // Optional
	LowBalanceThreshold *decimal.Decimal `json:"lowBalanceThreshold"` // Optional, defaults from config policy
}

// CreateSiblingRequest defines the data needed to create a sibling account
// under a root account.
type CreateSiblingRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Balance is deliberately absent: it only moves via deposits, payments and merges.
type UpdateAccountRequest struct {
	Name                *string          `json:"name"`
	Description         *string          `json:"description"`
	LowBalanceThreshold *decimal.Decimal `json:"lowBalanceThreshold"`
	IsActive            *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID           string          `json:"accountID"`
	AccountNumber       string          `json:"accountNumber"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Balance             decimal.Decimal `json:"balance"`
	LowBalanceThreshold decimal.Decimal `json:"lowBalanceThreshold"`
	IsActive            bool            `json:"isActive"`
	IsSibling           bool            `json:"isSibling"`
	ParentAccountID     string          `json:"parentAccountID,omitempty"`
	SiblingSequence     int             `json:"siblingSequence,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy       string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		AccountNumber:       acc.AccountNumber,
		Name:                acc.Name,
		Description:         acc.Description,
		Balance:             acc.Balance,
		LowBalanceThreshold: acc.LowBalanceThreshold,
		IsActive:            acc.IsActive,
		IsSibling:           acc.IsSibling(),
		ParentAccountID:     acc.ParentAccountID,
		SiblingSequence:     acc.SiblingSequence,
		CreatedAt:           acc.CreatedAt,
		CreatedBy:           acc.CreatedBy,
		LastUpdatedAt:       acc.LastUpdatedAt,
		LastUpdatedBy:       acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

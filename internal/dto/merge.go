package dto

import (
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MergeResponse defines the data returned after a successful sibling merge.
type MergeResponse struct {
	ParentAccountID    string          `json:"parentAccountID"`
	SiblingAccountID   string          `json:"siblingAccountID"`
	TransactionsMerged int             `json:"transactionsMerged"`
	BalanceTransferred decimal.Decimal `json:"balanceTransferred"`
}

// ToMergeResponse converts a domain.MergeResult to a MergeResponse DTO
func ToMergeResponse(res *domain.MergeResult) MergeResponse {
	return MergeResponse{
		ParentAccountID:    res.ParentAccountID,
		SiblingAccountID:   res.SiblingAccountID,
		TransactionsMerged: res.TransactionsMerged,
		BalanceTransferred: res.BalanceTransferred,
	}
}

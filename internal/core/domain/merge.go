package domain

import "github.com/shopspring/decimal"

// MergeResult summarizes a completed sibling merge. It is not persisted; the
// durable effect is the reassigned transactions, the adjusted parent balance
// and the deleted sibling row.
type MergeResult struct {
	ParentAccountID    string          `json:"parentAccountID"`
	SiblingAccountID   string          `json:"siblingAccountID"`
	TransactionsMerged int             `json:"transactionsMerged"`
	BalanceTransferred decimal.Decimal `json:"balanceTransferred"`
}

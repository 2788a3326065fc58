package mapping

import (
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/bizsuite/expense_ledger_app/internal/models"
)

// ToModelTransaction converts a domain.Transaction to models.Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		Source:          string(d.Source),
		PayeeType:       string(d.PayeeType),
		PayeeID:         d.PayeeID,
		Category:        d.Category,
		OccurredAt:      d.OccurredAt,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction to domain.Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Source:          domain.DepositSource(m.Source),
		PayeeType:       domain.PayeeType(m.PayeeType),
		PayeeID:         m.PayeeID,
		Category:        m.Category,
		OccurredAt:      m.OccurredAt,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of models.Transaction to domain.Transaction
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

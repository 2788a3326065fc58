package mapping

import (
	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
	"github.com/bizsuite/expense_ledger_app/internal/models"
)

// ToModelAccount converts a domain.Account to models.Account for DB storage
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		AccountNumber:       d.AccountNumber,
		Name:                d.Name,
		Description:         d.Description,
		Balance:             d.Balance,
		LowBalanceThreshold: d.LowBalanceThreshold,
		IsActive:            d.IsActive,
		ParentAccountID:     d.ParentAccountID,
		SiblingSequence:     d.SiblingSequence,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a models.Account from the DB to domain.Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		AccountNumber:       m.AccountNumber,
		Name:                m.Name,
		Description:         m.Description,
		Balance:             m.Balance,
		LowBalanceThreshold: m.LowBalanceThreshold,
		IsActive:            m.IsActive,
		ParentAccountID:     m.ParentAccountID,
		SiblingSequence:     m.SiblingSequence,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of models.Account to domain.Account
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

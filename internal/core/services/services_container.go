package services

import (
	portsrepo "github.com/bizsuite/expense_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, cfg.DefaultLowBalanceThreshold)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Merge = NewMergeService(repos.LedgerRepo, repos.AccountRepo)

	return container
}

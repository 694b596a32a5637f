package services

import (
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
	portssvc "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/services"
	"github.com/rukibhamz/erpsolution-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first: the other services emit events through it.
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Account = NewAccountService(repos.AccountRepo, container.Audit)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Audit)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Account, container.Audit)
	container.User = NewUserService(repos.UserRepo, cfg)

	return container
}

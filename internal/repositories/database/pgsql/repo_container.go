package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	referenceRepo := newPgxReferenceRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo, referenceRepo)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, referenceRepo)
	userRepo := newPgxUserRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		TransactionRepo: transactionRepo,
		ReferenceRepo:   referenceRepo,
		UserRepo:        userRepo,
		AuditRepo:       auditRepo,
	}
}

package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its surrogate key.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
	// simply absent from the map; the caller decides whether that is an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// CountPostings returns the number of journal items plus standalone transactions
	// referencing the account, used to guard deactivation.
	CountPostings(ctx context.Context, accountID string) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields (name, category, description, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive. The service layer is responsible
	// for the zero-postings and non-system preconditions.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// RecomputeBalance recalculates balance as opening_balance plus the signed sum of
	// posted journal items and approved transactions. Idempotent; used for audit/repair.
	RecomputeBalance(ctx context.Context, accountID string, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountLocker defines the in-transaction balance operations used by the journal and
// transaction repositories while posting. Balance rows are only ever written through
// these methods, inside the same database transaction as the authorizing state change.
type AccountLocker interface {
	// FindAccountsByIDsForUpdate locks the account rows with SELECT ... FOR UPDATE and
	// returns them. Fails with ErrNotFound if any requested account is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed deltas to the locked account balances.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}

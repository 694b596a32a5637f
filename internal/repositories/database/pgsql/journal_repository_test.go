package pgsql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rukibhamz/erpsolution-sub001/internal/apperrors"
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	portsrepo "github.com/rukibhamz/erpsolution-sub001/internal/core/ports/repositories"
	"github.com/rukibhamz/erpsolution-sub001/internal/repositories/database/pgsql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, ctx context.Context, repos portsrepo.RepositoryProvider) domain.Account {
	t.Helper()
	now := time.Now().UTC()
	actor := uuid.NewString()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "TST-" + uuid.NewString()[:8],
		Name:        "Fixture account",
		AccountType: domain.Asset,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, account))
	return account
}

// seedDraftEntry persists a two-line draft entry directly through the repository,
// bypassing service-level validation so unbalanced line sets can be staged.
func seedDraftEntry(t *testing.T, ctx context.Context, repos portsrepo.RepositoryProvider, debitAccountID string, creditAccountID string, debit decimal.Decimal, credit decimal.Decimal) string {
	t.Helper()
	now := time.Now().UTC()
	actor := uuid.NewString()
	entryID := uuid.NewString()

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   now,
		Description: "Fixture entry",
		TotalDebit:  debit,
		TotalCredit: credit,
		Status:      domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	items := []domain.JournalItem{
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: debitAccountID, Debit: debit},
		{ItemID: uuid.NewString(), EntryID: entryID, AccountID: creditAccountID, Credit: credit},
	}

	_, err := repos.JournalRepo.CreateEntry(ctx, entry, items)
	require.NoError(t, err)
	return entryID
}

func TestPostEntry_ConcurrentApprovalsOnlyOneWins(t *testing.T) {
	pool := newTestPool(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()

	debitAccount := seedAccount(t, ctx, repos)
	creditAccount := seedAccount(t, ctx, repos)
	amount := decimal.NewFromInt(100)
	entryID := seedDraftEntry(t, ctx, repos, debitAccount.AccountID, creditAccount.AccountID, amount, amount)

	approver := uuid.NewString()
	outcomes := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- repos.JournalRepo.PostEntry(ctx, entryID, approver, time.Now().UTC())
		}()
	}
	wg.Wait()
	close(outcomes)

	var successes, losers int
	for err := range outcomes {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrInvalidState):
			losers++
		default:
			require.NoError(t, err)
		}
	}
	require.Equal(t, 1, successes, "exactly one approval must win")
	require.Equal(t, 1, losers, "the losing approval must observe the posted state")

	debitAfter, err := repos.AccountRepo.FindAccountByID(ctx, debitAccount.AccountID)
	require.NoError(t, err)
	require.True(t, amount.Equal(debitAfter.Balance), "debit delta applied exactly once, got %s", debitAfter.Balance)

	creditAfter, err := repos.AccountRepo.FindAccountByID(ctx, creditAccount.AccountID)
	require.NoError(t, err)
	require.True(t, amount.Neg().Equal(creditAfter.Balance), "credit delta applied exactly once, got %s", creditAfter.Balance)
}

func TestPostEntry_UnbalancedStoredItemsRejected(t *testing.T) {
	pool := newTestPool(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()

	debitAccount := seedAccount(t, ctx, repos)
	creditAccount := seedAccount(t, ctx, repos)
	entryID := seedDraftEntry(t, ctx, repos, debitAccount.AccountID, creditAccount.AccountID,
		decimal.NewFromInt(100), decimal.NewFromInt(50))

	err := repos.JournalRepo.PostEntry(ctx, entryID, uuid.NewString(), time.Now().UTC())
	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	entry, err := repos.JournalRepo.FindEntryByID(ctx, entryID)
	require.NoError(t, err)
	require.Equal(t, domain.EntryDraft, entry.Status, "failed post must leave the entry draft")

	debitAfter, err := repos.AccountRepo.FindAccountByID(ctx, debitAccount.AccountID)
	require.NoError(t, err)
	require.True(t, debitAfter.Balance.IsZero(), "failed post must not touch balances")
}

package repositories

import (
	"context"
	"time"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves all line items of an entry.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error)

	// ListEntries retrieves a token-paginated list of entries, newest first.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListItemsByAccountID retrieves the posted line items affecting an account,
	// token-paginated.
	ListItemsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalItem, *string, error)
}

// JournalWriter defines write operations for journal entry data. Every method runs
// its own database transaction; status checks happen under the entry row lock so a
// failed precondition leaves the entry untouched.
type JournalWriter interface {
	// CreateEntry persists the entry and its items in DRAFT, allocating the entry
	// reference inside the same transaction. Returns the allocated reference.
	CreateEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) (string, error)

	// ReplaceEntryItems swaps the full item set of a DRAFT entry and refreshes the
	// cached totals. Fails with ErrInvalidState if the entry is not a draft.
	ReplaceEntryItems(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error

	// PostEntry transitions a DRAFT entry to POSTED: re-validates balance from the
	// stored items, stamps the approver, and applies the per-account deltas, all
	// under the entry and account row locks in one transaction.
	PostEntry(ctx context.Context, entryID string, approverID string, now time.Time) error

	// SetEntryStatus performs a compare-and-swap status transition with no ledger
	// effect (reject, cancel). Fails with ErrInvalidState if the current status
	// differs from expected.
	SetEntryStatus(ctx context.Context, entryID string, expected domain.EntryStatus, next domain.EntryStatus, userID string, now time.Time) error

	// DeleteEntry removes a DRAFT entry and cascades its items.
	DeleteEntry(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryRejected  EntryStatus = "REJECTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted from the status.
func (s EntryStatus) IsTerminal() bool {
	return s == EntryPosted || s == EntryRejected || s == EntryCancelled
}

// CanTransitionTo reports whether the state machine permits moving to next.
// The only legal transitions are DRAFT -> POSTED | REJECTED | CANCELLED.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	if s != EntryDraft {
		return false
	}
	switch next {
	case EntryPosted, EntryRejected, EntryCancelled:
		return true
	}
	return false
}

// JournalEntry represents a single, balanced financial event composed of multiple items.
// TotalDebit and TotalCredit are cached for display; they must equal the sums over the
// entry's items and are re-derived whenever the item set is replaced.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`   // Primary key (UUID)
	Reference   string          `json:"reference"` // Display key, e.g. JE-000123
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      EntryStatus     `json:"status"`
	ApprovedBy  *string         `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	AuditFields
	Items []JournalItem `json:"items,omitempty"` // Often loaded separately
}

// JournalItem is a single line within a journal entry, affecting one account.
// Exactly one of Debit and Credit is non-zero.
type JournalItem struct {
	ItemID      string          `json:"itemID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"` // Nullable line memo
}

// PostingDelta returns the signed amount the item applies to its account's balance
// when the owning entry is posted. Debits are positive, credits negative; the same
// convention is used for standalone transactions so balances stay comparable.
func (i JournalItem) PostingDelta() decimal.Decimal {
	return i.Debit.Sub(i.Credit)
}

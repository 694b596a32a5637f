package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence layer.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryRejected  EntryStatus = "REJECTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// JournalEntry represents a journal_entries row.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	Reference   string          `db:"reference"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	Status      EntryStatus     `db:"status"`
	ApprovedBy  *string         `db:"approved_by"`
	ApprovedAt  *time.Time      `db:"approved_at"`
	AuditFields
}

// JournalItem represents a journal_items row.
type JournalItem struct {
	ItemID      string          `db:"item_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}

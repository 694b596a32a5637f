package services

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
)

// JournalSvcFacade defines the journal entry engine operations.
type JournalSvcFacade interface {
	// CreateEntry validates the line set and persists the entry in DRAFT with a
	// freshly allocated reference.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry together with its items.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// ListItemsByAccount retrieves the posted line items affecting an account,
	// token-paginated. This is the account's statement view.
	ListItemsByAccount(ctx context.Context, accountID string, params dto.ListJournalEntriesParams) (*dto.ListJournalItemsResponse, error)

	// UpdateEntryLines replaces the full item set of a DRAFT entry.
	UpdateEntryLines(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ApproveEntry transitions DRAFT -> POSTED, cascading balance effects atomically.
	ApproveEntry(ctx context.Context, entryID string, approverUserID string) error

	// RejectEntry transitions DRAFT -> REJECTED with no ledger effect.
	RejectEntry(ctx context.Context, entryID string, userID string) error

	// CancelEntry transitions DRAFT -> CANCELLED with no ledger effect.
	CancelEntry(ctx context.Context, entryID string, userID string) error

	// DeleteEntry removes a DRAFT entry and its items.
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}

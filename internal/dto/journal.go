package dto

import (
	"time"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalItemRequest defines a single line of a journal entry.
// Exactly one of debit and credit must be non-zero; the service enforces this
// beyond the binding layer.
type CreateJournalItemRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest defines the payload for creating a journal entry in draft.
type CreateJournalEntryRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Items       []CreateJournalItemRequest `json:"items" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces the full item set of a draft entry.
type UpdateJournalEntryRequest struct {
	Date        *time.Time                 `json:"date,omitempty"`
	Description *string                    `json:"description,omitempty"`
	Items       []CreateJournalItemRequest `json:"items" binding:"required,min=2,dive"`
}

// JournalItemResponse defines the data returned for a journal entry line.
type JournalItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Reference   string                `json:"reference"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Status      string                `json:"status"`
	ApprovedBy  *string               `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time            `json:"approvedAt,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
	Items       []JournalItemResponse `json:"items,omitempty"`
}

// ListJournalEntriesParams holds query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is a token-paginated page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListJournalItemsResponse is a token-paginated page of journal items, used for the
// per-account statement view.
type ListJournalItemsResponse struct {
	Items     []JournalItemResponse `json:"items"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToJournalItemResponse converts a domain.JournalItem to JournalItemResponse.
func ToJournalItemResponse(item domain.JournalItem) JournalItemResponse {
	return JournalItemResponse{
		ItemID:      item.ItemID,
		AccountID:   item.AccountID,
		Debit:       item.Debit,
		Credit:      item.Credit,
		Description: item.Description,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     entry.EntryID,
		Reference:   entry.Reference,
		Date:        entry.EntryDate,
		Description: entry.Description,
		TotalDebit:  entry.TotalDebit,
		TotalCredit: entry.TotalCredit,
		Status:      string(entry.Status),
		ApprovedBy:  entry.ApprovedBy,
		ApprovedAt:  entry.ApprovedAt,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
	if len(entry.Items) > 0 {
		resp.Items = make([]JournalItemResponse, len(entry.Items))
		for i, item := range entry.Items {
			resp.Items[i] = ToJournalItemResponse(item)
		}
	}
	return resp
}

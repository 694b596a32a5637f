package mapping

import (
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/models"
)

// ToModelJournalEntry converts a domain journal entry to its persistence form.
// Items are persisted separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		Reference:   d.Reference,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		Status:      models.EntryStatus(d.Status),
		ApprovedBy:  d.ApprovedBy,
		ApprovedAt:  d.ApprovedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a persisted journal entry to the domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		Reference:   m.Reference,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Status:      domain.EntryStatus(m.Status),
		ApprovedBy:  m.ApprovedBy,
		ApprovedAt:  m.ApprovedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalItem converts a domain journal item to its persistence form.
func ToModelJournalItem(d domain.JournalItem) models.JournalItem {
	return models.JournalItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalItem converts a persisted journal item to the domain form.
func ToDomainJournalItem(m models.JournalItem) domain.JournalItem {
	return domain.JournalItem{
		ItemID:      m.ItemID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

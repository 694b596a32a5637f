package mapping

import (
	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/models"
)

// ToModelTransaction converts a domain transaction to its persistence form.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		Reference:       d.Reference,
		AccountID:       d.AccountID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Category:        d.Category,
		SubCategory:     d.SubCategory,
		PaymentMethod:   d.PaymentMethod,
		Description:     d.Description,
		Status:          models.TransactionStatus(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a persisted transaction to the domain form.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		Reference:       m.Reference,
		AccountID:       m.AccountID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Category:        m.Category,
		SubCategory:     m.SubCategory,
		PaymentMethod:   m.PaymentMethod,
		Description:     m.Description,
		Status:          domain.TransactionStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType at the persistence layer.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	ExpenseTxn TransactionType = "EXPENSE"
	Transfer   TransactionType = "TRANSFER"
	Adjustment TransactionType = "ADJUSTMENT"
)

// TransactionStatus mirrors domain.TransactionStatus at the persistence layer.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnApproved  TransactionStatus = "APPROVED"
	TxnRejected  TransactionStatus = "REJECTED"
	TxnCancelled TransactionStatus = "CANCELLED"
)

// Transaction represents a transactions row.
type Transaction struct {
	TransactionID   string            `db:"transaction_id"`
	Reference       string            `db:"reference"`
	AccountID       string            `db:"account_id"`
	TransactionType TransactionType   `db:"transaction_type"`
	Amount          decimal.Decimal   `db:"amount"`
	TransactionDate time.Time         `db:"transaction_date"`
	Category        string            `db:"category"`
	SubCategory     string            `db:"sub_category"`
	PaymentMethod   string            `db:"payment_method"`
	Description     string            `db:"description"`
	Status          TransactionStatus `db:"status"`
	ApprovedBy      *string           `db:"approved_by"`
	ApprovedAt      *time.Time        `db:"approved_at"`
	AuditFields
}

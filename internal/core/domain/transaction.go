package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a standalone financial transaction.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	ExpenseTxn TransactionType = "EXPENSE"
	Transfer   TransactionType = "TRANSFER"
	Adjustment TransactionType = "ADJUSTMENT"
)

// TransactionStatus indicates the state of a standalone transaction.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnApproved  TransactionStatus = "APPROVED"
	TxnRejected  TransactionStatus = "REJECTED"
	TxnCancelled TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted from the status.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxnApproved || s == TxnRejected || s == TxnCancelled
}

// CanTransitionTo reports whether the state machine permits moving to next.
// Approval is a one-way gate: once APPROVED nothing may change, and cancellation
// of an approved transaction requires a new adjusting transaction instead.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case TxnApproved, TxnRejected, TxnCancelled:
		return true
	}
	return false
}

// Transaction is a standalone financial transaction against a single account.
// Amount is signed; approving the transaction applies it to the account balance
// exactly once.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary key (UUID)
	Reference       string            `json:"reference"`     // Display key, e.g. TXN-000123
	AccountID       string            `json:"accountID"`
	TransactionType TransactionType   `json:"transactionType"`
	Amount          decimal.Decimal   `json:"amount"` // Signed
	TransactionDate time.Time         `json:"transactionDate"`
	Category        string            `json:"category"`
	SubCategory     string            `json:"subCategory"`
	PaymentMethod   string            `json:"paymentMethod"`
	Description     string            `json:"description"`
	Status          TransactionStatus `json:"status"`
	ApprovedBy      *string           `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	AuditFields
}

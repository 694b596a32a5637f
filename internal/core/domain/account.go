package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a financial account within the ledger.
// Balance is a cache over posting history: it always equals OpeningBalance plus the
// signed sum of all posted journal items and approved transactions against the account,
// and is only ever written by the account repository inside the authorizing transaction.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary key (UUID)
	Code           string          `json:"code"`      // Immutable business key, unique
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Category       string          `json:"category"` // Free-form grouping, nullable
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	IsSystem       bool            `json:"isSystem"` // System accounts cannot be deactivated
	AuditFields
}

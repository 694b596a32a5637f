package models_test

import (
	"testing"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/models"
	"github.com/stretchr/testify/assert"
)

// The account-type and transaction-type enums both persist an "EXPENSE" literal,
// so their identifiers must stay distinct within the package.
func TestExpenseConstantsAreDistinctIdentifiers(t *testing.T) {
	assert.Equal(t, "EXPENSE", string(models.Expense))    // models.AccountType
	assert.Equal(t, "EXPENSE", string(models.ExpenseTxn)) // models.TransactionType
}

// The persistence enums mirror the domain enums literal for literal; the schema
// CHECK constraints are written against these strings.
func TestModelEnumsMirrorDomain(t *testing.T) {
	assert.Equal(t, string(domain.Income), string(models.Income))
	assert.Equal(t, string(domain.ExpenseTxn), string(models.ExpenseTxn))
	assert.Equal(t, string(domain.Transfer), string(models.Transfer))
	assert.Equal(t, string(domain.Adjustment), string(models.Adjustment))

	assert.Equal(t, string(domain.TxnPending), string(models.TxnPending))
	assert.Equal(t, string(domain.TxnApproved), string(models.TxnApproved))
	assert.Equal(t, string(domain.TxnRejected), string(models.TxnRejected))
	assert.Equal(t, string(domain.TxnCancelled), string(models.TxnCancelled))

	assert.Equal(t, string(domain.Expense), string(models.Expense))
	assert.Equal(t, string(domain.Asset), string(models.Asset))
}

package accounting_test

import (
	"testing"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debitLine(accountID, amount string) domain.JournalItem {
	return domain.JournalItem{AccountID: accountID, Debit: dec(amount), Credit: decimal.Zero}
}

func creditLine(accountID, amount string) domain.JournalItem {
	return domain.JournalItem{AccountID: accountID, Debit: decimal.Zero, Credit: dec(amount)}
}

func TestValidateEntryItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []domain.JournalItem
		wantErr error
	}{
		{
			name: "balanced two line entry",
			items: []domain.JournalItem{
				debitLine("a", "100"),
				creditLine("b", "100"),
			},
		},
		{
			name: "balanced multi line entry",
			items: []domain.JournalItem{
				debitLine("a", "60"),
				debitLine("b", "40"),
				creditLine("c", "100"),
			},
		},
		{
			name: "difference exactly at tolerance is accepted",
			items: []domain.JournalItem{
				debitLine("a", "100.01"),
				creditLine("b", "100"),
			},
		},
		{
			name: "difference just beyond tolerance is rejected",
			items: []domain.JournalItem{
				debitLine("a", "100.02"),
				creditLine("b", "100"),
			},
			wantErr: accounting.ErrEntryUnbalanced,
		},
		{
			name:    "no lines",
			items:   nil,
			wantErr: accounting.ErrMinLines,
		},
		{
			name: "single line",
			items: []domain.JournalItem{
				debitLine("a", "100"),
			},
			wantErr: accounting.ErrMinLines,
		},
		{
			name: "line with both sides set",
			items: []domain.JournalItem{
				{AccountID: "a", Debit: dec("50"), Credit: dec("50")},
				creditLine("b", "0.00"),
			},
			wantErr: accounting.ErrMixedSignLine,
		},
		{
			name: "line with neither side set",
			items: []domain.JournalItem{
				debitLine("a", "100"),
				{AccountID: "b", Debit: decimal.Zero, Credit: decimal.Zero},
			},
			wantErr: accounting.ErrEmptyLine,
		},
		{
			name: "negative debit",
			items: []domain.JournalItem{
				{AccountID: "a", Debit: dec("-100"), Credit: decimal.Zero},
				creditLine("b", "100"),
			},
			wantErr: accounting.ErrNegativeAmount,
		},
		{
			name: "negative credit",
			items: []domain.JournalItem{
				debitLine("a", "100"),
				{AccountID: "b", Debit: decimal.Zero, Credit: dec("-100")},
			},
			wantErr: accounting.ErrNegativeAmount,
		},
		{
			name: "unbalanced by a whole unit",
			items: []domain.JournalItem{
				debitLine("a", "100"),
				creditLine("b", "99"),
			},
			wantErr: accounting.ErrEntryUnbalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryItems(tt.items)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryTotals(t *testing.T) {
	items := []domain.JournalItem{
		debitLine("a", "60.25"),
		debitLine("b", "39.75"),
		creditLine("c", "100.00"),
	}

	totalDebit, totalCredit := accounting.EntryTotals(items)
	assert.True(t, dec("100").Equal(totalDebit), "total debit: %s", totalDebit)
	assert.True(t, dec("100").Equal(totalCredit), "total credit: %s", totalCredit)
}

func TestBalanceChanges(t *testing.T) {
	items := []domain.JournalItem{
		debitLine("a", "100"),
		creditLine("b", "70"),
		creditLine("a", "30"), // same account on both sides nets out
	}

	changes := accounting.BalanceChanges(items)
	require.Len(t, changes, 2)
	assert.True(t, dec("70").Equal(changes["a"]), "account a delta: %s", changes["a"])
	assert.True(t, dec("-70").Equal(changes["b"]), "account b delta: %s", changes["b"])
}

func TestBalanceChanges_DebitPositiveCreditNegative(t *testing.T) {
	items := []domain.JournalItem{
		debitLine("cash", "250.50"),
		creditLine("revenue", "250.50"),
	}

	changes := accounting.BalanceChanges(items)
	assert.True(t, dec("250.50").Equal(changes["cash"]))
	assert.True(t, dec("-250.50").Equal(changes["revenue"]))
}

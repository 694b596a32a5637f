package accounting

import (
	"errors"
	"fmt"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrMinLines indicates an entry with fewer than two line items.
	ErrMinLines = errors.New("entry must have at least two line items")
	// ErrEntryUnbalanced indicates that total debits and total credits differ by more than the tolerance.
	ErrEntryUnbalanced = errors.New("entry debits and credits do not balance")
	// ErrMixedSignLine indicates a line carrying both a debit and a credit amount.
	ErrMixedSignLine = errors.New("line has both debit and credit amounts")
	// ErrEmptyLine indicates a line carrying neither a debit nor a credit amount.
	ErrEmptyLine = errors.New("line has neither debit nor credit amount")
	// ErrNegativeAmount indicates a negative debit or credit amount on a line.
	ErrNegativeAmount = errors.New("line amounts must not be negative")
)

// BalanceTolerance is the maximum permitted |total debit - total credit|.
// Amounts are exact decimals, so in practice balanced entries differ by zero; the
// tolerance is kept so entries captured from currency arithmetic elsewhere keep the
// published acceptance contract.
var BalanceTolerance = decimal.RequireFromString("0.01")

// EntryTotals sums the debit and credit sides of the given items.
func EntryTotals(items []domain.JournalItem) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, item := range items {
		totalDebit = totalDebit.Add(item.Debit)
		totalCredit = totalCredit.Add(item.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryItems checks the double-entry invariants for a set of journal items:
// at least two lines, every line with exactly one non-negative, non-zero side, and
// total debits equal to total credits within BalanceTolerance.
// It is a pure function shared by entry creation and entry approval, so a draft whose
// items were edited between the two checks can never reach POSTED unbalanced.
func ValidateEntryItems(items []domain.JournalItem) error {
	if len(items) < 2 {
		return ErrMinLines
	}

	for i, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d", ErrNegativeAmount, i+1)
		}
		debitSet := !item.Debit.IsZero()
		creditSet := !item.Credit.IsZero()
		switch {
		case debitSet && creditSet:
			return fmt.Errorf("%w: line %d", ErrMixedSignLine, i+1)
		case !debitSet && !creditSet:
			return fmt.Errorf("%w: line %d", ErrEmptyLine, i+1)
		}
	}

	totalDebit, totalCredit := EntryTotals(items)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}

	return nil
}

// BalanceChanges aggregates the per-account signed deltas the items apply on posting.
func BalanceChanges(items []domain.JournalItem) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, item := range items {
		delta := item.PostingDelta()
		if current, ok := changes[item.AccountID]; ok {
			changes[item.AccountID] = current.Add(delta)
		} else {
			changes[item.AccountID] = delta
		}
	}
	return changes
}

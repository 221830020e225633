// Package model defines the budget and expense records and their derived metrics.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a named spending allocation with a limit, the amount spent
// against it, and the expenses charged to it. Budgets are values: change
// one by building a new Budget, never by editing a stored one in place.
type Budget struct {
	ID           uuid.UUID
	Name         string
	TotalAmount  decimal.Decimal // allocated limit; zero means unset
	SpentAmount  decimal.Decimal // may exceed TotalAmount
	CreatedAt    time.Time
	Emoji        string
	AccentColors []string // presentation only, passed through untouched
	Expenses     []Expense
}

// NewBudget returns a budget with a fresh ID and the current time as its
// creation date.
func NewBudget(name string, total, spent decimal.Decimal) Budget {
	return Budget{
		ID:          uuid.New(),
		Name:        name,
		TotalAmount: total,
		SpentAmount: spent,
		CreatedAt:   time.Now(),
	}
}

// RemainingAmount is always derived from the total and spent amounts and
// goes negative once the budget is exceeded.
func (b Budget) RemainingAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.SpentAmount)
}

// ProgressPercentage returns the fraction of the limit consumed, in [0, 1].
func (b Budget) ProgressPercentage() float64 {
	return ProgressPercentage(b.SpentAmount, b.TotalAmount)
}

// IsOverBudget reports whether spending has passed the limit.
func (b Budget) IsOverBudget() bool {
	return IsOverBudget(b.SpentAmount, b.TotalAmount)
}

// ExpensesTotal sums Total() across the budget's expenses.
func (b Budget) ExpensesTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range b.Expenses {
		sum = sum.Add(e.Total())
	}
	return sum
}

// WithExpense returns a copy of b with e appended and its total added to
// SpentAmount. b itself is left unchanged.
func (b Budget) WithExpense(e Expense) Budget {
	out := b.Clone()
	out.Expenses = append(out.Expenses, e.Clone())
	out.SpentAmount = out.SpentAmount.Add(e.Total())
	return out
}

// Clone returns a deep copy so the result never shares slices with b.
func (b Budget) Clone() Budget {
	out := b
	if b.AccentColors != nil {
		out.AccentColors = append([]string(nil), b.AccentColors...)
	}
	if b.Expenses != nil {
		out.Expenses = make([]Expense, len(b.Expenses))
		for i, e := range b.Expenses {
			out.Expenses[i] = e.Clone()
		}
	}
	return out
}

// CloneBudgets deep-copies a slice of budgets. A nil input stays nil.
func CloneBudgets(in []Budget) []Budget {
	if in == nil {
		return nil
	}
	out := make([]Budget, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}

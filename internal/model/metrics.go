package model

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ProgressPercentage returns spent/total clamped to [0, 1]. A total of
// zero or less yields 0 instead of dividing.
func ProgressPercentage(spent, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	ratio := spent.Div(total)
	switch {
	case ratio.GreaterThanOrEqual(one):
		return 1
	case ratio.IsNegative():
		return 0
	}
	return ratio.InexactFloat64()
}

// IsOverBudget reports spent > total. It does not look at progress, so a
// budget can be at 100% and over budget at the same time.
func IsOverBudget(spent, total decimal.Decimal) bool {
	return spent.GreaterThan(total)
}

// Summary aggregates totals across a set of budgets.
type Summary struct {
	Budgets        int
	Expenses       int
	OverBudget     int
	TotalAllocated decimal.Decimal
	TotalSpent     decimal.Decimal
}

// Remaining is TotalAllocated minus TotalSpent.
func (s Summary) Remaining() decimal.Decimal {
	return s.TotalAllocated.Sub(s.TotalSpent)
}

// Progress uses the same clamp rules as a single budget.
func (s Summary) Progress() float64 {
	return ProgressPercentage(s.TotalSpent, s.TotalAllocated)
}

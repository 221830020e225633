package pipeline

import (
	"github.com/theirongolddev/iodda/internal/model"

	"github.com/shopspring/decimal"
)

// Summarize totals a set of budgets for the header cards and the summary
// command.
func Summarize(budgets []model.Budget) model.Summary {
	s := model.Summary{
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
	}
	for _, b := range budgets {
		s.Budgets++
		s.Expenses += len(b.Expenses)
		s.TotalAllocated = s.TotalAllocated.Add(b.TotalAmount)
		s.TotalSpent = s.TotalSpent.Add(b.SpentAmount)
		if b.IsOverBudget() {
			s.OverBudget++
		}
	}
	return s
}

// OverBudget returns the budgets whose spend exceeds their limit, in input
// order.
func OverBudget(budgets []model.Budget) []model.Budget {
	var out []model.Budget
	for _, b := range budgets {
		if b.IsOverBudget() {
			out = append(out, b)
		}
	}
	return out
}

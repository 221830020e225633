package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iodda/internal/cli"
	"github.com/theirongolddev/iodda/internal/pipeline"
	"github.com/theirongolddev/iodda/internal/tui/components"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSummary(cw int) string {
	t := theme.Active
	sym := a.opts.CurrencySymbol
	s := a.view.Summary

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Budgets", Value: cli.FormatNumber(int64(s.Budgets)), Delta: fmt.Sprintf("%d expenses", s.Expenses)},
		{Label: "Allocated", Value: cli.FormatMoney(s.TotalAllocated, sym)},
		{Label: "Spent", Value: cli.FormatMoney(s.TotalSpent, sym), Delta: cli.FormatPercent(s.Progress())},
		{Label: "Remaining", Value: cli.FormatMoney(s.Remaining(), sym), Alert: s.Remaining().IsNegative()},
		{Label: "Over budget", Value: cli.FormatNumber(int64(s.OverBudget)), Alert: s.OverBudget > 0},
	}, cw)

	if s.Budgets == 0 {
		return metrics
	}

	// Spend per budget, in entry order.
	bars := make([]components.Bar, 0, len(a.view.Budgets))
	for _, b := range a.view.Budgets {
		bars = append(bars, components.Bar{
			Label: cli.Truncate(b.Name, 20),
			Value: b.SpentAmount.InexactFloat64(),
			Text:  cli.FormatMoney(b.SpentAmount, sym) + " / " + cli.FormatMoney(b.TotalAmount, sym),
			Color: t.ProgressColor(b.ProgressPercentage(), b.IsOverBudget()),
		})
	}
	chart := components.ContentCard("Spent per budget", components.HorizontalBars(bars, components.CardInnerWidth(cw)), cw)

	over := pipeline.OverBudget(a.view.Budgets)
	if len(over) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, metrics, chart)
	}
	red := lipgloss.NewStyle().Foreground(t.Red)
	lines := make([]string, len(over))
	for i, b := range over {
		lines[i] = fmt.Sprintf("%s %s  %s", b.Emoji, b.Name,
			red.Render(cli.FormatMoney(b.RemainingAmount().Neg(), sym)+" over"))
	}
	overCard := components.ContentCard("Over budget", strings.Join(lines, "\n"), cw)

	return lipgloss.JoinVertical(lipgloss.Left, metrics, chart, overCard)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iodda/internal/cli"
	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/tui/components"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDetail(cw, h int) string {
	t := theme.Active
	sym := a.opts.CurrencySymbol

	bd, ok := a.repo.Budget(a.detailID)
	if !ok {
		return components.ContentCard("Budget", "This budget no longer exists.", cw)
	}

	pct := bd.ProgressPercentage()
	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Total", Value: cli.FormatMoney(bd.TotalAmount, sym)},
		{Label: "Spent", Value: cli.FormatMoney(bd.SpentAmount, sym)},
		{Label: "Remaining", Value: cli.FormatMoney(bd.RemainingAmount(), sym), Alert: bd.IsOverBudget()},
		{Label: "Created", Value: cli.FormatDate(bd.CreatedAt), Delta: cli.FormatAge(bd.CreatedAt)},
	}, cw)

	bar := components.ContentCard("", components.ProgressBar(pct, components.CardInnerWidth(cw)-10, bd.IsOverBudget()), cw)

	title := fmt.Sprintf("%s %s · %d expenses", bd.Emoji, bd.Name, len(bd.Expenses))
	if a.expTerm != "" {
		title = fmt.Sprintf("%s %s · %d of %d match %q", bd.Emoji, bd.Name, len(a.expenses), len(bd.Expenses), a.expTerm)
	}

	used := lipgloss.Height(metrics) + lipgloss.Height(bar)
	rows := max(h-used-3, 1)

	var body string
	if len(a.expenses) == 0 {
		msg := "No expenses yet. Press a to add one."
		if a.expTerm != "" {
			msg = fmt.Sprintf("No expenses match %q.", a.expTerm)
		}
		body = lipgloss.NewStyle().Foreground(t.TextMuted).Render(msg)
	} else {
		var b strings.Builder
		start, end := window(a.expCursor, len(a.expenses), rows)
		for i := start; i < end; i++ {
			b.WriteString(a.expenseRow(a.expenses[i], i == a.expCursor, components.CardInnerWidth(cw)))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
		body = b.String()
	}

	return lipgloss.JoinVertical(lipgloss.Left, metrics, bar, components.ContentCard(title, body, cw))
}

func (a App) expenseRow(e model.Expense, selected bool, width int) string {
	t := theme.Active
	sym := a.opts.CurrencySymbol

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	marker := "  "
	if selected {
		nameStyle = nameStyle.Foreground(t.AccentBright).Bold(true)
		marker = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
	}
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	emoji := e.Emoji
	if emoji == "" {
		emoji = "·"
	}

	amount := cli.FormatMoney(e.Total(), sym)
	if q := cli.FormatQuantity(e.Quantity); q != "" {
		amount = cli.FormatMoney(e.Amount, sym) + " " + q + " = " + amount
	}

	meta := e.Location
	if e.HasNote() {
		if meta != "" {
			meta += " · "
		}
		meta += e.NoteText()
	}

	left := marker + padRight(emoji, 2) + " " + nameStyle.Render(cli.Truncate(e.Name, 28))
	if meta != "" {
		left += "  " + muted.Render(cli.Truncate(meta, max(width-lipgloss.Width(left)-lipgloss.Width(amount)-14, 8)))
	}
	right := dim.Render(cli.FormatDate(e.CreatedAt)) + "  " + amount
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

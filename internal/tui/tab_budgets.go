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

const (
	budgetNameW = 24
	moneyW      = 11
)

func (a App) renderBudgets(cw, h int) string {
	t := theme.Active
	list := a.view.Filtered

	title := fmt.Sprintf("Budgets · %d", len(list))
	if a.view.Term != "" {
		title = fmt.Sprintf("Budgets · %d of %d match %q", len(list), len(a.view.Budgets), a.view.Term)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if len(list) == 0 {
		msg := "No budgets yet. Press a to add one."
		if a.view.Term != "" {
			msg = fmt.Sprintf("Nothing matches %q. Press esc to clear the search.", a.view.Term)
		}
		return components.ContentCard(title, mutedStyle.Render(msg), cw)
	}

	inner := components.CardInnerWidth(cw)
	barW := max(inner-budgetNameW-3*moneyW-16, 8)

	headerStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("     %-*s %*s %*s %*s  %s",
		budgetNameW, "Name", moneyW, "Spent", moneyW, "Total", moneyW, "Remaining", "Progress")))
	b.WriteString("\n")

	rows := max(h-4, 1) // card border, title and header
	start, end := window(a.cursor, len(list), rows)
	for i := start; i < end; i++ {
		b.WriteString(a.budgetRow(list[i], i == a.cursor, barW))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return components.ContentCard(title, b.String(), cw)
}

func (a App) budgetRow(bd model.Budget, selected bool, barW int) string {
	t := theme.Active
	sym := a.opts.CurrencySymbol

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	marker := "  "
	if selected {
		nameStyle = nameStyle.Foreground(t.AccentBright).Bold(true)
		marker = lipgloss.NewStyle().Foreground(t.Accent).Render("▸ ")
	}
	remStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	if bd.IsOverBudget() {
		remStyle = remStyle.Foreground(t.Red)
	}

	emoji := bd.Emoji
	if emoji == "" {
		emoji = "·"
	}
	pct := bd.ProgressPercentage()

	return marker +
		padRight(emoji, 2) + " " +
		nameStyle.Render(padRight(cli.Truncate(bd.Name, budgetNameW), budgetNameW)) + " " +
		padLeft(cli.FormatMoney(bd.SpentAmount, sym), moneyW) + " " +
		padLeft(cli.FormatMoney(bd.TotalAmount, sym), moneyW) + " " +
		remStyle.Render(padLeft(cli.FormatMoney(bd.RemainingAmount(), sym), moneyW)) + "  " +
		components.ProgressBar(pct, barW, bd.IsOverBudget())
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}

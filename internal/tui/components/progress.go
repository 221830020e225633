package components

import (
	"fmt"

	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a budget bar of the given width followed by its
// percentage. pct is clamped to [0, 1]; over switches the bar to red and
// tags it with "over".
func ProgressBar(pct float64, width int, over bool) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	color := t.ProgressColor(pct, over)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	label := fmt.Sprintf("%3.0f%%", pct*100)
	if over {
		label += " over"
	}
	return bar.ViewAs(pct) + " " + pctStyle.Render(label)
}

// StatusDot renders a colored marker for a budget row.
func StatusDot(pct float64, over bool) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.ProgressColor(min(max(pct, 0), 1), over)).Render("●")
}

package components

import (
	"strings"

	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of a HorizontalBars chart.
type Bar struct {
	Label string
	Value float64
	Text  string // rendered right of the bar, e.g. a formatted amount
	Color lipgloss.Color
}

// HorizontalBars renders one labeled bar per row, scaled so the largest
// value spans the available width. Negative values draw an empty bar.
func HorizontalBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(b.Text))
		peak = max(peak, b.Value)
	}
	if peak <= 0 {
		peak = 1
	}

	barW := max(width-labelW-textW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := 0
		if b.Value > 0 {
			n = min(int(b.Value/peak*float64(barW)+0.5), barW)
		}
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
		rest := emptyStyle.Render(strings.Repeat("·", barW-n))

		label := b.Label + strings.Repeat(" ", labelW-lipgloss.Width(b.Label))
		text := strings.Repeat(" ", textW-lipgloss.Width(b.Text)) + b.Text
		lines[i] = labelStyle.Render(label) + " " + fill + rest + " " + textStyle.Render(text)
	}
	return strings.Join(lines, "\n")
}

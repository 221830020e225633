package tui

import (
	"strings"

	"github.com/theirongolddev/iodda/internal/tui/components"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettings(cw int) string {
	t := theme.Active

	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for i, name := range theme.Names() {
		line := "( ) " + name
		if name == t.Name {
			line = "(o) " + name
		}
		if i == a.settingsCursor {
			b.WriteString(accent.Render("▸ " + line))
		} else {
			b.WriteString(muted.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(muted.Render("Currency symbol: " + a.opts.CurrencySymbol))

	return components.ContentCard("Theme", b.String(), cw)
}

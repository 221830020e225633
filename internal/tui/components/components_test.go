package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total", Value: "$500.00"},
		{Label: "Spent", Value: "$350.00"},
		{Label: "Remaining", Value: "-$50.00", Alert: true},
	}, 61)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 61 {
			t.Errorf("line %d width = %d, want 61", i, w)
		}
	}
	if !strings.Contains(row, "Remaining") {
		t.Error("missing label")
	}
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayoutRow(10, 3) = %v, want %v", got, want)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestProgressBarClampsAndTagsOver(t *testing.T) {
	theme.SetActive("flexoki-dark")

	over := ProgressBar(1.6, 10, true)
	if !strings.Contains(over, "100%") || !strings.Contains(over, "over") {
		t.Errorf("over-budget bar = %q", over)
	}
	empty := ProgressBar(-0.5, 10, false)
	if !strings.Contains(empty, "  0%") {
		t.Errorf("negative progress should clamp to 0%%: %q", empty)
	}
}

func TestHorizontalBarsScale(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := HorizontalBars([]Bar{
		{Label: "Trip", Value: 350, Text: "$350.00"},
		{Label: "Gym", Value: 100, Text: "$100.00"},
		{Label: "Unset", Value: 0, Text: "$0.00"},
	}, 40)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	full := strings.Count(lines[0], "█")
	part := strings.Count(lines[1], "█")
	if full <= part || part == 0 {
		t.Errorf("bars not scaled: trip=%d gym=%d", full, part)
	}
	if strings.Count(lines[2], "█") != 0 {
		t.Error("zero value should draw no fill")
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d", i, lipgloss.Width(l), w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('s') != 1 {
		t.Error("s should select Summary")
	}
	if TabIdxByKey('q') != -1 {
		t.Error("q is not a tab key")
	}
	bar := RenderTabBar(0)
	if !strings.Contains(bar, "Budgets") || !strings.Contains(bar, "x") {
		t.Errorf("tab bar = %q", bar)
	}
}

func TestStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(60, "[q]uit", "3 budgets")
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
}

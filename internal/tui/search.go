package tui

import (
	"github.com/theirongolddev/iodda/internal/pipeline"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 80
	ti.SetValue(value)
	return ti
}

// startSearch focuses the search input, seeded with the active term.
func (a App) startSearch(initial string) (tea.Model, tea.Cmd) {
	a.searching = true
	a.search = newSearchInput(initial)
	cmd := a.search.Focus()
	return a, cmd
}

// updateSearch handles key events while the search input has focus. Every
// keystroke re-runs the search so the list narrows as the user types.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.searching = false
		a.search.Blur()
		return a, nil

	case "esc":
		a.searching = false
		a.search.Blur()
		a.applySearch("")
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.applySearch(a.search.Value())
	return a, cmd
}

func (a *App) applySearch(term string) {
	if a.mode == modeDetail {
		a.expTerm = pipeline.NormalizeTerm(term)
		a.expCursor = 0
	} else {
		a.repo.Search(term)
		a.cursor = 0
	}
	a.refresh()
}

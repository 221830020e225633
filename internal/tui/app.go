// Package tui provides the interactive Bubble Tea dashboard for iodda.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/store"
	"github.com/theirongolddev/iodda/internal/tui/components"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// budgetsChangedMsg is sent when the repository publishes a new view.
type budgetsChangedMsg struct{}

// Options configures the dashboard.
type Options struct {
	CurrencySymbol string
	// SaveTheme persists a theme picked on the Settings tab. Nil keeps the
	// choice for this session only.
	SaveTheme func(name string) error
	Logger    *zerolog.Logger
}

const (
	tabBudgets = iota
	tabSummary
	tabSettings
)

type mode int

const (
	modeList mode = iota
	modeDetail
)

type formKind int

const (
	formNone formKind = iota
	formAddBudget
	formEditBudget
	formAddExpense
)

// App is the root Bubble Tea model.
type App struct {
	repo    *store.Repository
	opts    Options
	log     zerolog.Logger
	changes chan struct{} // coalesced repository notifications
	cancel  func()

	// Latest repository snapshot
	view store.View

	// UI state
	width     int
	height    int
	activeTab int
	mode      mode
	showHelp  bool
	status    string

	// Budget list
	cursor int

	// Expense detail
	detailID   uuid.UUID
	expTerm    string
	expenses   []model.Expense
	expCursor  int
	confirmDel bool

	// Live search (budget list or expense sub-search)
	searching bool
	search    textinput.Model

	// Entity forms (huh)
	form        *huh.Form
	formKind    formKind
	editID      uuid.UUID
	budgetVals  *budgetFormValues
	expenseVals *expenseFormValues

	settingsCursor int
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the dashboard over repo and subscribes to its changes.
// Call Close when the program exits.
func NewApp(repo *store.Repository, opts Options) App {
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}

	a := App{
		repo:    repo,
		opts:    opts,
		log:     zerolog.Nop(),
		changes: make(chan struct{}, 1),
		search:  newSearchInput(""),
	}
	if opts.Logger != nil {
		a.log = opts.Logger.With().Str("component", "tui").Logger()
	}
	changes := a.changes
	a.cancel = repo.Subscribe(func(store.View) {
		select {
		case changes <- struct{}{}:
		default: // a notification is already pending
		}
	})

	for i, name := range theme.Names() {
		if name == theme.Active.Name {
			a.settingsCursor = i
		}
	}

	a.refresh()
	return a
}

// Close stops listening for repository changes.
func (a App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return waitForChange(a.changes)
}

// waitForChange blocks until the repository publishes again.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return budgetsChangedMsg{}
	}
}

// refresh pulls the latest snapshot and re-derives cursor bounds and the
// open budget's expense list.
func (a *App) refresh() {
	a.view = a.repo.Snapshot()
	a.cursor = clamp(a.cursor, 0, len(a.view.Filtered)-1)

	if a.mode != modeDetail {
		return
	}
	found, err := a.repo.SearchExpenses(a.detailID, a.expTerm)
	if err != nil {
		// Budget went away underneath us.
		a.mode = modeList
		a.expenses = nil
		a.status = "Budget no longer exists"
		return
	}
	a.expenses = found
	a.expCursor = clamp(a.expCursor, 0, len(a.expenses)-1)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72)).WithHeight(msg.Height)
		}
		return a, nil

	case budgetsChangedMsg:
		a.refresh()
		return a, waitForChange(a.changes)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.form != nil {
			if key == "esc" {
				a.closeForm("Cancelled")
				return a, nil
			}
			return a.updateForm(msg)
		}

		if a.searching {
			return a.updateSearch(msg)
		}

		if a.confirmDel {
			return a.updateConfirmDelete(key)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.mode == modeDetail {
			return a.updateDetail(key)
		}

		if key == "q" {
			return a, tea.Quit
		}

		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab", "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}

		switch a.activeTab {
		case tabBudgets:
			return a.updateBudgets(key)
		case tabSettings:
			return a.updateSettings(key)
		}
		return a, nil
	}

	// Cursor blinks and other internal messages for the active form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateBudgets(key string) (tea.Model, tea.Cmd) {
	n := len(a.view.Filtered)
	switch key {
	case "/":
		return a.startSearch(a.view.Term)
	case "esc":
		if a.view.Term != "" {
			a.repo.Search("")
			a.cursor = 0
			a.refresh()
		}
	case "j", "down":
		if a.cursor < n-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g":
		a.cursor = 0
	case "G":
		a.cursor = max(n-1, 0)
	case "enter":
		if b, ok := a.selectedBudget(); ok {
			a.openDetail(b.ID)
		}
	case "a":
		return a.openBudgetForm(nil)
	case "e":
		if b, ok := a.selectedBudget(); ok {
			return a.openBudgetForm(&b)
		}
	case "d":
		if _, ok := a.selectedBudget(); ok {
			a.confirmDel = true
		}
	}
	return a, nil
}

func (a App) updateDetail(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "/":
		return a.startSearch(a.expTerm)
	case "esc", "q", "backspace":
		if key == "esc" && a.expTerm != "" {
			a.expTerm = ""
			a.expCursor = 0
			a.refresh()
			return a, nil
		}
		a.mode = modeList
		a.expTerm = ""
		a.expenses = nil
	case "j", "down":
		if a.expCursor < len(a.expenses)-1 {
			a.expCursor++
		}
	case "k", "up":
		if a.expCursor > 0 {
			a.expCursor--
		}
	case "a":
		return a.openExpenseForm()
	case "e":
		if b, ok := a.repo.Budget(a.detailID); ok {
			return a.openBudgetForm(&b)
		}
	}
	return a, nil
}

func (a App) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	a.confirmDel = false
	if key != "y" && key != "Y" {
		a.status = "Delete cancelled"
		return a, nil
	}
	b, ok := a.selectedBudget()
	if !ok {
		return a, nil
	}
	if err := a.repo.RemoveBudget(b.ID); err != nil {
		a.status = "Delete failed: " + err.Error()
		a.log.Warn().Err(err).Str("budget_id", b.ID.String()).Msg("remove budget")
		return a, nil
	}
	a.status = fmt.Sprintf("Deleted %q", b.Name)
	a.refresh()
	return a, nil
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	names := theme.Names()
	switch key {
	case "j", "down":
		if a.settingsCursor < len(names)-1 {
			a.settingsCursor++
		}
	case "k", "up":
		if a.settingsCursor > 0 {
			a.settingsCursor--
		}
	case "enter":
		name := names[a.settingsCursor]
		theme.SetActive(name)
		a.status = "Theme: " + name
		if a.opts.SaveTheme != nil {
			if err := a.opts.SaveTheme(name); err != nil {
				a.status = "Theme applied, save failed: " + err.Error()
			}
		}
	}
	return a, nil
}

func (a App) selectedBudget() (model.Budget, bool) {
	if a.cursor < 0 || a.cursor >= len(a.view.Filtered) {
		return model.Budget{}, false
	}
	return a.view.Filtered[a.cursor], true
}

func (a *App) openDetail(id uuid.UUID) {
	a.mode = modeDetail
	a.detailID = id
	a.expTerm = ""
	a.expCursor = 0
	a.refresh()
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  iodda needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab) + "\n" + a.renderFilterLine()
	statusBar := components.RenderStatusBar(w, a.hints(), a.status)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.activeTab == tabBudgets && a.mode == modeDetail:
		content = a.renderDetail(cw, contentH)
	case a.activeTab == tabBudgets:
		content = a.renderBudgets(cw, contentH)
	case a.activeTab == tabSummary:
		content = a.renderSummary(cw)
	case a.activeTab == tabSettings:
		content = a.renderSettings(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderFilterLine() string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	if a.searching {
		return " " + a.search.View()
	}

	term := a.view.Term
	label := "search"
	if a.mode == modeDetail {
		term = a.expTerm
		label = "expenses"
	}
	if term == "" {
		return dim.Render(" no filter")
	}
	return dim.Render(" "+label+": ") + accent.Render(term) + dim.Render("  (esc to clear)")
}

func (a App) hints() string {
	switch {
	case a.confirmDel:
		return "Delete selected budget? [y]es / any key to cancel"
	case a.searching:
		return "[enter] apply  [esc] clear"
	case a.mode == modeDetail:
		return "[/]search  [a]dd expense  [e]dit budget  [esc]back  [?]help"
	case a.activeTab == tabBudgets:
		return "[/]search  [enter]open  [a]dd  [e]dit  [d]elete  [?]help  [q]uit"
	case a.activeTab == tabSettings:
		return "[j/k]select  [enter]apply  [q]uit"
	}
	return "[?]help  [q]uit"
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	bindings := []struct{ key, desc string }{
		{"b s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"/", "Search budgets or expenses"},
		{"Enter", "Open budget"},
		{"a", "Add budget or expense"},
		{"e", "Edit budget"},
		{"d", "Delete budget"},
		{"Esc", "Clear search / Back"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// window returns the [start, end) range of n rows to draw in height rows
// so that cursor stays visible.
func window(cursor, n, height int) (int, int) {
	if height <= 0 || n == 0 {
		return 0, 0
	}
	start := clamp(cursor-height+1, 0, max(n-height, 0))
	return start, min(start+height, n)
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

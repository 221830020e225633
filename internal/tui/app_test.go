package tui

import (
	"errors"
	"testing"

	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/store"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func seedRepo(t *testing.T) *store.Repository {
	t.Helper()
	trip := model.NewBudget("Trip to Paris", decimal.NewFromInt(500), decimal.NewFromInt(350))
	trip.Emoji = "🗼"
	hotel := model.NewExpense("Hotel", decimal.NewFromInt(220))
	hotel.Location = "Booking.com"
	museum := model.NewExpense("Museum Pass", decimal.NewFromInt(65))
	museum.Quantity = 2
	trip.Expenses = []model.Expense{hotel, museum}

	repo := store.New()
	repo.SetBudgets([]model.Budget{
		trip,
		model.NewBudget("Shopping Spree", decimal.NewFromInt(200), decimal.NewFromInt(250)),
		model.NewBudget("Gym Membership", decimal.NewFromInt(100), decimal.NewFromInt(100)),
		model.NewBudget("Unnamed Budget", decimal.Zero, decimal.Zero),
	})
	return repo
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, keys ...string) App {
	var m tea.Model = a
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m.(App)
}

func newTestApp(t *testing.T) (App, *store.Repository) {
	t.Helper()
	repo := seedRepo(t)
	a := NewApp(repo, Options{})
	t.Cleanup(a.Close)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), repo
}

func filteredNames(a App) []string {
	out := make([]string, len(a.view.Filtered))
	for i, b := range a.view.Filtered {
		out[i] = b.Name
	}
	return out
}

func TestNewAppShowsSortedBudgets(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, []string{"Gym Membership", "Shopping Spree", "Trip to Paris", "Unnamed Budget"}, filteredNames(a))

	out := a.View()
	assert.Contains(t, out, "Trip to Paris")
	assert.Contains(t, out, "$350.00")
	assert.Contains(t, out, "over")
}

func TestLiveSearchFiltersEachKeystroke(t *testing.T) {
	a, repo := newTestApp(t)

	a = press(a, "/", "s")
	assert.True(t, a.searching)
	assert.Equal(t, "s", repo.Term())
	assert.Len(t, a.view.Filtered, 3) // Gym Membership, Shopping Spree, Trip to Paris

	a = press(a, "h", "o", "p")
	assert.Equal(t, "shop", repo.Term())
	assert.Equal(t, []string{"Shopping Spree"}, filteredNames(a))

	a = press(a, "enter")
	assert.False(t, a.searching)
	assert.Equal(t, "shop", repo.Term())
	assert.Contains(t, a.View(), "1 of 4")

	a = press(a, "esc")
	assert.Equal(t, "", repo.Term())
	assert.Len(t, a.view.Filtered, 4)
}

func TestSearchEscClears(t *testing.T) {
	a, repo := newTestApp(t)
	a = press(a, "/", "z", "z", "z")
	assert.Empty(t, a.view.Filtered)
	assert.Contains(t, a.View(), "Nothing matches")

	a = press(a, "esc")
	assert.False(t, a.searching)
	assert.Equal(t, "", repo.Term())
	assert.Len(t, a.view.Filtered, 4)
}

func TestDetailAndExpenseSearch(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(a, "/", "t", "r", "i", "p", "enter", "enter")
	require.Equal(t, modeDetail, a.mode)
	require.Len(t, a.expenses, 2)
	out := a.View()
	assert.Contains(t, out, "Hotel")
	assert.Contains(t, out, "Booking.com")
	assert.Contains(t, out, "×2")

	a = press(a, "/", "b", "o", "o", "k")
	require.Len(t, a.expenses, 1)
	assert.Equal(t, "Hotel", a.expenses[0].Name)

	a = press(a, "enter", "esc")
	assert.Equal(t, modeDetail, a.mode, "first esc clears the expense search")
	assert.Len(t, a.expenses, 2)

	a = press(a, "esc")
	assert.Equal(t, modeList, a.mode)
}

func TestDeleteBudgetConfirm(t *testing.T) {
	a, repo := newTestApp(t)

	a = press(a, "d", "n")
	assert.Equal(t, 4, repo.Len())
	assert.Equal(t, "Delete cancelled", a.status)

	a = press(a, "d", "y")
	assert.Equal(t, 3, repo.Len())
	assert.NotContains(t, filteredNames(a), "Gym Membership")
}

func TestAddBudgetForm(t *testing.T) {
	a, repo := newTestApp(t)

	a = press(a, "a")
	require.NotNil(t, a.form)
	assert.Equal(t, formAddBudget, a.formKind)

	*a.budgetVals = budgetFormValues{name: "Savings", emoji: "🐷", total: "1000", spent: ""}
	status := a.submitForm()
	assert.Equal(t, `Added "Savings"`, status)
	assert.Equal(t, 5, repo.Len())
	assert.Contains(t, filteredNames(a), "Savings")
}

func TestEditBudgetFormKeepsIdentity(t *testing.T) {
	a, repo := newTestApp(t)
	a = press(a, "down", "down") // Trip to Paris
	sel, ok := a.selectedBudget()
	require.True(t, ok)
	require.Equal(t, "Trip to Paris", sel.Name)

	a = press(a, "e")
	require.Equal(t, formEditBudget, a.formKind)
	assert.Equal(t, "500.00", a.budgetVals.total)

	a.budgetVals.name = "Trip to Rome"
	a.submitForm()

	got, ok := repo.Budget(sel.ID)
	require.True(t, ok)
	assert.Equal(t, "Trip to Rome", got.Name)
	assert.Len(t, got.Expenses, 2)
}

func TestAddExpenseForm(t *testing.T) {
	a, repo := newTestApp(t)
	a = press(a, "down", "down", "enter", "a")
	require.Equal(t, formAddExpense, a.formKind)

	*a.expenseVals = expenseFormValues{name: "Dinner", amount: "45,50", quantity: "2", location: "Le Marais"}
	a.submitForm()

	got, ok := repo.Budget(a.detailID)
	require.True(t, ok)
	require.Len(t, got.Expenses, 3)
	assert.True(t, got.SpentAmount.Equal(decimal.NewFromInt(441)))
	assert.Len(t, a.expenses, 3)
}

func TestFormEscCancels(t *testing.T) {
	a, repo := newTestApp(t)
	a = press(a, "a", "esc")
	assert.Nil(t, a.form)
	assert.Equal(t, "Cancelled", a.status)
	assert.Equal(t, 4, repo.Len())
}

func TestBudgetFormValues(t *testing.T) {
	b, err := budgetFormValues{name: " Trip ", total: "500"}.toBudget(nil)
	require.NoError(t, err)
	assert.Equal(t, "Trip", b.Name)
	assert.True(t, b.SpentAmount.IsZero())

	_, err = budgetFormValues{name: "", total: "1"}.toBudget(nil)
	assert.ErrorIs(t, err, model.ErrEmptyName)
	_, err = budgetFormValues{name: "x", total: "-1"}.toBudget(nil)
	assert.ErrorIs(t, err, model.ErrNegativeAmount)
	_, err = budgetFormValues{name: "x", total: "lots"}.toBudget(nil)
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestExpenseFormValues(t *testing.T) {
	e, err := expenseFormValues{name: "Taxi", amount: "20"}.toExpense()
	require.NoError(t, err)
	assert.Equal(t, 1, e.Quantity)
	assert.Nil(t, e.Note)

	e, err = expenseFormValues{name: "Taxi", amount: "20", note: " late "}.toExpense()
	require.NoError(t, err)
	assert.Equal(t, "late", e.NoteText())

	_, err = expenseFormValues{name: "Taxi", amount: "20", quantity: "0"}.toExpense()
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestExternalMutationArrivesAsMessage(t *testing.T) {
	a, repo := newTestApp(t)
	require.NoError(t, repo.AddBudget(model.NewBudget("Books", decimal.NewFromInt(50), decimal.Zero)))

	msg := a.Init()()
	require.IsType(t, budgetsChangedMsg{}, msg)

	m, cmd := a.Update(msg)
	a = m.(App)
	assert.NotNil(t, cmd)
	assert.Contains(t, filteredNames(a), "Books")
}

func TestRemovedBudgetLeavesDetail(t *testing.T) {
	a, repo := newTestApp(t)
	a = press(a, "enter")
	require.Equal(t, modeDetail, a.mode)

	require.NoError(t, repo.RemoveBudget(a.detailID))
	m, _ := a.Update(budgetsChangedMsg{})
	a = m.(App)
	assert.Equal(t, modeList, a.mode)
}

func TestTabsAndSettings(t *testing.T) {
	defer theme.SetActive("flexoki-dark")
	theme.SetActive("flexoki-dark")

	var saved string
	a := NewApp(seedRepo(t), Options{SaveTheme: func(name string) error {
		saved = name
		return nil
	}})
	defer a.Close()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	a = m.(App)

	a = press(a, "s")
	assert.Equal(t, tabSummary, a.activeTab)
	out := a.View()
	assert.Contains(t, out, "Spent per budget")
	assert.Contains(t, out, "Over budget")

	a = press(a, "x", "down", "enter")
	assert.Equal(t, tabSettings, a.activeTab)
	assert.Equal(t, "catppuccin-mocha", theme.Active.Name)
	assert.Equal(t, "catppuccin-mocha", saved)

	a = press(a, "tab")
	assert.Equal(t, tabBudgets, a.activeTab)
}

func TestSettingsSaveError(t *testing.T) {
	defer theme.SetActive("flexoki-dark")
	a := NewApp(seedRepo(t), Options{SaveTheme: func(string) error { return errors.New("read-only") }})
	defer a.Close()
	a = press(a, "x", "enter")
	assert.Contains(t, a.status, "read-only")
}

func TestViewNarrowAndHelp(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Contains(t, m.View(), "too narrow")

	a = press(a, "?")
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	a = press(a, "j")
	assert.False(t, a.showHelp)
}

func TestWindow(t *testing.T) {
	s, e := window(0, 10, 4)
	assert.Equal(t, [2]int{0, 4}, [2]int{s, e})
	s, e = window(9, 10, 4)
	assert.Equal(t, [2]int{6, 10}, [2]int{s, e})
	s, e = window(2, 3, 10)
	assert.Equal(t, [2]int{0, 3}, [2]int{s, e})
	s, e = window(0, 0, 5)
	assert.Equal(t, [2]int{0, 0}, [2]int{s, e})
}

package pipeline

import (
	"testing"

	"github.com/theirongolddev/iodda/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func budgets(names ...string) []model.Budget {
	out := make([]model.Budget, len(names))
	for i, n := range names {
		out[i] = model.NewBudget(n, decimal.NewFromInt(100), decimal.Zero)
	}
	return out
}

func names(bs []model.Budget) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func expenseNames(es []model.Expense) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func sample() []model.Budget {
	return budgets("Trip to Paris", "Shopping Spree", "Gym Membership")
}

func TestBudgetsEmptyTermSortsAll(t *testing.T) {
	got := Default.Budgets(sample(), "")
	assert.Equal(t, []string{"Gym Membership", "Shopping Spree", "Trip to Paris"}, names(got))
}

func TestBudgetsWhitespaceTermIsNoFilter(t *testing.T) {
	got := Default.Budgets(sample(), "   \t")
	assert.Len(t, got, 3)
}

func TestBudgetsSubstringCaseInsensitive(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"shop", []string{"Shopping Spree"}},
		{"SHOP", []string{"Shopping Spree"}},
		{" paris ", []string{"Trip to Paris"}},
		{"p", []string{"Gym Membership", "Shopping Spree", "Trip to Paris"}},
		{"zzz", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, names(Default.Budgets(sample(), tc.term)))
		})
	}
}

func TestBudgetsNoMatchIsEmptyNotNil(t *testing.T) {
	got := Default.Budgets(sample(), "nothing matches")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBudgetsEmptyInput(t *testing.T) {
	assert.Empty(t, Default.Budgets(nil, ""))
	assert.Empty(t, Default.Budgets([]model.Budget{}, "shop"))
}

func TestBudgetsStableTies(t *testing.T) {
	in := budgets("Food", "Alpha", "Food", "Food")
	got := Default.Budgets(in, "")
	require.Len(t, got, 4)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, in[0].ID, got[1].ID)
	assert.Equal(t, in[2].ID, got[2].ID)
	assert.Equal(t, in[3].ID, got[3].ID)
}

func TestBudgetsSortIgnoresCase(t *testing.T) {
	got := Default.Budgets(budgets("banana", "Apple", "cherry"), "")
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(got))
}

func TestBudgetsDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := names(in)
	_ = Default.Budgets(in, "")
	assert.Equal(t, before, names(in))
}

func TestBudgetsIdempotent(t *testing.T) {
	in := sample()
	once := Default.Budgets(in, "i")
	twice := Default.Budgets(once, "i")
	assert.Equal(t, names(once), names(twice))
}

func TestExpensesMatchAcrossFields(t *testing.T) {
	note := "booked on the train"
	hotel := model.NewExpense("Hotel", decimal.NewFromInt(120))
	hotel.Location = "Booking.com"
	ticket := model.NewExpense("Ticket", decimal.NewFromInt(40))
	ticket.Note = &note
	coffee := model.NewExpense("Coffee", decimal.NewFromInt(3))
	coffee.Location = "Café de Flore"
	book := model.NewExpense("Guide Book", decimal.NewFromInt(12))

	in := []model.Expense{ticket, hotel, coffee, book}

	assert.Equal(t, []string{"Guide Book", "Hotel", "Ticket"}, expenseNames(Default.Expenses(in, "book")))
	assert.Equal(t, []string{"Coffee"}, expenseNames(Default.Expenses(in, "flore")))
	assert.Equal(t, []string{"Coffee", "Guide Book", "Hotel", "Ticket"}, expenseNames(Default.Expenses(in, "")))
	assert.Empty(t, Default.Expenses(in, "xyz"))
}

func TestExpensesNilNoteIgnored(t *testing.T) {
	e := model.NewExpense("Taxi", decimal.NewFromInt(20))
	assert.Empty(t, Default.Expenses([]model.Expense{e}, "note"))
}

func TestParseLocale(t *testing.T) {
	q, err := ParseLocale("fr-CA")
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("fr-CA"), q.Locale())

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	bs := []model.Budget{
		model.NewBudget("Trip to Paris", decimal.NewFromInt(500), decimal.NewFromInt(350)),
		model.NewBudget("Shopping Spree", decimal.NewFromInt(200), decimal.NewFromInt(250)),
		model.NewBudget("Gym Membership", decimal.NewFromInt(100), decimal.NewFromInt(100)),
	}
	bs[0].Expenses = []model.Expense{model.NewExpense("Hotel", decimal.NewFromInt(350))}

	s := Summarize(bs)
	assert.Equal(t, 3, s.Budgets)
	assert.Equal(t, 1, s.Expenses)
	assert.Equal(t, 1, s.OverBudget)
	assert.True(t, s.TotalAllocated.Equal(decimal.NewFromInt(800)))
	assert.True(t, s.TotalSpent.Equal(decimal.NewFromInt(700)))

	over := OverBudget(bs)
	require.Len(t, over, 1)
	assert.Equal(t, "Shopping Spree", over[0].Name)
}

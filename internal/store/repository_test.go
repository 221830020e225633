package store

import (
	"sync"
	"testing"

	"github.com/theirongolddev/iodda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budget(name string) model.Budget {
	return model.NewBudget(name, decimal.NewFromInt(100), decimal.NewFromInt(10))
}

func names(bs []model.Budget) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func seeded() *Repository {
	r := New()
	r.SetBudgets([]model.Budget{budget("Trip to Paris"), budget("Shopping Spree"), budget("Gym Membership")})
	return r
}

func TestNewRepositoryIsEmpty(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())
	assert.NotNil(t, r.Filtered())
	assert.Empty(t, r.Filtered())
	assert.Empty(t, r.Search("anything"))
}

func TestSearchEmptyReturnsAllSorted(t *testing.T) {
	r := seeded()
	assert.Equal(t, []string{"Gym Membership", "Shopping Spree", "Trip to Paris"}, names(r.Search("")))
	assert.Equal(t, names(r.Search("")), names(r.Filtered()))
}

func TestSearchFilters(t *testing.T) {
	r := seeded()
	assert.Equal(t, []string{"Shopping Spree"}, names(r.Search("shop")))
	assert.Equal(t, "shop", r.Term())
	assert.Equal(t, []string{"Shopping Spree"}, names(r.Filtered()))
}

func TestSearchTrimsTerm(t *testing.T) {
	r := seeded()
	assert.Len(t, r.Search("   "), 3)
	assert.Equal(t, "", r.Term())
}

func TestSearchIdempotent(t *testing.T) {
	r := seeded()
	once := names(r.Search("i"))
	twice := names(r.Search("i"))
	assert.Equal(t, once, twice)
}

func TestSetBudgetsReappliesTerm(t *testing.T) {
	r := seeded()
	r.Search("shop")

	next := []model.Budget{budget("Shoes"), budget("Groceries"), budget("Workshop")}
	r.SetBudgets(next)

	direct := New()
	direct.SetBudgets(next)
	assert.Equal(t, names(direct.Search("shop")), names(r.Filtered()))
	assert.Equal(t, []string{"Workshop"}, names(r.Filtered()))
}

func TestSetBudgetsIdempotent(t *testing.T) {
	in := []model.Budget{budget("B"), budget("A")}
	r := New()
	r.SetBudgets(in)
	first := r.Snapshot()
	r.SetBudgets(in)
	second := r.Snapshot()
	assert.Equal(t, names(first.Filtered), names(second.Filtered))
	assert.Equal(t, names(first.Budgets), names(second.Budgets))
}

func TestSetBudgetsCopiesInput(t *testing.T) {
	in := []model.Budget{budget("Trip")}
	r := New()
	r.SetBudgets(in)

	in[0].Name = "changed"
	got := r.Budgets()
	require.Len(t, got, 1)
	assert.Equal(t, "Trip", got[0].Name)

	got[0].Name = "also changed"
	assert.Equal(t, "Trip", r.Budgets()[0].Name)
}

func TestBudgetsKeepsInsertionOrder(t *testing.T) {
	r := seeded()
	assert.Equal(t, []string{"Trip to Paris", "Shopping Spree", "Gym Membership"}, names(r.Budgets()))
}

func TestAddBudget(t *testing.T) {
	r := seeded()
	r.Search("s")

	b := budget("Savings")
	require.NoError(t, r.AddBudget(b))
	assert.Equal(t, 4, r.Len())
	assert.Contains(t, names(r.Filtered()), "Savings")

	err := r.AddBudget(b)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 4, r.Len())
}

func TestReplaceBudget(t *testing.T) {
	r := seeded()
	orig := r.Budgets()[0]

	updated := orig.Clone()
	updated.Name = "Trip to Rome"
	require.NoError(t, r.ReplaceBudget(updated))

	got, ok := r.Budget(orig.ID)
	require.True(t, ok)
	assert.Equal(t, "Trip to Rome", got.Name)
	assert.Equal(t, "Trip to Rome", r.Search("rome")[0].Name)

	assert.ErrorIs(t, r.ReplaceBudget(budget("ghost")), ErrNotFound)
}

func TestRemoveBudget(t *testing.T) {
	r := seeded()
	target := r.Search("gym")[0]

	require.NoError(t, r.RemoveBudget(target.ID))
	assert.Equal(t, 2, r.Len())
	assert.Empty(t, r.Filtered())
	_, ok := r.Budget(target.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, r.RemoveBudget(target.ID), ErrNotFound)
}

func TestAppendExpense(t *testing.T) {
	r := seeded()
	trip := r.Budgets()[0]

	hotel := model.NewExpense("Hotel", decimal.NewFromInt(40))
	hotel.Location = "Booking.com"
	hotel.Quantity = 2
	require.NoError(t, r.AppendExpense(trip.ID, hotel))

	got, ok := r.Budget(trip.ID)
	require.True(t, ok)
	require.Len(t, got.Expenses, 1)
	assert.True(t, got.SpentAmount.Equal(decimal.NewFromInt(90)))

	assert.ErrorIs(t, r.AppendExpense(trip.ID, hotel), ErrDuplicateID)
	assert.ErrorIs(t, r.AppendExpense(uuid.New(), model.NewExpense("x", decimal.Zero)), ErrNotFound)
}

func TestSearchExpenses(t *testing.T) {
	r := seeded()
	trip := r.Budgets()[0]

	hotel := model.NewExpense("Hotel", decimal.NewFromInt(120))
	hotel.Location = "Booking.com"
	dinner := model.NewExpense("Dinner", decimal.NewFromInt(60))
	require.NoError(t, r.AppendExpense(trip.ID, hotel))
	require.NoError(t, r.AppendExpense(trip.ID, dinner))

	found, err := r.SearchExpenses(trip.ID, "book")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Hotel", found[0].Name)

	all, err := r.SearchExpenses(trip.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Dinner", all[0].Name)

	_, err = r.SearchExpenses(uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotSummary(t *testing.T) {
	r := New()
	over := model.NewBudget("Shopping Spree", decimal.NewFromInt(200), decimal.NewFromInt(250))
	r.SetBudgets([]model.Budget{over, budget("Trip")})

	v := r.Snapshot()
	assert.Equal(t, 2, v.Summary.Budgets)
	assert.Equal(t, 1, v.Summary.OverBudget)
	assert.True(t, v.Summary.TotalSpent.Equal(decimal.NewFromInt(260)))
}

func TestSubscribe(t *testing.T) {
	r := seeded()

	var got []View
	cancel := r.Subscribe(func(v View) {
		got = append(got, v)
		// Listeners may read back without deadlocking.
		_ = r.Filtered()
	})

	r.Search("shop")
	require.NoError(t, r.AddBudget(budget("Shopping List")))
	require.Len(t, got, 2)
	assert.Equal(t, "shop", got[0].Term)
	assert.Equal(t, []string{"Shopping List", "Shopping Spree"}, names(got[1].Filtered))

	cancel()
	cancel()
	r.Search("")
	assert.Len(t, got, 2)
}

func TestSubscribeOrder(t *testing.T) {
	r := New()
	var order []int
	r.Subscribe(func(View) { order = append(order, 1) })
	r.Subscribe(func(View) { order = append(order, 2) })
	r.Subscribe(func(View) { order = append(order, 3) })
	r.Search("")
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestConcurrentReadAfterWrite(t *testing.T) {
	r := seeded()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = r.Search("shop")
				_ = r.Snapshot()
			}
		}()
	}
	wg.Wait()

	v := r.Snapshot()
	assert.Equal(t, []string{"Shopping Spree"}, names(v.Filtered))
}

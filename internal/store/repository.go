// Package store holds the in-memory budget repository shared by the CLI and
// the dashboard.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/pipeline"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")
)

// View is a consistent snapshot of the repository.
type View struct {
	Term     string
	Budgets  []model.Budget // authoritative collection, insertion order
	Filtered []model.Budget // Budgets after the current term, sorted
	Summary  model.Summary  // totals over Budgets
}

// Repository owns the user's budgets and keeps a filtered view in step with
// every mutation and search. Values going in and out are deep copies, so
// callers never share expense slices with the stored budgets.
type Repository struct {
	mu       sync.RWMutex
	raw      []model.Budget
	filtered []model.Budget
	term     string
	query    pipeline.Query
	log      zerolog.Logger

	subMu  sync.Mutex
	subs   map[int]func(View)
	nextID int
}

// Option configures a Repository.
type Option func(*Repository)

// WithQuery sets the locale-aware pipeline used for filtering.
func WithQuery(q pipeline.Query) Option {
	return func(r *Repository) { r.query = q }
}

// WithLogger sets the logger for mutation events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.log = l.With().Str("component", "store").Logger() }
}

// New creates an empty repository.
func New(opts ...Option) *Repository {
	r := &Repository{
		query:    pipeline.Default,
		log:      zerolog.Nop(),
		filtered: []model.Budget{},
		subs:     make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetBudgets replaces the whole collection and re-applies the last search
// term before returning.
func (r *Repository) SetBudgets(budgets []model.Budget) {
	r.mu.Lock()
	r.raw = model.CloneBudgets(budgets)
	r.warnDuplicatesLocked()
	r.refreshLocked()
	r.log.Debug().Str("op", "set").Int("count", len(r.raw)).Msg("budgets replaced")
	v := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(v)
}

// Search stores term and returns the refreshed filtered view. A blank term
// clears the filter.
func (r *Repository) Search(term string) []model.Budget {
	r.mu.Lock()
	r.term = pipeline.NormalizeTerm(term)
	r.refreshLocked()
	r.log.Debug().Str("op", "search").Str("term", r.term).Int("count", len(r.filtered)).Msg("search applied")
	out := model.CloneBudgets(r.filtered)
	v := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(v)
	return out
}

// Filtered returns the current filtered, sorted view.
func (r *Repository) Filtered() []model.Budget {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return model.CloneBudgets(r.filtered)
}

// Term returns the active search term.
func (r *Repository) Term() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.term
}

// Budgets returns the authoritative collection in insertion order.
func (r *Repository) Budgets() []model.Budget {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := model.CloneBudgets(r.raw)
	if out == nil {
		out = []model.Budget{}
	}
	return out
}

// Len returns the number of stored budgets.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.raw)
}

// Budget looks a budget up by ID.
func (r *Repository) Budget(id uuid.UUID) (model.Budget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexLocked(id); i >= 0 {
		return r.raw[i].Clone(), true
	}
	return model.Budget{}, false
}

// Snapshot captures term, collection, filtered view and totals under one lock.
func (r *Repository) Snapshot() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// AddBudget appends b to the collection.
func (r *Repository) AddBudget(b model.Budget) error {
	return r.mutate("add", b.ID, func() error {
		if r.indexLocked(b.ID) >= 0 {
			return fmt.Errorf("budget %s: %w", b.ID, ErrDuplicateID)
		}
		r.raw = append(r.raw, b.Clone())
		return nil
	})
}

// ReplaceBudget swaps the stored budget that has b's ID for b.
func (r *Repository) ReplaceBudget(b model.Budget) error {
	return r.mutate("replace", b.ID, func() error {
		i := r.indexLocked(b.ID)
		if i < 0 {
			return fmt.Errorf("budget %s: %w", b.ID, ErrNotFound)
		}
		r.raw[i] = b.Clone()
		return nil
	})
}

// RemoveBudget deletes a budget together with its expenses.
func (r *Repository) RemoveBudget(id uuid.UUID) error {
	return r.mutate("remove", id, func() error {
		i := r.indexLocked(id)
		if i < 0 {
			return fmt.Errorf("budget %s: %w", id, ErrNotFound)
		}
		r.raw = append(r.raw[:i:i], r.raw[i+1:]...)
		return nil
	})
}

// AppendExpense adds e to the budget with the given ID and adds its total
// to the budget's spent amount.
func (r *Repository) AppendExpense(budgetID uuid.UUID, e model.Expense) error {
	return r.mutate("append_expense", budgetID, func() error {
		i := r.indexLocked(budgetID)
		if i < 0 {
			return fmt.Errorf("budget %s: %w", budgetID, ErrNotFound)
		}
		if r.hasExpenseLocked(e.ID) {
			return fmt.Errorf("expense %s: %w", e.ID, ErrDuplicateID)
		}
		r.raw[i] = r.raw[i].WithExpense(e)
		return nil
	})
}

// SearchExpenses runs the expense sub-search inside one budget.
func (r *Repository) SearchExpenses(budgetID uuid.UUID, term string) ([]model.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexLocked(budgetID)
	if i < 0 {
		return nil, fmt.Errorf("budget %s: %w", budgetID, ErrNotFound)
	}
	found := r.query.Expenses(r.raw[i].Expenses, term)
	for j := range found {
		found[j] = found[j].Clone()
	}
	return found, nil
}

// Subscribe registers fn to receive a snapshot after every mutation or
// search. Listeners run synchronously, outside the repository lock, so they
// may read from the repository. The returned func removes the listener.
func (r *Repository) Subscribe(fn func(View)) (cancel func()) {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
		})
	}
}

func (r *Repository) mutate(op string, id uuid.UUID, fn func() error) error {
	r.mu.Lock()
	if err := fn(); err != nil {
		r.mu.Unlock()
		r.log.Debug().Str("op", op).Str("budget_id", id.String()).Err(err).Msg("mutation rejected")
		return err
	}
	r.refreshLocked()
	r.log.Debug().Str("op", op).Str("budget_id", id.String()).Int("count", len(r.raw)).Msg("budgets updated")
	v := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(v)
	return nil
}

func (r *Repository) publish(v View) {
	r.subMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	r.subMu.Unlock()

	slices.Sort(ids) // subscription order
	for _, id := range ids {
		r.subMu.Lock()
		fn, ok := r.subs[id]
		r.subMu.Unlock()
		if ok {
			fn(v)
		}
	}
}

func (r *Repository) refreshLocked() {
	r.filtered = r.query.Budgets(r.raw, r.term)
}

func (r *Repository) snapshotLocked() View {
	budgets := model.CloneBudgets(r.raw)
	if budgets == nil {
		budgets = []model.Budget{}
	}
	return View{
		Term:     r.term,
		Budgets:  budgets,
		Filtered: model.CloneBudgets(r.filtered),
		Summary:  pipeline.Summarize(r.raw),
	}
}

func (r *Repository) indexLocked(id uuid.UUID) int {
	for i := range r.raw {
		if r.raw[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) hasExpenseLocked(id uuid.UUID) bool {
	for _, b := range r.raw {
		for _, e := range b.Expenses {
			if e.ID == id {
				return true
			}
		}
	}
	return false
}

func (r *Repository) warnDuplicatesLocked() {
	seen := make(map[uuid.UUID]struct{}, len(r.raw))
	for _, b := range r.raw {
		if _, dup := seen[b.ID]; dup {
			r.log.Warn().Str("budget_id", b.ID.String()).Str("name", b.Name).Msg("duplicate budget id in collection")
			continue
		}
		seen[b.ID] = struct{}{}
	}
}

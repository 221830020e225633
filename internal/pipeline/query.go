// Package pipeline turns a collection of budgets or expenses plus a search
// term into the filtered, sorted list the views render.
package pipeline

import (
	"slices"
	"strings"

	"github.com/theirongolddev/iodda/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Query holds the locale used for matching and ordering. The zero value
// uses the root (und) locale.
type Query struct {
	tag language.Tag
}

// Default matches and sorts with English rules.
var Default = New(language.English)

// New returns a Query for the given locale.
func New(tag language.Tag) Query {
	return Query{tag: tag}
}

// ParseLocale builds a Query from a BCP 47 tag such as "en" or "fr-CA".
func ParseLocale(locale string) (Query, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Query{}, err
	}
	return New(tag), nil
}

// Locale returns the tag the Query was built with.
func (q Query) Locale() language.Tag {
	return q.tag
}

// NormalizeTerm trims surrounding whitespace. A blank result means no filter.
func NormalizeTerm(term string) string {
	return strings.TrimSpace(term)
}

// Budgets returns the budgets whose name contains term, sorted by name.
// An empty term keeps every budget. The input slice is not modified.
func (q Query) Budgets(budgets []model.Budget, term string) []model.Budget {
	term = NormalizeTerm(term)
	m := q.matcher()

	out := make([]model.Budget, 0, len(budgets))
	for _, b := range budgets {
		if term == "" || m.contains(b.Name, term) {
			out = append(out, b)
		}
	}

	col := q.collator()
	slices.SortStableFunc(out, func(a, b model.Budget) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

// Expenses returns the expenses whose name, location or note contains
// term, sorted by name.
func (q Query) Expenses(expenses []model.Expense, term string) []model.Expense {
	term = NormalizeTerm(term)
	m := q.matcher()

	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if term == "" || expenseMatches(m, e, term) {
			out = append(out, e)
		}
	}

	col := q.collator()
	slices.SortStableFunc(out, func(a, b model.Expense) int {
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

func expenseMatches(m matcher, e model.Expense, term string) bool {
	if m.contains(e.Name, term) || m.contains(e.Location, term) {
		return true
	}
	return e.Note != nil && m.contains(*e.Note, term)
}

// Collators and matchers keep internal buffers, so each call builds its
// own and a Query stays safe to share.
func (q Query) collator() *collate.Collator {
	return collate.New(q.tag, collate.IgnoreCase)
}

type matcher struct {
	*search.Matcher
}

func (q Query) matcher() matcher {
	return matcher{search.New(q.tag, search.IgnoreCase)}
}

func (m matcher) contains(s, term string) bool {
	if s == "" {
		return false
	}
	start, _ := m.IndexString(s, term)
	return start >= 0
}

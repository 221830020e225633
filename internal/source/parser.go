// Package source reads budget seed files (TOML, YAML or JSON) and turns
// them into model budgets for the repository.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/iodda/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown seed file format")

// ParseFile reads and decodes one seed file. Missing IDs and creation
// dates are filled in at parse time.
func ParseFile(path string) ([]model.Budget, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	budgets, err := Parse(format, data, time.Now())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return budgets, nil
}

// Parse decodes data in the given format. now stands in for any missing
// creation date.
func Parse(format Format, data []byte, now time.Time) ([]model.Budget, error) {
	f, err := Decode(format, data)
	if err != nil {
		return nil, err
	}
	return f.ToBudgets(now)
}

// Decode unmarshals a seed file without converting its records.
func Decode(format Format, data []byte) (File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return File{}, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&f); err != nil {
			return File{}, err
		}
	default:
		return File{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return f, nil
}

// ToBudgets converts every record in the file.
func (f File) ToBudgets(now time.Time) ([]model.Budget, error) {
	out := make([]model.Budget, 0, len(f.Budgets))
	for i, rec := range f.Budgets {
		b, err := rec.Budget(now)
		if err != nil {
			return nil, fmt.Errorf("budget %d (%q): %w", i, rec.Name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Budget converts a record into a model budget.
func (r BudgetRecord) Budget(now time.Time) (model.Budget, error) {
	if strings.TrimSpace(r.Name) == "" {
		return model.Budget{}, model.ErrEmptyName
	}
	id, err := parseID(r.ID)
	if err != nil {
		return model.Budget{}, err
	}
	total, err := amountValue(r.Total)
	if err != nil {
		return model.Budget{}, fmt.Errorf("total: %w", err)
	}
	spent, err := amountValue(r.Spent)
	if err != nil {
		return model.Budget{}, fmt.Errorf("spent: %w", err)
	}
	created, err := createdAt(r.Created, r.Age, now)
	if err != nil {
		return model.Budget{}, err
	}

	b := model.Budget{
		ID:           id,
		Name:         r.Name,
		TotalAmount:  total,
		SpentAmount:  spent,
		CreatedAt:    created,
		Emoji:        r.Emoji,
		AccentColors: append([]string(nil), r.AccentColors...),
	}
	for j, er := range r.Expenses {
		e, err := er.Expense(now)
		if err != nil {
			return model.Budget{}, fmt.Errorf("expense %d (%q): %w", j, er.Name, err)
		}
		b.Expenses = append(b.Expenses, e)
	}
	return b, nil
}

// Expense converts a record into a model expense. A zero quantity means 1;
// any other quantity is kept as written.
func (r ExpenseRecord) Expense(now time.Time) (model.Expense, error) {
	if strings.TrimSpace(r.Name) == "" {
		return model.Expense{}, model.ErrEmptyName
	}
	id, err := parseID(r.ID)
	if err != nil {
		return model.Expense{}, err
	}
	amount, err := amountValue(r.Amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("amount: %w", err)
	}
	created, err := createdAt(r.Created, "", now)
	if err != nil {
		return model.Expense{}, err
	}
	qty := r.Quantity
	if qty == 0 {
		qty = 1
	}

	e := model.Expense{
		ID:        id,
		Name:      r.Name,
		Amount:    amount,
		CreatedAt: created,
		Emoji:     r.Emoji,
		Location:  r.Location,
		Quantity:  qty,
	}
	if r.Note != nil {
		note := *r.Note
		e.Note = &note
	}
	return e, nil
}

func parseID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("id %q: %w", s, err)
	}
	return id, nil
}

// amountValue accepts whatever number or string the decoders produce.
// A missing amount is zero.
func amountValue(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case string:
		return model.ParseAmount(n)
	case json.Number:
		return decimal.NewFromString(n.String())
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint64:
		return decimal.NewFromString(strconv.FormatUint(n, 10))
	case float64:
		return decimal.NewFromFloat(n), nil
	}
	return decimal.Zero, fmt.Errorf("%v (%T): %w", v, v, model.ErrInvalidAmount)
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func createdAt(created any, age string, now time.Time) (time.Time, error) {
	switch c := created.(type) {
	case time.Time:
		// Native TOML datetimes; local forms already carry the local offset.
		return c, nil
	case string:
		if c = strings.TrimSpace(c); c != "" {
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, c); err == nil {
					return t, nil
				}
			}
			return time.Time{}, fmt.Errorf("created %q: unrecognized timestamp", c)
		}
	case nil:
	default:
		return time.Time{}, fmt.Errorf("created %v (%T): unrecognized timestamp", c, c)
	}

	if age = strings.TrimSpace(age); age != "" {
		d, err := time.ParseDuration(age)
		if err != nil {
			return time.Time{}, fmt.Errorf("age %q: %w", age, err)
		}
		return now.Add(-d), nil
	}
	return now, nil
}

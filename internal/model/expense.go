package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spending event attributed to a budget.
type Expense struct {
	ID        uuid.UUID
	Name      string
	Amount    decimal.Decimal // unit price; sign is not constrained
	CreatedAt time.Time
	Emoji     string
	Location  string // free text, may be empty
	Quantity  int
	Note      *string
}

// NewExpense returns an expense with a fresh ID, quantity 1 and the
// current time as its creation date.
func NewExpense(name string, amount decimal.Decimal) Expense {
	return Expense{
		ID:        uuid.New(),
		Name:      name,
		Amount:    amount,
		CreatedAt: time.Now(),
		Quantity:  1,
	}
}

// Total is Amount multiplied by Quantity. Quantity is used as given, even
// when it is zero or negative.
func (e Expense) Total() decimal.Decimal {
	return e.Amount.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// HasNote reports whether a non-empty note is attached.
func (e Expense) HasNote() bool {
	return e.Note != nil && *e.Note != ""
}

// NoteText returns the note or "" when none is set.
func (e Expense) NoteText() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// Clone copies e, including the note pointer target.
func (e Expense) Clone() Expense {
	out := e
	if e.Note != nil {
		n := *e.Note
		out.Note = &n
	}
	return out
}

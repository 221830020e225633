package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ParseAmount parses a user-entered monetary value. Both "12.34" and
// "12,34" are accepted; surrounding whitespace is ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidateBudgetInput checks what the add-budget form collects. The
// repository itself accepts any budget.
func ValidateBudgetInput(name string, total decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if total.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// ValidateExpenseInput checks what the add-expense form collects.
func ValidateExpenseInput(name string, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

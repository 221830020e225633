package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// budgetFormValues backs the add/edit budget form. Fields stay strings so
// huh can bind them directly.
type budgetFormValues struct {
	name  string
	emoji string
	total string
	spent string
}

type expenseFormValues struct {
	name     string
	emoji    string
	amount   string
	quantity string
	location string
	note     string
}

func budgetValuesFrom(b model.Budget) budgetFormValues {
	return budgetFormValues{
		name:  b.Name,
		emoji: b.Emoji,
		total: b.TotalAmount.StringFixed(2),
		spent: b.SpentAmount.StringFixed(2),
	}
}

// toBudget builds a budget from the form. With a base the result keeps the
// base's identity, creation date and expenses.
func (v budgetFormValues) toBudget(base *model.Budget) (model.Budget, error) {
	total, err := model.ParseAmount(v.total)
	if err != nil {
		return model.Budget{}, fmt.Errorf("total: %w", err)
	}
	spent, err := optionalAmount(v.spent)
	if err != nil {
		return model.Budget{}, fmt.Errorf("spent: %w", err)
	}
	name := strings.TrimSpace(v.name)
	if err := model.ValidateBudgetInput(name, total); err != nil {
		return model.Budget{}, err
	}

	var b model.Budget
	if base != nil {
		b = base.Clone()
		b.Name, b.TotalAmount, b.SpentAmount = name, total, spent
	} else {
		b = model.NewBudget(name, total, spent)
	}
	b.Emoji = strings.TrimSpace(v.emoji)
	return b, nil
}

func (v expenseFormValues) toExpense() (model.Expense, error) {
	amount, err := model.ParseAmount(v.amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("amount: %w", err)
	}
	qty, err := parseQuantity(v.quantity)
	if err != nil {
		return model.Expense{}, err
	}
	name := strings.TrimSpace(v.name)
	if err := model.ValidateExpenseInput(name, qty); err != nil {
		return model.Expense{}, err
	}

	e := model.NewExpense(name, amount)
	e.Quantity = qty
	e.Emoji = strings.TrimSpace(v.emoji)
	e.Location = strings.TrimSpace(v.location)
	if note := strings.TrimSpace(v.note); note != "" {
		e.Note = &note
	}
	return e, nil
}

func optionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return model.ParseAmount(s)
}

func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, model.ErrInvalidQuantity
	}
	return n, nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return model.ErrEmptyName
	}
	return nil
}

func validateTotal(s string) error {
	d, err := model.ParseAmount(s)
	if err != nil {
		return err
	}
	if d.IsNegative() {
		return model.ErrNegativeAmount
	}
	return nil
}

func validateAmount(s string) error {
	_, err := model.ParseAmount(s)
	return err
}

func validateOptionalAmount(s string) error {
	_, err := optionalAmount(s)
	return err
}

func validateQuantity(s string) error {
	_, err := parseQuantity(s)
	return err
}

func newBudgetForm(v *budgetFormValues, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Trip to Paris").
				Value(&v.name).
				Validate(validateName),
			huh.NewInput().
				Title("Emoji").
				Placeholder("💰").
				CharLimit(8).
				Value(&v.emoji),
			huh.NewInput().
				Title("Total").
				Description("Spending limit, 0 for none").
				Placeholder("500.00").
				Value(&v.total).
				Validate(validateTotal),
			huh.NewInput().
				Title("Spent").
				Placeholder("0.00").
				Value(&v.spent).
				Validate(validateOptionalAmount),
		).Title(title),
	).WithShowHelp(true)
}

func newExpenseForm(v *expenseFormValues, budgetName string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Hotel").
				Value(&v.name).
				Validate(validateName),
			huh.NewInput().
				Title("Amount").
				Placeholder("120.00").
				Value(&v.amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Quantity").
				Placeholder("1").
				Value(&v.quantity).
				Validate(validateQuantity),
		).Title("New expense for "+budgetName),
		huh.NewGroup(
			huh.NewInput().
				Title("Emoji").
				CharLimit(8).
				Value(&v.emoji),
			huh.NewInput().
				Title("Location").
				Placeholder("Booking.com").
				Value(&v.location),
			huh.NewText().
				Title("Note").
				CharLimit(280).
				Value(&v.note),
		).Title("Details (optional)"),
	).WithShowHelp(true)
}

func (a App) openBudgetForm(base *model.Budget) (tea.Model, tea.Cmd) {
	if base != nil {
		vals := budgetValuesFrom(*base)
		a.budgetVals = &vals
		a.formKind = formEditBudget
		a.editID = base.ID
		a.form = newBudgetForm(a.budgetVals, "Edit budget")
	} else {
		a.budgetVals = &budgetFormValues{}
		a.formKind = formAddBudget
		a.form = newBudgetForm(a.budgetVals, "New budget")
	}
	return a.initForm()
}

func (a App) openExpenseForm() (tea.Model, tea.Cmd) {
	b, ok := a.repo.Budget(a.detailID)
	if !ok {
		return a, nil
	}
	a.expenseVals = &expenseFormValues{}
	a.formKind = formAddExpense
	a.form = newExpenseForm(a.expenseVals, b.Name)
	return a.initForm()
}

func (a App) initForm() (tea.Model, tea.Cmd) {
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.closeForm(a.submitForm())
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		a.closeForm("Cancelled")
		return a, nil
	}

	return a, cmd
}

// submitForm applies the completed form to the repository and returns the
// status line to show.
func (a *App) submitForm() string {
	var err error
	var done string

	switch a.formKind {
	case formAddBudget:
		var b model.Budget
		if b, err = a.budgetVals.toBudget(nil); err == nil {
			err = a.repo.AddBudget(b)
			done = fmt.Sprintf("Added %q", b.Name)
		}
	case formEditBudget:
		base, ok := a.repo.Budget(a.editID)
		if !ok {
			err = errors.New("budget no longer exists")
			break
		}
		var b model.Budget
		if b, err = a.budgetVals.toBudget(&base); err == nil {
			err = a.repo.ReplaceBudget(b)
			done = fmt.Sprintf("Updated %q", b.Name)
		}
	case formAddExpense:
		var e model.Expense
		if e, err = a.expenseVals.toExpense(); err == nil {
			err = a.repo.AppendExpense(a.detailID, e)
			done = fmt.Sprintf("Added expense %q", e.Name)
		}
	}

	if err != nil {
		a.log.Warn().Err(err).Int("form", int(a.formKind)).Msg("form rejected")
		return "Error: " + err.Error()
	}
	a.refresh()
	return done
}

func (a *App) closeForm(status string) {
	a.form = nil
	a.formKind = formNone
	a.budgetVals = nil
	a.expenseVals = nil
	a.status = status
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/iodda/internal/cli"
	"github.com/theirongolddev/iodda/internal/model"
	"github.com/theirongolddev/iodda/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagExpenseSearch string

var expensesCmd = &cobra.Command{
	Use:   "expenses <budget name|id>",
	Short: "List the expenses of one budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenses,
}

func init() {
	expensesCmd.Flags().StringVarP(&flagExpenseSearch, "search", "s", "", "Match expense name, location or note")
	rootCmd.AddCommand(expensesCmd)
}

func runExpenses(cmd *cobra.Command, args []string) error {
	repo, err := loadRepository(cmd.Context())
	if err != nil {
		return err
	}

	b, err := findBudget(repo, args[0])
	if err != nil {
		return err
	}
	expenses, err := repo.SearchExpenses(b.ID, flagExpenseSearch)
	if err != nil {
		return err
	}

	sym := currency()
	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.TrimSpace(b.Emoji + " " + b.Name)))
	fmt.Println()
	fmt.Printf("  %s of %s spent, %s left (%s)\n\n",
		cli.FormatMoney(b.SpentAmount, sym),
		cli.FormatMoney(b.TotalAmount, sym),
		cli.FormatMoney(b.RemainingAmount(), sym),
		cli.FormatPercent(b.ProgressPercentage()))
	if note := spentMismatch(b, sym); note != "" {
		fmt.Println(cli.Muted("  " + note))
		fmt.Println()
	}

	if len(expenses) == 0 {
		if flagExpenseSearch != "" {
			fmt.Println(cli.Muted(fmt.Sprintf("  No expenses match %q.", flagExpenseSearch)))
		} else {
			fmt.Println(cli.Muted("  No expenses recorded."))
		}
		return nil
	}

	rows := make([][]string, 0, len(expenses)+2)
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Total())
		rows = append(rows, []string{
			e.Emoji,
			cli.Truncate(e.Name, 28),
			cli.Truncate(e.Location, 20),
			cli.FormatDate(e.CreatedAt),
			cli.FormatMoney(e.Amount, sym),
			cli.FormatQuantity(e.Quantity),
			cli.FormatMoney(e.Total(), sym),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", "", "", "", "", cli.FormatMoney(total, sym)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"", "Expense", "Location", "Date", "Amount", "Qty", "Total"},
		Rows:      rows,
		LeftAlign: 4,
	}))

	for _, e := range expenses {
		if e.HasNote() {
			fmt.Printf("  %s %s\n", cli.Muted(e.Name+":"), e.NoteText())
		}
	}
	return nil
}

// spentMismatch explains a spent amount that differs from the sum of the
// budget's recorded expenses. It returns "" when they agree.
func spentMismatch(b model.Budget, sym string) string {
	recorded := b.ExpensesTotal()
	if recorded.Equal(b.SpentAmount) {
		return ""
	}
	return fmt.Sprintf("Recorded expenses total %s, spent is %s.",
		cli.FormatMoney(recorded, sym), cli.FormatMoney(b.SpentAmount, sym))
}

// findBudget resolves a budget by ID, then by exact name, then by a unique
// name match.
func findBudget(repo *store.Repository, ref string) (model.Budget, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if b, ok := repo.Budget(id); ok {
			return b, nil
		}
		return model.Budget{}, fmt.Errorf("budget %s: %w", ref, store.ErrNotFound)
	}

	for _, b := range repo.Budgets() {
		if strings.EqualFold(b.Name, strings.TrimSpace(ref)) {
			return b, nil
		}
	}

	matches := repo.Search(ref)
	switch len(matches) {
	case 0:
		return model.Budget{}, fmt.Errorf("budget %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, b := range matches {
		names[i] = b.Name
	}
	return model.Budget{}, fmt.Errorf("budget %q is ambiguous: %s", ref, strings.Join(names, ", "))
}

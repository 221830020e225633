package cmd

import (
	"fmt"

	"github.com/theirongolddev/iodda/internal/cli"
	"github.com/theirongolddev/iodda/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals across all budgets",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	repo, err := loadRepository(cmd.Context())
	if err != nil {
		return err
	}

	v := repo.Snapshot()
	s := v.Summary
	if s.Budgets == 0 {
		fmt.Println("\n  No budgets found.")
		return nil
	}

	sym := currency()
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET SUMMARY"))
	fmt.Println()

	rows := [][]string{
		{"Budgets", cli.FormatNumber(int64(s.Budgets))},
		{"Expenses", cli.FormatNumber(int64(s.Expenses))},
		{"---"},
		{"Allocated", cli.FormatMoney(s.TotalAllocated, sym)},
		{"Spent", cli.FormatMoney(s.TotalSpent, sym)},
		{"Remaining", cli.FormatMoney(s.Remaining(), sym)},
		{"Progress", cli.RenderProgressBar(s.Progress(), 20, s.Remaining().IsNegative()) + " " + cli.FormatPercent(s.Progress())},
		{"---"},
		{"Over budget", cli.FormatNumber(int64(s.OverBudget))},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	over := pipeline.OverBudget(v.Budgets)
	if len(over) == 0 {
		return nil
	}
	overRows := make([][]string, len(over))
	for i, b := range over {
		overRows[i] = []string{
			b.Emoji,
			b.Name,
			cli.FormatMoney(b.SpentAmount, sym),
			cli.FormatMoney(b.TotalAmount, sym),
			cli.FormatMoney(b.RemainingAmount().Neg(), sym),
		}
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:     "Over budget",
		Headers:   []string{"", "Budget", "Spent", "Total", "Over by"},
		Rows:      overRows,
		LeftAlign: 2,
	}))
	return nil
}

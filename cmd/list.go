package cmd

import (
	"fmt"

	"github.com/theirongolddev/iodda/internal/cli"

	"github.com/spf13/cobra"
)

var flagSearch string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List budgets with spend and progress",
	RunE:    runList,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, listCmd} {
		c.Flags().StringVarP(&flagSearch, "search", "s", "", "Only show budgets whose name contains this term")
	}
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	repo, err := loadRepository(cmd.Context())
	if err != nil {
		return err
	}

	if repo.Len() == 0 {
		fmt.Println("\n  No budgets found.")
		fmt.Printf("  Add seed files to %s, or try --sample.\n", dataSourceLabel())
		return nil
	}

	budgets := repo.Search(flagSearch)
	title := fmt.Sprintf("BUDGETS  %d", len(budgets))
	if term := repo.Term(); term != "" {
		title = fmt.Sprintf("BUDGETS  %d of %d match %q", len(budgets), repo.Len(), term)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if len(budgets) == 0 {
		fmt.Println(cli.Muted("  Nothing matches. Try a shorter term."))
		return nil
	}

	sym := currency()
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		pct := b.ProgressPercentage()
		rows = append(rows, []string{
			b.Emoji,
			cli.Truncate(b.Name, 32),
			cli.FormatMoney(b.TotalAmount, sym),
			cli.FormatMoney(b.SpentAmount, sym),
			cli.FormatMoney(b.RemainingAmount(), sym),
			cli.RenderProgressBar(pct, 16, b.IsOverBudget()) + " " + cli.FormatPercent(pct),
			cli.RenderStatus(pct, b.IsOverBudget()),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:   []string{"", "Budget", "Total", "Spent", "Remaining", "Progress", ""},
		Rows:      rows,
		LeftAlign: 2,
	}))
	return nil
}

func dataSourceLabel() string {
	if len(flagFiles) > 0 {
		return "the given files"
	}
	if flagDataDir != "" {
		return flagDataDir
	}
	return "the data directory"
}

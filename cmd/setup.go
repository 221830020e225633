package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/iodda/internal/config"
	"github.com/theirongolddev/iodda/internal/source"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	fileCfg, _ := config.Load()

	dataDir := fileCfg.General.DataDir
	if dataDir == "" {
		dataDir = config.GetDataDir(fileCfg)
	}
	locale := fileCfg.General.Locale
	symbol := fileCfg.General.CurrencySymbol
	themeName := fileCfg.Appearance.Theme

	fmt.Println()
	fmt.Println("  Welcome to iodda!")
	if files, _ := source.ScanDir(dataDir); len(files) > 0 {
		fmt.Printf("  Found %d seed files in %s\n", len(files), dataDir)
	}
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where budget seed files (.toml, .yaml, .json) live").
				Value(&dataDir),
			huh.NewInput().
				Title("Locale").
				Description("Used for search and sort order, e.g. en, de, fr-CA").
				Value(&locale).
				Validate(func(s string) error {
					_, err := language.Parse(strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&symbol),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	fileCfg.General.DataDir = strings.TrimSpace(dataDir)
	fileCfg.General.Locale = strings.TrimSpace(locale)
	fileCfg.General.CurrencySymbol = strings.TrimSpace(symbol)
	fileCfg.Appearance.Theme = themeName

	if err := fileCfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `iodda setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

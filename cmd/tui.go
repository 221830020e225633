package cmd

import (
	"fmt"

	"github.com/theirongolddev/iodda/internal/config"
	"github.com/theirongolddev/iodda/internal/tui"
	"github.com/theirongolddev/iodda/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The dashboard owns the screen, so skip progress lines on stderr.
	flagQuiet = true
	repo, err := loadRepository(cmd.Context())
	if err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(repo, tui.Options{
		CurrencySymbol: currency(),
		SaveTheme:      saveTheme,
		Logger:         &logger,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// saveTheme writes a theme picked in the dashboard back to the config file.
func saveTheme(name string) error {
	fileCfg, err := config.Load()
	if err != nil {
		return err
	}
	fileCfg.Appearance.Theme = name
	return config.Save(fileCfg)
}

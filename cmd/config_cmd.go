// Package cmd implements the iodda CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/iodda/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s%s\n", config.GetDataDir(cfg), envNote(config.EnvDataDir))
	fmt.Printf("    Locale:         %s%s\n", cfg.General.Locale, envNote(config.EnvLocale))
	fmt.Printf("    Currency:       %s\n", currency())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s%s\n", cfg.Logging.Level, envNote(config.EnvLogLevel))
	fmt.Printf("    Format: %s\n", cfg.Logging.Format)
	fmt.Println()

	fmt.Println("  Run `iodda setup` to reconfigure.")
	return nil
}

func envNote(key string) string {
	if os.Getenv(key) != "" {
		return fmt.Sprintf("  (from %s)", key)
	}
	return ""
}

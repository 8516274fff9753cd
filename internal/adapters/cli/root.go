package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unitforge",
		Short: "unitforge - keep unit parts in step with their designs",
		Long:  `unitforge tracks the parts, crew, condition and value of a campaign's units.

Each unit is imported from a TOML design sheet. The parts registry is
reconciled against that design whenever the sheet or the unit changes.

Examples:
  unitforge unit import sheets/atlas-as7d.toml
  unitforge unit list
  unitforge unit show "Atlas AS7-D"
  unitforge crew assign --unit "Atlas AS7-D" --person <id> --role pilot
  unitforge mothball start --unit "Atlas AS7-D"
  unitforge day advance
  unitforge export --out fleet.xlsx
  unitforge watch`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("UNITFORGE_CONFIG"),
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output and debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewUnitCommand())
	rootCmd.AddCommand(NewCrewCommand())
	rootCmd.AddCommand(NewPersonCommand())
	rootCmd.AddCommand(NewMothballCommand())
	rootCmd.AddCommand(NewRefitCommand())
	rootCmd.AddCommand(NewDayCommand())
	rootCmd.AddCommand(NewStockCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewWatchCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

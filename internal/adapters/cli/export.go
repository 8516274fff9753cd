package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the fleet to a spreadsheet",
		Long:  `Export every unit, part and crew seat to an .xlsx workbook with one sheet each.

Example:
  unitforge export --out fleet.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[commands.ExportUnitsResponse](ctx, a, &commands.ExportUnitsCommand{Path: out})
				if err != nil {
					return fmt.Errorf("failed to export: %w", err)
				}
				fmt.Fprintf(stdout, "✓ Wrote %s\n", result.Path)
				fmt.Fprintf(stdout, "  Units: %d\n", result.Units)
				fmt.Fprintf(stdout, "  Parts: %d\n", result.Parts)
				fmt.Fprintf(stdout, "  Crew:  %d\n", result.Crew)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "units.xlsx", "Workbook to write")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
)

// NewRefitCommand creates the refit command with subcommands
func NewRefitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refit",
		Short: "Rebuild a unit to a new design",
		Long:  `A refit swaps a unit's design for another of the same category. The new parts
registry is built when the refit completes, keeping parts both designs share.

Examples:
  unitforge refit begin --unit "Atlas AS7-D" --sheet sheets/atlas-as7k.toml --minutes 4800
  unitforge refit complete --unit "Atlas AS7-D"
  unitforge refit cancel --unit "Atlas AS7-D"`,
	}

	cmd.AddCommand(newRefitBeginCommand())
	cmd.AddCommand(newRefitCompleteCommand())
	cmd.AddCommand(newRefitCancelCommand())

	return cmd
}

func newRefitBeginCommand() *cobra.Command {
	var (
		unitRef string
		sheet   string
		minutes int
		techRef string
		cost    float64
	)

	cmd := &cobra.Command{
		Use:   "begin",
		Short: "Start refitting a unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			techID, err := parsePersonID("tech", techRef)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, unitRef)
				if err != nil {
					return err
				}
				result, err := send[commands.RefitResponse](ctx, a, &commands.BeginRefitCommand{
					UnitID:    id,
					SheetPath: sheet,
					Minutes:   minutes,
					TechID:    techID,
					Cost:      cost,
				})
				if err != nil {
					return fmt.Errorf("failed to begin refit: %w", err)
				}
				printRefit(result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Design sheet of the new configuration (required)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Tech minutes the refit takes")
	cmd.Flags().StringVar(&techRef, "tech", "", "Id of the tech doing the work")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost of the refit")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("sheet")

	return cmd
}

func newRefitCompleteCommand() *cobra.Command {
	var unitRef string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Finish a refit now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, unitRef)
				if err != nil {
					return err
				}
				result, err := send[commands.RefitResponse](ctx, a, &commands.CompleteRefitCommand{UnitID: id})
				if err != nil {
					return fmt.Errorf("failed to complete refit: %w", err)
				}
				printRefit(result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func newRefitCancelCommand() *cobra.Command {
	var unitRef string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Drop a pending refit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, unitRef)
				if err != nil {
					return err
				}
				result, err := send[commands.RefitResponse](ctx, a, &commands.CancelRefitCommand{UnitID: id})
				if err != nil {
					return fmt.Errorf("failed to cancel refit: %w", err)
				}
				printRefit(result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	_ = cmd.MarkFlagRequired("unit")

	return cmd
}

func printRefit(result *commands.RefitResponse) {
	switch {
	case result.Refitting:
		fmt.Fprintf(stdout, "✓ Refit in progress, %d minutes left\n", result.MinutesLeft)
	case result.Report != nil:
		fmt.Fprintln(stdout, "✓ Refit complete")
		printReport(stdout, result.Report)
	default:
		fmt.Fprintln(stdout, "✓ No refit pending")
	}
}

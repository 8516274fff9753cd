package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
)

// NewStockCommand creates the stock command with subcommands
func NewStockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage spare parts in the warehouse",
		Long:  `Spare parts are counted by part name. Stock covers missing parts in
'unitforge unit repairs' and is used up by 'unitforge unit replace-part'.

Examples:
  unitforge stock list
  unitforge stock adjust "Medium Laser" 2
  unitforge stock adjust "AC/20 Ammo" -- -5`,
	}

	cmd.AddCommand(newStockListCommand())
	cmd.AddCommand(newStockAdjustCommand())

	return cmd
}

func newStockListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spare parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[queries.ListStockResponse](ctx, a, &queries.ListStockQuery{})
				if err != nil {
					return fmt.Errorf("failed to list stock: %w", err)
				}
				if len(result.Lines) == 0 {
					fmt.Fprintln(stdout, "Warehouse is empty.")
					return nil
				}
				w := newTable(stdout, "PART", "QTY")
				for _, line := range result.Lines {
					fmt.Fprintf(w, "%s\t%d\n", line.PartName, line.Quantity)
				}
				return w.Flush()
			})
		},
	}
}

func newStockAdjustCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <part-name> <delta>",
		Short: "Add or remove spare parts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta must be a whole number: %w", err)
			}
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[commands.AdjustStockResponse](ctx, a, &commands.AdjustStockCommand{
					PartName: args[0],
					Delta:    delta,
				})
				if err != nil {
					return fmt.Errorf("failed to adjust stock: %w", err)
				}
				fmt.Fprintf(stdout, "✓ %s: %d in stock\n", result.PartName, result.Quantity)
				return nil
			})
		},
	}
}

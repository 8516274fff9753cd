package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
)

// NewDayCommand creates the day command
func NewDayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"maintenance"},
		Short:   "Move the campaign clock",
	}

	cmd.AddCommand(newDayAdvanceCommand())

	return cmd
}

func newDayAdvanceCommand() *cobra.Command {
	var (
		days    int
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Advance one or more days",
		Long:  `Advance the campaign day. For every unit this works mothball, activation and
refit timers by the tech minutes available and accrues maintenance, running a
maintenance check when the cycle comes round. Each maintained unit books the
astech team of its tech, or the healthy crew behind a self-crewed engineer.

Examples:
  unitforge day advance
  unitforge day advance --days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			return withApp(func(ctx context.Context, a *app) error {
				for day := 1; day <= days; day++ {
					result, err := send[commands.AdvanceDayResponse](ctx, a, &commands.AdvanceDayCommand{
						Minutes: minutes,
					})
					if err != nil {
						return fmt.Errorf("failed to advance day %d: %w", day, err)
					}

					fmt.Fprintf(stdout, "Day %d: %d units\n", day, len(result.Units))
					for _, u := range result.Units {
						switch {
						case u.MothballCompleted:
							fmt.Fprintf(stdout, "  %s: mothball work complete\n", u.Name)
						case u.RefitCompleted:
							fmt.Fprintf(stdout, "  %s: refit complete\n", u.Name)
						}
						if u.MaintenanceReport != "" {
							fmt.Fprintf(stdout, "  %s: %s\n", u.Name, u.MaintenanceReport)
						}
					}
					if result.Failed > 0 {
						fmt.Fprintf(stdout, "  ! %d units could not be advanced, see log\n", result.Failed)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Number of days to advance")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Tech minutes per unit per day (default: a full work day)")

	return cmd
}

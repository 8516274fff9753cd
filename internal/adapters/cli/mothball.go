package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
)

// NewMothballCommand creates the mothball command with subcommands
func NewMothballCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mothball",
		Short: "Put units into storage and bring them back",
		Long:  `Mothballing strips a unit's crew and takes tech time to complete.
Activation takes the same time in reverse. Progress is made by 'unitforge day advance'
unless --gm is given or campaign.gm_mode is set.

Examples:
  unitforge mothball start --unit "Atlas AS7-D" --tech <id>
  unitforge mothball activate --unit "Atlas AS7-D" --gm
  unitforge mothball cancel --unit "Atlas AS7-D"`,
	}

	cmd.AddCommand(newMothballActionCommand("start", "Begin mothballing a unit", func(c mothballArgs) mediator.Request {
		return &commands.StartMothballCommand{UnitID: c.unit, TechID: c.tech, GM: c.gm}
	}))
	cmd.AddCommand(newMothballActionCommand("activate", "Begin taking a unit out of storage", func(c mothballArgs) mediator.Request {
		return &commands.StartActivationCommand{UnitID: c.unit, TechID: c.tech, GM: c.gm}
	}))
	cmd.AddCommand(newMothballActionCommand("cancel", "Abandon a running mothball or activation", func(c mothballArgs) mediator.Request {
		return &commands.CancelMothballCommand{UnitID: c.unit}
	}))

	return cmd
}

// mothballArgs are the resolved flags of a mothball subcommand
type mothballArgs struct {
	unit uuid.UUID
	tech uuid.UUID
	gm   bool
}

func newMothballActionCommand(use, short string, build func(mothballArgs) mediator.Request) *cobra.Command {
	var unitRef, techRef string
	var gm bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
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
				request := build(mothballArgs{unit: id, tech: techID, gm: gm || a.cfg.Campaign.GMMode})
				result, err := send[commands.MothballResponse](ctx, a, request)
				if err != nil {
					return fmt.Errorf("failed to %s: %w", use, err)
				}

				fmt.Fprintf(stdout, "✓ %s → %s\n", result.From, result.To)
				if result.MinutesLeft > 0 {
					fmt.Fprintf(stdout, "  %d minutes of work left\n", result.MinutesLeft)
				}
				fmt.Fprintf(stdout, "  Status: %s\n", result.Status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	_ = cmd.MarkFlagRequired("unit")
	if use != "cancel" {
		cmd.Flags().StringVar(&techRef, "tech", "", "Id of the tech doing the work")
		cmd.Flags().BoolVar(&gm, "gm", false, "Complete at once")
	}

	return cmd
}

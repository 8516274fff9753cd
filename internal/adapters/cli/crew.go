package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
)

// NewCrewCommand creates the crew command with subcommands
func NewCrewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Seat and remove crew",
		Long:  `Seat people from the roster in a unit's crew roles.

Roles: pilot, driver, gunner, vessel_crew, navigator, tech_officer, tech.
Seating anyone recomputes the composite crew used for the unit's skills.

Examples:
  unitforge crew assign --unit "Atlas AS7-D" --person <id> --role pilot
  unitforge crew unassign --unit "Atlas AS7-D" --person <id>`,
	}

	cmd.AddCommand(newCrewAssignCommand())
	cmd.AddCommand(newCrewUnassignCommand())

	return cmd
}

func newCrewAssignCommand() *cobra.Command {
	var unitRef, personRef, role string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Seat a person in a crew role",
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := parsePersonID("person", personRef)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, unitRef)
				if err != nil {
					return err
				}
				result, err := send[commands.CrewResponse](ctx, a, &commands.AssignCrewCommand{
					UnitID:   id,
					PersonID: personID,
					Role:     strings.ToUpper(role),
				})
				if err != nil {
					return fmt.Errorf("failed to assign crew: %w", err)
				}
				printCrew(result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	cmd.Flags().StringVar(&personRef, "person", "", "Person id (required)")
	cmd.Flags().StringVar(&role, "role", "", "Crew role (required)")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newCrewUnassignCommand() *cobra.Command {
	var unitRef, personRef string

	cmd := &cobra.Command{
		Use:   "unassign",
		Short: "Take a person off a unit",
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := parsePersonID("person", personRef)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, unitRef)
				if err != nil {
					return err
				}
				result, err := send[commands.CrewResponse](ctx, a, &commands.UnassignCrewCommand{
					UnitID:   id,
					PersonID: personID,
				})
				if err != nil {
					return fmt.Errorf("failed to unassign crew: %w", err)
				}
				if !result.Changed {
					fmt.Fprintln(stdout, "Person was not part of the crew.")
					return nil
				}
				printCrew(result)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&unitRef, "unit", "", "Unit id or name (required)")
	cmd.Flags().StringVar(&personRef, "person", "", "Person id (required)")
	_ = cmd.MarkFlagRequired("unit")
	_ = cmd.MarkFlagRequired("person")

	return cmd
}

func printCrew(result *commands.CrewResponse) {
	fmt.Fprintln(stdout, "✓ Crew updated")
	fmt.Fprintf(stdout, "  Crew size:    %d\n", result.CrewSize)
	fmt.Fprintf(stdout, "  Fully crewed: %s\n", yesNo(result.FullyCrewed))
	if result.Commander != "" {
		fmt.Fprintf(stdout, "  Commander:    %s\n", result.Commander)
	}
}

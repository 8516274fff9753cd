package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
	"github.com/andrescamacho/unitforge-go/pkg/utils"
)

// NewUnitCommand creates the unit command with subcommands
func NewUnitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Import, inspect and maintain units",
		Long:  `Import units from design sheets and inspect their parts, status and value.

Units can be referenced by id or by name. Names must be unique to be used.

Examples:
  unitforge unit import sheets/atlas-as7d.toml --name "Big Daddy"
  unitforge unit list --category MECH
  unitforge unit show "Atlas AS7-D"
  unitforge unit value "Atlas AS7-D"
  unitforge unit repairs "Atlas AS7-D"
  unitforge unit reconcile "Atlas AS7-D"`,
	}

	cmd.AddCommand(newUnitImportCommand())
	cmd.AddCommand(newUnitListCommand())
	cmd.AddCommand(newUnitShowCommand())
	cmd.AddCommand(newUnitValueCommand())
	cmd.AddCommand(newUnitRepairsCommand())
	cmd.AddCommand(newUnitUpdateCommand())
	cmd.AddCommand(newUnitRemoveCommand())
	cmd.AddCommand(newUnitReconcileCommand())
	cmd.AddCommand(newUnitQualityCommand())
	cmd.AddCommand(newUnitRunsCommand())
	cmd.AddCommand(newUnitReplacePartCommand())
	cmd.AddCommand(newUnitBayAmmoCommand())

	return cmd
}

func newUnitImportCommand() *cobra.Command {
	var (
		fluffName string
		site      string
	)

	cmd := &cobra.Command{
		Use:   "import <sheet.toml>",
		Short: "Create a unit from a design sheet",
		Long:  `Create a unit from a TOML design sheet. Every part the design calls for is
created, crew slots are sized and the sheet is remembered so that
'unitforge watch' can reconcile the unit when the sheet changes.

Example:
  unitforge unit import sheets/atlas-as7d.toml --name "Big Daddy" --site "In the Field"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[commands.ImportUnitResponse](ctx, a, &commands.ImportUnitCommand{
					SheetPath: args[0],
					FluffName: fluffName,
					Site:      site,
				})
				if err != nil {
					return fmt.Errorf("failed to import unit: %w", err)
				}

				fmt.Fprintln(stdout, "✓ Unit imported")
				fmt.Fprintf(stdout, "  Unit ID: %s\n", result.UnitID)
				fmt.Fprintf(stdout, "  Name:    %s\n", result.Name)
				fmt.Fprintf(stdout, "  Parts:   %d\n", result.Parts)
				printReport(stdout, result.Report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fluffName, "name", "", "Fluff name shown alongside the design name")
	cmd.Flags().StringVar(&site, "site", "", "Repair site, by code 0-4 or name (e.g. \"Transport Bay\")")

	return cmd
}

func newUnitListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all units",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[queries.ListUnitsResponse](ctx, a, &queries.ListUnitsQuery{
					Category: strings.ToUpper(category),
				})
				if err != nil {
					return fmt.Errorf("failed to list units: %w", err)
				}

				if len(result.Units) == 0 {
					fmt.Fprintln(stdout, "No units found.")
					fmt.Fprintln(stdout, "\nImport one with: unitforge unit import <sheet.toml>")
					return nil
				}

				w := newTable(stdout, "ID", "NAME", "CATEGORY", "STATUS", "QUALITY", "CREW", "REPAIRS", "VALUE")
				for _, u := range result.Units {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%d\t%s\n",
						utils.ShortID(u.ID), u.Name, u.Category, u.Status, u.Quality,
						u.CrewCount, u.FullCrewSize, u.PartsNeedingFixing, formatMoney(u.SellValue))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list units of this category (e.g. MECH, TANK)")

	return cmd
}

func newUnitShowCommand() *cobra.Command {
	var showParts bool

	cmd := &cobra.Command{
		Use:   "show <unit>",
		Short: "Show status, crew and parts of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[queries.GetUnitStatusResponse](ctx, a, &queries.GetUnitStatusQuery{UnitRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to get unit: %w", err)
				}
				u := result.Unit

				fmt.Fprintf(stdout, "%s (%s)\n", u.Name, u.Category)
				fmt.Fprintln(stdout, strings.Repeat("=", len(u.Name)+len(u.Category)+3))
				fmt.Fprintf(stdout, "Unit ID:       %s\n", u.ID)
				fmt.Fprintf(stdout, "Status:        %s\n", u.Status)
				fmt.Fprintf(stdout, "Damage:        %s\n", u.DamageState)
				fmt.Fprintf(stdout, "Quality:       %s\n", u.Quality)
				fmt.Fprintf(stdout, "Site:          %s\n", u.Site)
				fmt.Fprintf(stdout, "Available:     %s\n", yesNo(u.Available))
				if u.Deployment != "" {
					fmt.Fprintf(stdout, "Deployment:    %s\n", u.Deployment)
				}
				if u.DaysToArrival > 0 {
					fmt.Fprintf(stdout, "Arrives in:    %d days\n", u.DaysToArrival)
				}
				if u.MothballMinutesLeft > 0 {
					fmt.Fprintf(stdout, "Mothball work: %d minutes left\n", u.MothballMinutesLeft)
				}
				if u.Refitting {
					fmt.Fprintf(stdout, "Refit:         %d minutes left\n", u.RefitMinutesLeft)
				}
				fmt.Fprintf(stdout, "Maintenance:   %d days since, %.0f%% covered\n", u.DaysSinceMaintenance, u.MaintenanceCoverage*100)
				if u.LastMaintenanceReport != "" {
					fmt.Fprintf(stdout, "Last report:   %s\n", u.LastMaintenanceReport)
				}
				if len(u.Quirks) > 0 {
					fmt.Fprintf(stdout, "Quirks:        %s\n", strings.Join(u.Quirks, ", "))
				}

				fmt.Fprintf(stdout, "\nCrew (%d/%d)", u.CrewCount, u.FullCrewSize)
				if u.Commander != "" {
					fmt.Fprintf(stdout, ", commander %s", u.Commander)
				}
				fmt.Fprintln(stdout)
				if len(u.Crew) > 0 {
					w := newTable(stdout, "ROLE", "PERSON", "HITS")
					for _, c := range u.Crew {
						title := c.Title
						if title == "" {
							title = c.PersonID + " (not on roster)"
						}
						fmt.Fprintf(w, "%s\t%s\t%d\n", c.Role, title, c.Hits)
					}
					if err := w.Flush(); err != nil {
						return err
					}
				}

				if !showParts {
					fmt.Fprintf(stdout, "\n%d parts, %d need fixing (use --parts to list)\n", len(u.Parts), u.PartsNeedingFixing)
					return nil
				}
				fmt.Fprintln(stdout, "\nParts")
				w := newTable(stdout, "ID", "NAME", "KEY", "CONDITION", "QUALITY", "QTY")
				for _, p := range u.Parts {
					condition := p.Condition
					if p.Salvaging {
						condition += " (salvaging)"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", utils.ShortID(p.ID), p.Name, p.Key, condition, p.Quality, p.Quantity)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&showParts, "parts", false, "List every part")

	return cmd
}

func newUnitValueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "value <unit>",
		Short: "Show what a unit is worth and costs to run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				v, err := send[queries.GetUnitValuationResponse](ctx, a, &queries.GetUnitValuationQuery{UnitRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to value unit: %w", err)
				}

				fmt.Fprintf(stdout, "%s\n", v.UnitName)
				w := newTable(stdout, "ITEM", "C-BILLS")
				rows := []struct {
					label string
					value float64
				}{
					{"Sell value", v.SellValue},
					{"Buy cost", v.BuyCost},
					{"Maintenance (cycle)", v.MaintenanceCost},
					{"Maintenance (weekly)", v.WeeklyMaintenanceCost},
					{"Spare parts", v.SparePartsCost},
					{"Ammunition", v.AmmoCost},
					{"Fuel", v.FuelCost},
					{"Missing parts", v.ValueOfAllMissingParts},
				}
				for _, row := range rows {
					fmt.Fprintf(w, "%s\t%s\n", row.label, formatMoney(row.value))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Availability: %s\n", v.Availability)
				return nil
			})
		},
	}
}

func newUnitRepairsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repairs <unit>",
		Short: "List parts needing repair or replacement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				r, err := send[queries.ListRepairNeedsResponse](ctx, a, &queries.ListRepairNeedsQuery{UnitRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to list repairs: %w", err)
				}

				fmt.Fprintf(stdout, "%s: %d parts need work, %d salvageable\n", r.UnitName, len(r.NeedsFixing), r.Salvageable)
				if len(r.NeedsFixing) > 0 {
					w := newTable(stdout, "ID", "PART", "CONDITION", "COST", "IN STOCK")
					for _, p := range r.NeedsFixing {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.PartID, p.Name, p.Condition, formatMoney(p.ValueNeeded), yesNo(p.InStock))
					}
					if err := w.Flush(); err != nil {
						return err
					}
				}
				if len(r.PartsNeeded) > 0 {
					fmt.Fprintln(stdout, "\nTo acquire:")
					for _, p := range r.PartsNeeded {
						fmt.Fprintf(stdout, "  %s (%s)\n", p.Name, formatMoney(p.ValueNeeded))
					}
				}
				fmt.Fprintf(stdout, "\nMissing parts value: %s\n", formatMoney(r.MissingValue))
				return nil
			})
		},
	}
}

func newUnitUpdateCommand() *cobra.Command {
	var (
		fluffName     string
		site          string
		scenarioID    int
		forceID       int
		daysToArrival int
		salvage       bool
	)

	cmd := &cobra.Command{
		Use:   "update <unit>",
		Short: "Change where a unit is and what it is doing",
		Long:  `Change a unit's fluff name, repair site, force, scenario, transit or salvage flag.
Only the flags given are changed. Use -1 to clear a force or scenario.

Example:
  unitforge unit update "Atlas AS7-D" --site "Maintenance Facility" --force 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				update := &commands.UpdateUnitCommand{UnitID: id}
				flags := cmd.Flags()
				if flags.Changed("name") {
					update.FluffName = &fluffName
				}
				if flags.Changed("site") {
					update.Site = &site
				}
				if flags.Changed("scenario") {
					update.ScenarioID = &scenarioID
				}
				if flags.Changed("force") {
					update.ForceID = &forceID
				}
				if flags.Changed("arrival") {
					update.DaysToArrival = &daysToArrival
				}
				if flags.Changed("salvage") {
					update.Salvage = &salvage
				}

				result, err := send[commands.UpdateUnitResponse](ctx, a, update)
				if err != nil {
					return fmt.Errorf("failed to update unit: %w", err)
				}
				fmt.Fprintf(stdout, "✓ Unit updated, status: %s\n", result.Status)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fluffName, "name", "", "Fluff name")
	cmd.Flags().StringVar(&site, "site", "", "Repair site")
	cmd.Flags().IntVar(&scenarioID, "scenario", -1, "Scenario the unit is deployed to")
	cmd.Flags().IntVar(&forceID, "force", -1, "Force the unit belongs to")
	cmd.Flags().IntVar(&daysToArrival, "arrival", 0, "Days until the unit arrives")
	cmd.Flags().BoolVar(&salvage, "salvage", false, "Mark the unit for salvage")

	return cmd
}

func newUnitRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <unit>",
		Short: "Remove a unit and release its crew",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				result, err := send[commands.RemoveUnitResponse](ctx, a, &commands.RemoveUnitCommand{UnitID: id})
				if err != nil {
					return fmt.Errorf("failed to remove unit: %w", err)
				}
				fmt.Fprintf(stdout, "✓ Removed %s, %d crew released\n", result.Name, len(result.Released))
				return nil
			})
		},
	}
}

func newUnitReconcileCommand() *cobra.Command {
	var createMissing bool

	cmd := &cobra.Command{
		Use:   "reconcile <unit>",
		Short: "Bring the parts registry in line with the design",
		Long:  `Reconcile the unit's parts against its design. Parts the design no longer has
are removed, changed parts are refreshed and, unless --create-missing=false,
absent parts are created as missing parts.

Example:
  unitforge unit reconcile "Atlas AS7-D" -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				create := a.cfg.Campaign.ShouldCreateMissingParts()
				if cmd.Flags().Changed("create-missing") {
					create = createMissing
				}

				result, err := send[commands.ReconcileUnitResponse](ctx, a, &commands.ReconcileUnitCommand{
					UnitID:             id,
					CreateMissingParts: create,
				})
				if err != nil {
					return fmt.Errorf("failed to reconcile unit: %w", err)
				}
				fmt.Fprintln(stdout, "✓ Unit reconciled")
				printReport(stdout, result.Report)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&createMissing, "create-missing", true, "Create missing parts for what the design lacks")

	return cmd
}

func newUnitQualityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quality <unit> <A-F>",
		Short: "Set the quality of every part of a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				result, err := send[commands.SetUnitQualityResponse](ctx, a, &commands.SetUnitQualityCommand{
					UnitID:  id,
					Quality: args[1],
				})
				if err != nil {
					return fmt.Errorf("failed to set quality: %w", err)
				}
				fmt.Fprintf(stdout, "✓ Quality set to %s\n", result.Quality)
				return nil
			})
		},
	}
}

func newUnitRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs <unit>",
		Short: "Show recent reconciliation runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[queries.ListReconcileRunsResponse](ctx, a, &queries.ListReconcileRunsQuery{
					UnitRef: args[0],
					Limit:   limit,
				})
				if err != nil {
					return fmt.Errorf("failed to list runs: %w", err)
				}
				if len(result.Runs) == 0 {
					fmt.Fprintln(stdout, "No reconciliation runs recorded.")
					return nil
				}

				w := newTable(stdout, "RAN AT", "TRIGGER", "CREATED", "REMOVED", "REFRESHED", "PROMOTED", "DUPLICATES")
				for _, run := range result.Runs {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
						run.RanAt.Format("2006-01-02 15:04:05"), run.Trigger,
						run.Created, run.Removed, run.Refreshed, run.Promoted, run.Inconsistent)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", queries.DefaultRunLimit, "Maximum runs to show")

	return cmd
}

func newUnitReplacePartCommand() *cobra.Command {
	var partID string

	cmd := &cobra.Command{
		Use:   "replace-part <unit>",
		Short: "Fit a missing part from spare stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := uuid.Parse(partID)
			if err != nil {
				return fmt.Errorf("--part must be a part id: %w", err)
			}
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				result, err := send[commands.ReplaceMissingPartResponse](ctx, a, &commands.ReplaceMissingPartCommand{
					UnitID: id,
					PartID: pid,
				})
				if err != nil {
					return fmt.Errorf("failed to replace part: %w", err)
				}
				fmt.Fprintf(stdout, "✓ %s fitted, %d left in stock\n", result.PartName, result.Remaining)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&partID, "part", "", "Id of the missing part (required)")
	_ = cmd.MarkFlagRequired("part")

	return cmd
}

func newUnitBayAmmoCommand() *cobra.Command {
	var (
		bay         int
		ammoType    string
		name        string
		shotsPerTon int
		cost        float64
	)

	cmd := &cobra.Command{
		Use:   "bay-ammo <unit>",
		Short: "Add an ammunition bin to a weapon bay",
		Long:  `Find or create the bin holding the given ammunition type in a weapon bay of a
large craft.

Example:
  unitforge unit bay-ammo "Union" --bay 2 --type LRM20 --shots-per-ton 6 --cost 30000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				id, err := a.unitID(ctx, args[0])
				if err != nil {
					return err
				}
				result, err := send[commands.AddBayAmmoResponse](ctx, a, &commands.AddBayAmmoCommand{
					UnitID:      id,
					BayIndex:    bay,
					AmmoType:    ammoType,
					Name:        name,
					ShotsPerTon: shotsPerTon,
					Cost:        cost,
				})
				if err != nil {
					return fmt.Errorf("failed to add bay ammo: %w", err)
				}
				fmt.Fprintf(stdout, "✓ %s (%s) needs %d shots\n", result.Name, result.PartID, result.ShotsNeeded)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&bay, "bay", -1, "Weapon bay index (required)")
	cmd.Flags().StringVar(&ammoType, "type", "", "Ammunition type (required)")
	cmd.Flags().StringVar(&name, "name", "", "Bin name")
	cmd.Flags().IntVar(&shotsPerTon, "shots-per-ton", 0, "Shots per ton of ammunition")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost per ton")
	_ = cmd.MarkFlagRequired("bay")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/application/personnel/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/personnel/queries"
)

// NewPersonCommand creates the person command with subcommands
func NewPersonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage the personnel roster",
		Long:  `Add people to the roster and change their skills and condition.

Skills are given as type=value, optionally followed by :level and :bonus.

Examples:
  unitforge person add --name "Natasha Kerensky" --callsign "Black Widow" --rank 5 --skill piloting/mech=2 --skill gunnery/mech=1
  unitforge person update <id> --hits 2
  unitforge person update <id> --astechs 6
  unitforge person list --active`,
	}

	cmd.AddCommand(newPersonAddCommand())
	cmd.AddCommand(newPersonUpdateCommand())
	cmd.AddCommand(newPersonListCommand())

	return cmd
}

// personFlags are shared by add and update
type personFlags struct {
	name      string
	callsign  string
	rank      int
	hits      int
	active    bool
	astechs   int
	skills    []string
	abilities []string
}

func (f *personFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.callsign, "callsign", "", "Callsign")
	cmd.Flags().IntVar(&f.rank, "rank", 0, "Rank number")
	cmd.Flags().IntVar(&f.hits, "hits", 0, "Hits taken (0-6)")
	cmd.Flags().BoolVar(&f.active, "active", true, "Whether the person is on active duty")
	cmd.Flags().IntVar(&f.astechs, "astechs", 0, "Size of the astech team a tech leads (0-6)")
	cmd.Flags().StringArrayVar(&f.skills, "skill", nil, "Skill as type=value[:level[:bonus]], repeatable")
	cmd.Flags().StringArrayVar(&f.abilities, "ability", nil, "Special ability as name=value, repeatable; empty value clears")
}

func (f *personFlags) command(cmd *cobra.Command) (*commands.SavePersonCommand, error) {
	save := &commands.SavePersonCommand{Name: f.name}
	flags := cmd.Flags()
	if flags.Changed("callsign") {
		save.Callsign = &f.callsign
	}
	if flags.Changed("rank") {
		save.Rank = &f.rank
	}
	if flags.Changed("hits") {
		save.Hits = &f.hits
	}
	if flags.Changed("active") {
		save.Active = &f.active
	}
	if flags.Changed("astechs") {
		save.Astechs = &f.astechs
	}
	for _, raw := range f.skills {
		skill, err := parseSkill(raw)
		if err != nil {
			return nil, err
		}
		save.Skills = append(save.Skills, skill)
	}
	if len(f.abilities) > 0 {
		save.Abilities = make(map[string]string, len(f.abilities))
		for _, raw := range f.abilities {
			name, value, _ := strings.Cut(raw, "=")
			save.Abilities[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
	}
	return save, nil
}

// parseSkill reads type=value[:level[:bonus]]
func parseSkill(raw string) (commands.SkillInput, error) {
	skillType, rest, ok := strings.Cut(raw, "=")
	if !ok {
		return commands.SkillInput{}, fmt.Errorf("skill %q must look like type=value", raw)
	}
	parts := strings.Split(rest, ":")
	if len(parts) > 3 {
		return commands.SkillInput{}, fmt.Errorf("skill %q has too many fields", raw)
	}
	numbers := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return commands.SkillInput{}, fmt.Errorf("skill %q: %w", raw, err)
		}
		numbers[i] = n
	}
	return commands.SkillInput{
		Type:  strings.TrimSpace(skillType),
		Value: numbers[0],
		Level: numbers[1],
		Bonus: numbers[2],
	}, nil
}

func newPersonAddCommand() *cobra.Command {
	var f personFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.name == "" {
				return fmt.Errorf("--name flag is required")
			}
			save, err := f.command(cmd)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[commands.SavePersonResponse](ctx, a, save)
				if err != nil {
					return fmt.Errorf("failed to add person: %w", err)
				}
				fmt.Fprintln(stdout, "✓ Person added")
				fmt.Fprintf(stdout, "  Person ID: %s\n", result.PersonID)
				fmt.Fprintf(stdout, "  Title:     %s\n", result.Title)
				return nil
			})
		},
	}
	f.bind(cmd)

	return cmd
}

func newPersonUpdateCommand() *cobra.Command {
	var f personFlags

	cmd := &cobra.Command{
		Use:   "update <person-id>",
		Short: "Change a person on the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := parsePersonID("person", args[0])
			if err != nil {
				return err
			}
			save, err := f.command(cmd)
			if err != nil {
				return err
			}
			save.PersonID = personID
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[commands.SavePersonResponse](ctx, a, save)
				if err != nil {
					return fmt.Errorf("failed to update person: %w", err)
				}
				fmt.Fprintf(stdout, "✓ %s updated\n", result.Title)
				return nil
			})
		},
	}
	f.bind(cmd)

	return cmd
}

func newPersonListCommand() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				result, err := send[queries.ListPeopleResponse](ctx, a, &queries.ListPeopleQuery{ActiveOnly: activeOnly})
				if err != nil {
					return fmt.Errorf("failed to list people: %w", err)
				}
				if len(result.People) == 0 {
					fmt.Fprintln(stdout, "Roster is empty.")
					return nil
				}

				w := newTable(stdout, "ID", "TITLE", "RANK", "HITS", "ACTIVE", "SKILLS")
				for _, p := range result.People {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n", p.ID, p.Title, p.Rank, p.Hits, yesNo(p.Active), formatSkills(p.Skills))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list people on active duty")

	return cmd
}

func formatSkills(skills map[string]int) string {
	names := lo.Keys(skills)
	slices.Sort(names)
	return strings.Join(lo.Map(names, func(name string, _ int) string {
		return fmt.Sprintf("%s %d", name, skills[name])
	}), ", ")
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/unitforge-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long:  `Inspect unitforge configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (UF_* prefix, e.g. UF_DATABASE_PATH; DATABASE_URL is also honoured)
2. Config file (config.yaml in ., ./configs or /etc/unitforge, or --config)
3. Default values

Examples:
  unitforge config show
  unitforge config validate --config ./configs/campaign.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(stdout, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(stdout, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			fmt.Fprintln(stdout, "unitforge Configuration")
			fmt.Fprintln(stdout, "=======================")

			fmt.Fprintln(stdout, "\nDatabase:")
			fmt.Fprintf(stdout, "  Type: %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Fprintf(stdout, "  Path: %s\n", cfg.Database.Path)
			} else if cfg.Database.URL != "" {
				fmt.Fprintln(stdout, "  URL:  (set)")
			} else {
				fmt.Fprintf(stdout, "  Host: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
			}

			fmt.Fprintln(stdout, "\nLogging:")
			fmt.Fprintf(stdout, "  Level:  %s\n", cfg.Logging.Level)
			fmt.Fprintf(stdout, "  Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(stdout, "  Output: %s\n", cfg.Logging.Output)

			fmt.Fprintln(stdout, "\nMetrics:")
			fmt.Fprintf(stdout, "  Enabled: %s\n", yesNo(cfg.Metrics.Enabled))
			fmt.Fprintf(stdout, "  Listen:  %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			c := cfg.Campaign
			fmt.Fprintln(stdout, "\nCampaign:")
			fmt.Fprintf(stdout, "  GM mode:               %s\n", yesNo(c.GMMode))
			fmt.Fprintf(stdout, "  Create missing parts:  %s\n", yesNo(c.ShouldCreateMissingParts()))
			fmt.Fprintf(stdout, "  Abilities / edge:      %s / %s\n", yesNo(c.UseAbilities), yesNo(c.UseEdge))
			fmt.Fprintf(stdout, "  Advanced medical:      %s\n", yesNo(c.UseAdvancedMedical))
			fmt.Fprintf(stdout, "  Quirks:                %s\n", yesNo(c.UseQuirks))
			fmt.Fprintf(stdout, "  Maintenance cycle:     %d days (checks %s)\n", c.MaintenanceCycleDays, yesNo(c.CheckMaintenance))
			fmt.Fprintf(stdout, "  Percentage upkeep:     %s\n", yesNo(c.UsePercentageMaintenance))
			fmt.Fprintf(stdout, "  Clan price modifier:   %.2f\n", c.ClanPriceModifier)
			fmt.Fprintf(stdout, "  Used part value A-F:   %s\n", formatFloats(c.UsedPartValue))
			fmt.Fprintf(stdout, "  Damaged part value:    %.2f\n", c.DamagedPartValue)
			fmt.Fprintf(stdout, "  Reverse quality names: %s\n", yesNo(c.ReverseQualityNames))

			fmt.Fprintln(stdout, "\nWatch:")
			fmt.Fprintf(stdout, "  Directory: %s\n", cfg.Watch.Dir)
			fmt.Fprintf(stdout, "  Debounce:  %s\n", cfg.Watch.Debounce)
			fmt.Fprintf(stdout, "  Lock file: %s\n", cfg.Watch.LockFile)

			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadConfig(configPath); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "✓ Configuration is valid")
			return nil
		},
	}
}

func formatFloats(values []float64) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(out, " ")
}

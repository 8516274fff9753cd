package config

import (
	"github.com/spf13/viper"

	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// CampaignConfig holds the campaign options the unit engine consults
type CampaignConfig struct {
	// Mothball and activation complete at once
	GMMode bool `mapstructure:"gm_mode"`

	UseAbilities             bool `mapstructure:"use_abilities"`
	UseEdge                  bool `mapstructure:"use_edge"`
	UseAdvancedMedical       bool `mapstructure:"use_advanced_medical"`
	UseQuirks                bool `mapstructure:"use_quirks"`
	UsePercentageMaintenance bool `mapstructure:"use_percentage_maintenance"`
	UseSellValueForMaint     bool `mapstructure:"use_sell_value_for_maintenance"`

	MaintenanceCycleDays int     `mapstructure:"maintenance_cycle_days" validate:"min=1,max=365"`
	ClanPriceModifier    float64 `mapstructure:"clan_price_modifier" validate:"gt=0"`

	// Multipliers for used parts, indexed A through F
	UsedPartValue    []float64 `mapstructure:"used_part_value" validate:"len=6,ascending,dive,gte=0,lte=1"`
	DamagedPartValue float64   `mapstructure:"damaged_part_value" validate:"gte=0,lte=1"`

	ReverseQualityNames bool `mapstructure:"reverse_quality_names"`
	CheckMaintenance    bool `mapstructure:"check_maintenance"`

	// Pointer so an explicit false survives SetDefaults
	CreateMissingParts *bool `mapstructure:"create_missing_parts"`
}

// ToOptions converts the campaign settings into engine options
func (c CampaignConfig) ToOptions() unit.Options {
	values := part.DefaultValueOptions()
	copy(values.UsedPartValue[:], c.UsedPartValue)
	values.DamagedPartValue = c.DamagedPartValue

	return unit.Options{
		UseAbilities:             c.UseAbilities,
		UseEdge:                  c.UseEdge,
		UseAdvancedMedical:       c.UseAdvancedMedical,
		UseQuirks:                c.UseQuirks,
		UsePercentageMaintenance: c.UsePercentageMaintenance,
		UseSellValueForMaint:     c.UseSellValueForMaint,
		MaintenanceCycleDays:     c.MaintenanceCycleDays,
		ClanPriceModifier:        c.ClanPriceModifier,
		ReverseQualityNames:      c.ReverseQualityNames,
		CheckMaintenance:         c.CheckMaintenance,
		PartValues:               values,
	}
}

// ShouldCreateMissingParts reports the create_missing_parts setting, true when unset
func (c CampaignConfig) ShouldCreateMissingParts() bool {
	return c.CreateMissingParts == nil || *c.CreateMissingParts
}

// DefaultCampaign matches a stock campaign
func DefaultCampaign() CampaignConfig {
	opts := unit.DefaultOptions()
	create := true
	return CampaignConfig{
		UseAbilities:         opts.UseAbilities,
		UseEdge:              opts.UseEdge,
		MaintenanceCycleDays: opts.MaintenanceCycleDays,
		ClanPriceModifier:    opts.ClanPriceModifier,
		UsedPartValue:        opts.PartValues.UsedPartValue[:],
		DamagedPartValue:     opts.PartValues.DamagedPartValue,
		CheckMaintenance:     opts.CheckMaintenance,
		CreateMissingParts:   &create,
	}
}

// campaignDefaults seeds viper so that booleans defaulting to true can still
// be switched off from a file or the environment
func campaignDefaults(v *viper.Viper) {
	d := DefaultCampaign()
	v.SetDefault("campaign.use_abilities", d.UseAbilities)
	v.SetDefault("campaign.use_edge", d.UseEdge)
	v.SetDefault("campaign.check_maintenance", d.CheckMaintenance)
	v.SetDefault("campaign.create_missing_parts", true)
	v.SetDefault("campaign.maintenance_cycle_days", d.MaintenanceCycleDays)
	v.SetDefault("campaign.clan_price_modifier", d.ClanPriceModifier)
	v.SetDefault("campaign.used_part_value", d.UsedPartValue)
	v.SetDefault("campaign.damaged_part_value", d.DamagedPartValue)
}

package unit

import "github.com/andrescamacho/unitforge-go/internal/domain/part"

// Options are the campaign settings the unit engine consults
type Options struct {
	UseAbilities             bool
	UseEdge                  bool
	UseAdvancedMedical       bool
	UseQuirks                bool
	UsePercentageMaintenance bool
	UseSellValueForMaint     bool
	MaintenanceCycleDays     int
	ClanPriceModifier        float64
	ReverseQualityNames      bool
	CheckMaintenance         bool
	PartValues               part.ValueOptions
}

// DefaultOptions matches a stock campaign
func DefaultOptions() Options {
	return Options{
		UseAbilities:         true,
		UseEdge:              true,
		MaintenanceCycleDays: 7,
		ClanPriceModifier:    1.0,
		CheckMaintenance:     true,
		PartValues:           part.DefaultValueOptions(),
	}
}

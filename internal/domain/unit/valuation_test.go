package unit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestSellValue_SumsPartValues(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)

	// Act
	value := u.SellValue()

	// Assert
	// structure 12,800 + armor 163 points at 625 + components 770,000 + equipment 352,000,
	// all at quality D (half price)
	assert.InDelta(t, 618337.5, float64(value), 0.01)
}

func TestSellValue_MissingPartsAreWorthNothing(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	before := u.SellValue()
	sheet.Comps[1].Destroyed = true
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)

	// Act
	after := u.SellValue()

	// Assert
	// gyro list price 300,000 at half value
	assert.InDelta(t, 150000, float64(before-after), 0.01)
}

func TestSellValue_SmallCraftAddBridgeAndComputer(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)
	opts := u.Options().PartValues
	parts := lo.SumBy(u.Parts(), func(p *part.Part) float64 { return float64(p.ActualValue(opts)) })

	// Act
	value := u.SellValue()

	// Assert
	assert.InDelta(t, parts+200000+19000+200000, float64(value), 0.01)
}

func TestBuyCost_AppliesClanModifier(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestOmniMechSheet(), nil)
	opts := u.Options()
	opts.ClanPriceModifier = 2

	// Act
	u.SetOptions(opts)

	// Assert
	assert.InDelta(t, 7000000, float64(u.BuyCost()), 0.01)
}

func TestWeeklyMaintenanceCost(t *testing.T) {
	t.Run("flat rates", func(t *testing.T) {
		assert.InDelta(t, 75, float64(helpers.NewTestUnit(helpers.CreateTestMechSheet(), nil).WeeklyMaintenanceCost()), 0.01)
		assert.InDelta(t, 100, float64(helpers.NewTestUnit(helpers.CreateTestOmniMechSheet(), nil).WeeklyMaintenanceCost()), 0.01)
		assert.InDelta(t, 25, float64(helpers.NewTestUnit(helpers.CreateTestTankSheet(), nil).WeeklyMaintenanceCost()), 0.01)
		assert.InDelta(t, 500, float64(helpers.NewTestUnit(helpers.CreateTestDropshipSheet(), nil).WeeklyMaintenanceCost()), 0.01)
		assert.InDelta(t, 10, float64(helpers.NewTestUnit(helpers.CreateTestInfantrySheet(), nil).WeeklyMaintenanceCost()), 0.01)
	})

	t.Run("percentage of price", func(t *testing.T) {
		u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
		opts := u.Options()
		opts.UsePercentageMaintenance = true
		u.SetOptions(opts)

		assert.InDelta(t, 3500000*0.02/52, float64(u.WeeklyMaintenanceCost()), 0.01)

		require.NoError(t, u.StartMothballing(uuid.Nil, true))
		assert.InDelta(t, 3500000*0.02*0.1/52, float64(u.WeeklyMaintenanceCost()), 0.01)
	})
}

func TestMaintenanceCost_ScalesToCycleLength(t *testing.T) {
	// Arrange
	u := helpers.NewTestUnit(helpers.CreateTestMechSheet(), nil)
	opts := u.Options()
	opts.MaintenanceCycleDays = 14

	// Act
	u.SetOptions(opts)

	// Assert
	assert.InDelta(t, 150, float64(u.MaintenanceCost()), 0.01)
}

func TestSparePartsCost(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	sheet.Spec.Quirks = []string{"easy_maintain"}
	u := helpers.NewReconciledTestUnit(sheet, nil)
	require.InDelta(t, 500, float64(u.SparePartsCost()), 0.01, "quirks are off by default")

	// Act
	opts := u.Options()
	opts.UseQuirks = true
	u.SetOptions(opts)

	// Assert
	assert.InDelta(t, 400, float64(u.SparePartsCost()), 0.01)

	// Act
	require.NoError(t, u.StartMothballing(uuid.Nil, true))

	// Assert
	assert.Zero(t, u.SparePartsCost())
}

func TestAmmoCost_IsQuarterOfLoadedRounds(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	sheet.Equipment[helpers.MechAutocannonAmmo].ShotsLeft = 10

	// Act
	u := helpers.NewReconciledTestUnit(sheet, nil)

	// Assert
	assert.InDelta(t, 1250, float64(u.AmmoCost()), 0.01)
}

func TestFuelCost(t *testing.T) {
	tests := []struct {
		name     string
		unit     *unit.Unit
		expected float64
	}{
		{"fusion mech burns nothing", helpers.NewTestUnit(helpers.CreateTestMechSheet(), nil), 0},
		{"combustion tank", helpers.NewTestUnit(helpers.CreateTestTankSheet(), nil), 12 * 0.1 * 1000 * 4},
		{"civilian dropship", helpers.NewTestUnit(helpers.CreateTestDropshipSheet(), nil), 2.82 * 15 * 15000},
		{"foot infantry", helpers.NewTestUnit(helpers.CreateTestInfantrySheet(), nil), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, float64(tt.unit.FuelCost()), 0.01)
		})
	}
}

func TestValueOfAllMissingParts(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Comps[3].Destroyed = true
	head, _ := sheet.Location(helpers.MechHead)
	head.Armor = 0
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)

	// Act
	value := u.ValueOfAllMissingParts()

	// Assert
	// new sensors plus 9 points of head armor
	assert.InDelta(t, 100000+9*625, float64(value), 0.01)
}

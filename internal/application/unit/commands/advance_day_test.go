package commands_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestAdvanceDay_FinishesMothballingOverTwoDays(t *testing.T) {
	// Arrange
	f, tank, tech := newCrewedTankFixture(t)
	require.NoError(t, tank.StartMothballing(tech.ID(), false))
	handler := commands.NewAdvanceDayHandler(f.units, f.recorder, nil, f.clock)

	// Act
	first, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})
	require.NoError(t, err)
	second, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})
	require.NoError(t, err)

	// Assert
	assert.Empty(t, first.(*commands.AdvanceDayResponse).Units)
	assert.Equal(t, 480, tank.MothballTime())
	results := second.(*commands.AdvanceDayResponse).Units
	require.Len(t, results, 1)
	assert.True(t, results[0].MothballCompleted)
	assert.True(t, tank.IsMothballed())
}

func TestAdvanceDay_MaintenanceCheckAfterFullCycle(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	mech := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	handler := commands.NewAdvanceDayHandler(f.units, f.recorder, nil, f.clock)

	// Act
	var last *commands.AdvanceDayResponse
	for day := 0; day < 7; day++ {
		response, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})
		require.NoError(t, err)
		last = response.(*commands.AdvanceDayResponse)
	}

	// Assert
	require.Len(t, last.Units, 1)
	assert.Contains(t, last.Units[0].MaintenanceReport, "maintenance check: 0% coverage")
	assert.Equal(t, last.Units[0].MaintenanceReport, mech.LastMaintenanceReport())
	assert.Zero(t, mech.DaysSinceMaintenance(), "a new cycle starts after the check")
}

func TestAdvanceDay_BooksEachUnitsOwnAstechTeam(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	senior := helpers.CreateTestPerson(3, map[personnel.SkillType]int{personnel.SkillTechMech: 5})
	senior.SetAstechs(6)
	junior := helpers.CreateTestPerson(1, map[personnel.SkillType]int{personnel.SkillTechMech: 7})
	junior.SetAstechs(2)
	crew := helpers.CreateTestCrew(2, personnel.SkillTechVessel, 6, 6, 6)
	crew[2].SetHits(1)
	roster := helpers.NewTestRoster(append([]*personnel.Person{senior, junior}, crew...)...)

	first := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), roster))
	second := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), roster))
	dropship := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), roster))
	untended := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), roster))
	require.NoError(t, first.Assign(senior.ID(), unit.RoleTech))
	require.NoError(t, second.Assign(junior.ID(), unit.RoleTech))
	for _, p := range crew {
		require.NoError(t, dropship.Assign(p.ID(), unit.RoleVesselCrew))
	}
	require.NotNil(t, dropship.Engineer())
	handler := commands.NewAdvanceDayHandler(f.units, f.recorder, nil, f.clock)

	// Act
	_, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, first.AstechDaysMaintained())
	assert.Equal(t, 2, second.AstechDaysMaintained())
	assert.Equal(t, 2, dropship.AstechDaysMaintained(), "two healthy crew behind the engineer")
	assert.Zero(t, untended.AstechDaysMaintained())
	assert.Zero(t, untended.DaysActivelyMaintained())
}

func TestAdvanceDay_CompletesRefitWhenTimeRunsOut(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	mech := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	design := helpers.CreateTestMechSheet()
	design.Equipment = design.Equipment[:3]
	require.NoError(t, mech.BeginRefit(design, 300, uuid.New(), 50000))
	handler := commands.NewAdvanceDayHandler(f.units, f.recorder, nil, f.clock)

	// Act
	response, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})

	// Assert
	require.NoError(t, err)
	results := response.(*commands.AdvanceDayResponse).Units
	require.Len(t, results, 1)
	assert.True(t, results[0].RefitCompleted)
	assert.False(t, mech.IsRefitting())
	assert.Len(t, mech.Parts(), helpers.MechPartCount-1)
	runs := f.runs.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, services.TriggerRefit, runs[0].Trigger)
}

func TestAdvanceDay_SaveFailureOnEveryUnitFails(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	f.units.SetSaveError(errors.New("disk full"))
	handler := commands.NewAdvanceDayHandler(f.units, f.recorder, nil, f.clock)

	// Act
	_, err := handler.Handle(f.ctx, &commands.AdvanceDayCommand{})

	// Assert
	require.ErrorContains(t, err, "disk full")
	assert.Len(t, f.log.Entries("ERROR"), 1)
}

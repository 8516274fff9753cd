package commands_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestAssignCrew_SeatsDriverAndGunners(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	driver := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	gunner := helpers.CreateTestPerson(4, map[personnel.SkillType]int{personnel.SkillGunneryVehicle: 3})
	tank := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), helpers.NewTestRoster(driver, gunner)))
	handler := commands.NewAssignCrewHandler(f.units)

	// Act
	_, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: tank.ID(), PersonID: driver.ID(), Role: "DRIVER"})
	require.NoError(t, err)
	response, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: tank.ID(), PersonID: gunner.ID(), Role: "GUNNER"})

	// Assert
	require.NoError(t, err)
	resp := response.(*commands.CrewResponse)
	assert.True(t, resp.Changed)
	assert.Equal(t, 2, resp.CrewSize)
	assert.False(t, resp.FullyCrewed, "a tank needs four")
	assert.Equal(t, gunner.FullTitle(), resp.Commander)
	assert.Equal(t, 2, f.units.SaveCount())
}

func TestAssignCrew_UnknownRole(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	tank := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil))
	handler := commands.NewAssignCrewHandler(f.units)

	// Act
	_, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: tank.ID(), PersonID: uuid.New(), Role: "COOK"})

	// Assert
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "role", validation.Field)
}

func TestAssignCrew_PersonOffRosterIsRefused(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	tank := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil))
	handler := commands.NewAssignCrewHandler(f.units)

	// Act
	_, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: tank.ID(), PersonID: uuid.New(), Role: "DRIVER"})

	// Assert
	var assignment *shared.CrewAssignmentError
	require.ErrorAs(t, err, &assignment)
	assert.Zero(t, f.units.SaveCount())
}

func TestAssignCrew_PersonCrewsOneUnitAtATime(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	driver := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	roster := helpers.NewTestRoster(driver)
	first := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), roster))
	second := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), roster))
	handler := commands.NewAssignCrewHandler(f.units)
	_, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: first.ID(), PersonID: driver.ID(), Role: "DRIVER"})
	require.NoError(t, err)

	// Act
	_, err = handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: second.ID(), PersonID: driver.ID(), Role: "DRIVER"})

	// Assert
	var assignment *shared.CrewAssignmentError
	require.ErrorAs(t, err, &assignment)
	assert.Contains(t, err.Error(), "already crews")
	assert.Empty(t, second.DriverIDs())
	assert.Equal(t, []uuid.UUID{driver.ID()}, first.DriverIDs())
	assert.Equal(t, 1, f.units.SaveCount())
}

func TestUnassignCrew_ReportsWhetherAnythingChanged(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	driver := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	tank := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), helpers.NewTestRoster(driver)))
	handler := commands.NewAssignCrewHandler(f.units)
	_, err := handler.Handle(f.ctx, &commands.AssignCrewCommand{UnitID: tank.ID(), PersonID: driver.ID(), Role: "DRIVER"})
	require.NoError(t, err)

	// Act
	first, err := handler.Handle(f.ctx, &commands.UnassignCrewCommand{UnitID: tank.ID(), PersonID: driver.ID()})
	require.NoError(t, err)
	second, err := handler.Handle(f.ctx, &commands.UnassignCrewCommand{UnitID: tank.ID(), PersonID: driver.ID()})
	require.NoError(t, err)

	// Assert
	assert.True(t, first.(*commands.CrewResponse).Changed)
	assert.Zero(t, first.(*commands.CrewResponse).CrewSize)
	assert.Empty(t, first.(*commands.CrewResponse).Commander)
	assert.False(t, second.(*commands.CrewResponse).Changed)
	assert.Equal(t, 2, f.units.SaveCount(), "a no-op removal is not saved")
}

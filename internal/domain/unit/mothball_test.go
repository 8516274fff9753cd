package unit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type crewedTank struct {
	unit     *unit.Unit
	driver   *personnel.Person
	gunner   *personnel.Person
	tech     *personnel.Person
	storeman *personnel.Person
}

func newCrewedTank(t *testing.T) crewedTank {
	t.Helper()
	c := crewedTank{
		driver:   helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4}),
		gunner:   helpers.CreateTestPerson(3, map[personnel.SkillType]int{personnel.SkillGunneryVehicle: 4}),
		tech:     helpers.CreateTestPerson(1, map[personnel.SkillType]int{personnel.SkillTechMechanic: 7}),
		storeman: helpers.CreateTestPerson(1, map[personnel.SkillType]int{personnel.SkillTechMechanic: 8}),
	}
	roster := helpers.NewTestRoster(c.driver, c.gunner, c.tech, c.storeman)
	c.unit = helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), roster)
	require.NoError(t, c.unit.Assign(c.driver.ID(), unit.RoleDriver))
	require.NoError(t, c.unit.Assign(c.gunner.ID(), unit.RoleGunner))
	require.NoError(t, c.unit.Assign(c.tech.ID(), unit.RoleTech))
	c.unit.SetForceID(3)
	return c
}

func TestMothball_StartRemovesCrewAtOnce(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)

	// Act
	err := c.unit.StartMothballing(c.storeman.ID(), false)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, c.unit.DriverIDs())
	assert.Empty(t, c.unit.GunnerIDs())
	assert.True(t, c.unit.IsMothballing())
	assert.False(t, c.unit.IsMothballed())
	assert.Equal(t, 960, c.unit.MothballTime())
	assert.Equal(t, c.storeman.ID(), c.unit.TechID())
	assert.Equal(t, unit.NoForce, c.unit.ForceID())
	assert.True(t, c.unit.Definition().Crew().Missing)

	snap := c.unit.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, snap.Drivers)
	assert.Equal(t, []uuid.UUID{c.gunner.ID()}, snap.Gunners)
	assert.Equal(t, c.tech.ID(), snap.Tech)
}

func TestMothball_StaysInProgressUntilTimerRunsOut(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), false))

	// Act
	done, err := c.unit.WorkMothball(500)

	// Assert
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, c.unit.IsMothballed())
	assert.Equal(t, 460, c.unit.MothballTime())

	// Act
	done, err = c.unit.WorkMothball(600)

	// Assert
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, c.unit.IsMothballed())
	assert.False(t, c.unit.InTransition())
	assert.Zero(t, c.unit.MothballTime())
	assert.Equal(t, c.storeman.ID(), c.unit.TechID(), "the mothballing tech stays on")
	assert.NotNil(t, c.unit.Snapshot())
	assert.False(t, c.unit.IsAvailable(true))
	assert.False(t, c.unit.RequiresMaintenance())
}

func TestMothball_RoundTripRestoresCrewAndTech(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	c.unit.IncrementDaysSinceMaintenance(true, 2)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), true))
	require.True(t, c.unit.IsMothballed())

	// Act
	require.NoError(t, c.unit.StartActivating(c.storeman.ID(), false))

	// Assert
	assert.True(t, c.unit.IsActivating())
	assert.True(t, c.unit.IsMothballed())
	assert.Equal(t, 480, c.unit.MothballTime())
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, c.unit.DriverIDs(), "crew is seated when activation starts")

	// Act
	done, err := c.unit.WorkMothball(480)

	// Assert
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, unit.MothballStatusActive, c.unit.MothballStatus())
	assert.False(t, c.unit.IsMothballed())
	assert.Equal(t, c.tech.ID(), c.unit.TechID())
	assert.Equal(t, []uuid.UUID{c.gunner.ID()}, c.unit.GunnerIDs())
	assert.Nil(t, c.unit.Snapshot())
	assert.Zero(t, c.unit.DaysSinceMaintenance())
	assert.False(t, c.unit.Definition().Crew().Missing)
}

func TestMothball_ActivationSkipsPeopleWhoLeft(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), true))
	c.driver.SetActive(false)
	c.tech.SetActive(false)

	// Act
	require.NoError(t, c.unit.StartActivating(c.storeman.ID(), true))

	// Assert
	assert.Empty(t, c.unit.DriverIDs())
	assert.Equal(t, []uuid.UUID{c.gunner.ID()}, c.unit.GunnerIDs())
	assert.Equal(t, uuid.Nil, c.unit.TechID())
}

func TestMothball_CancelPutsEverythingBack(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	engine, ok := c.unit.PartByKey(part.Key{Kind: part.KindEngine, Location: 0})
	require.True(t, ok)
	engine.AssignTech(c.tech.ID(), 90)
	c.unit.IncrementDaysSinceMaintenance(true, 1)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), false))
	require.False(t, engine.IsBeingWorkedOn())

	// Act
	err := c.unit.CancelMothballOrActivation()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, unit.MothballStatusActive, c.unit.MothballStatus())
	assert.Zero(t, c.unit.MothballTime())
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, c.unit.DriverIDs())
	assert.Equal(t, c.tech.ID(), c.unit.TechID())
	assert.Equal(t, c.tech.ID(), engine.TechID())
	assert.Equal(t, 90, engine.MinutesLeft())
	assert.Nil(t, c.unit.Snapshot())
	assert.Zero(t, c.unit.DaysSinceMaintenance())
}

func TestMothball_CancelActivationSendsCrewAway(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), true))
	require.NoError(t, c.unit.StartActivating(c.storeman.ID(), false))

	// Act
	err := c.unit.CancelMothballOrActivation()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, unit.MothballStatusMothballed, c.unit.MothballStatus())
	assert.Empty(t, c.unit.DriverIDs())
	snap := c.unit.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, snap.Drivers)
	assert.Equal(t, c.tech.ID(), snap.Tech, "the pre-mothball tech is remembered")
}

func TestMothball_InvalidTransitionsAreRejected(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	var invalid *shared.InvalidTransitionError

	// Act & Assert
	assert.ErrorAs(t, c.unit.StartActivating(c.storeman.ID(), false), &invalid)
	assert.ErrorAs(t, c.unit.CancelMothballOrActivation(), &invalid)
	assert.ErrorAs(t, c.unit.CompleteMothballTransition(), &invalid)

	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), false))
	assert.ErrorAs(t, c.unit.StartMothballing(c.storeman.ID(), false), &invalid)
	assert.ErrorAs(t, c.unit.StartActivating(c.storeman.ID(), false), &invalid)
}

func TestMothball_CrewCannotJoinMothballedUnit(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), false))

	// Act
	err := c.unit.Assign(c.driver.ID(), unit.RoleDriver)

	// Assert
	var assignment *shared.CrewAssignmentError
	assert.ErrorAs(t, err, &assignment)
}

func TestMothball_TransitionTimes(t *testing.T) {
	tests := []struct {
		name     string
		sheet    func() *unit.Unit
		expected int
	}{
		{"mech", func() *unit.Unit { return helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil) }, 960},
		{"infantry", func() *unit.Unit { return helpers.NewReconciledTestUnit(helpers.CreateTestInfantrySheet(), nil) }, 480},
		// 1900 tons: four 500 ton blocks
		{"dropship", func() *unit.Unit { return helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil) }, 1920},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sheet().MothballOrActivationTime())
		})
	}
}

func TestMothball_SelfCrewedVesselKeepsCrewWhileWorking(t *testing.T) {
	// Arrange
	crew := helpers.CreateTestCrew(2, personnel.SkillTechVessel, 7, 7)
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), helpers.NewTestRoster(crew...))
	assignAll(t, u, unit.RoleVesselCrew, crew...)

	// Act
	require.NoError(t, u.StartMothballing(uuid.Nil, false))

	// Assert
	assert.True(t, u.IsMothballing())
	assert.Len(t, u.VesselCrewIDs(), 2)

	// Act
	done, err := u.WorkMothball(u.MothballTime())

	// Assert
	require.NoError(t, err)
	assert.True(t, done)
	assert.Empty(t, u.VesselCrewIDs())
	assert.Nil(t, u.Engineer())
}

func TestMothball_UncrewedVesselCannotMothball(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)

	// Act
	require.NoError(t, u.StartMothballing(uuid.Nil, false))

	// Assert
	assert.Equal(t, unit.MothballStatusActive, u.MothballStatus(), "no engineer to do the work")
	assert.Zero(t, u.MothballTime())
}

func TestMothballMachine_RestoresFromPersistedFields(t *testing.T) {
	clock := shared.NewMockClock(helpers.DefaultTestTime())
	tests := []struct {
		mothballed bool
		minutes    int
		expected   unit.MothballStatus
	}{
		{false, 0, unit.MothballStatusActive},
		{false, 120, unit.MothballStatusMothballing},
		{true, 0, unit.MothballStatusMothballed},
		{true, 120, unit.MothballStatusActivating},
		{true, -5, unit.MothballStatusMothballed},
	}
	for _, tt := range tests {
		m := unit.RestoreMothballMachine(tt.mothballed, tt.minutes, clock)
		assert.Equal(t, tt.expected, m.Status())
		assert.Equal(t, tt.mothballed, m.IsMothballedFlag())
	}
}

func TestMothballMachine_TracksTimestamps(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(helpers.DefaultTestTime())
	m := unit.NewMothballMachine(clock)

	// Act
	require.NoError(t, m.BeginMothballing(0))
	started := *m.StartedAt()
	clock.AdvanceDays(1)
	m.Work(1)

	// Assert
	assert.Equal(t, helpers.DefaultTestTime(), started)
	assert.Equal(t, helpers.DefaultTestTime().AddDate(0, 0, 1), m.UpdatedAt())
	assert.Equal(t, unit.MothballStatusMothballing, m.Status(), "caller completes the transition")

	// Act
	next, err := m.Complete()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, unit.MothballStatusMothballed, next)
	assert.Nil(t, m.StartedAt())
}

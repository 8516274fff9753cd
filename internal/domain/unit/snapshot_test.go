package unit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func restore(t *testing.T, snap *unit.Snapshot, resolver unit.ReferenceResolver) (*unit.Unit, error) {
	t.Helper()
	u, err := unit.FromSnapshot(snap, resolver, unit.DefaultOptions(), shared.NewMockClock(helpers.DefaultTestTime()))
	require.NotNil(t, u)
	return u, err
}

func TestPersonRef(t *testing.T) {
	id := uuid.New()

	assert.True(t, unit.RefFor(uuid.Nil).IsEmpty())
	assert.Equal(t, unit.PersonRef(id.String()), unit.RefFor(id))
	assert.False(t, unit.RefFor(id).IsLegacy())
	assert.True(t, unit.LegacyRef(42).IsLegacy())
}

func TestSnapshot_RoundTripKeepsState(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	c.unit.SetSite(unit.SiteFacility)
	c.unit.SetFluffName("Old Betsy")
	c.unit.AddHistory("Captured on Hesperus II")
	c.unit.IncrementDaysSinceMaintenance(true, 3)
	require.NoError(t, c.unit.BeginRefit(helpers.CreateTestTankSheet(), 120, c.tech.ID(), 5000))
	require.NoError(t, c.unit.StartMothballing(c.storeman.ID(), false))
	roster := helpers.NewTestRoster(c.driver, c.gunner, c.tech, c.storeman)

	// Act
	restored, err := restore(t, c.unit.ToSnapshot(), unit.ReferenceResolver{Roster: roster})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, c.unit.ID(), restored.ID())
	assert.Equal(t, unit.SiteFacility, restored.Site())
	assert.Equal(t, "Old Betsy", restored.FluffName())
	assert.Equal(t, "Captured on Hesperus II", restored.History())
	assert.True(t, restored.IsMothballing())
	assert.Equal(t, c.unit.MothballTime(), restored.MothballTime())
	assert.Equal(t, c.storeman.ID(), restored.TechID())
	require.NotNil(t, restored.Snapshot())
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, restored.Snapshot().Drivers)
	require.NotNil(t, restored.Refit())
	assert.Equal(t, 120, restored.Refit().MinutesLeft())
	assert.Equal(t, c.tech.ID(), restored.Refit().TechID())
	assert.Len(t, restored.Parts(), len(c.unit.Parts()))
}

func TestSnapshot_RoundTripKeepsCrew(t *testing.T) {
	// Arrange
	c := newCrewedTank(t)
	roster := helpers.NewTestRoster(c.driver, c.gunner, c.tech, c.storeman)

	// Act
	restored, err := restore(t, c.unit.ToSnapshot(), unit.ReferenceResolver{Roster: roster})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.driver.ID()}, restored.DriverIDs())
	assert.Equal(t, []uuid.UUID{c.gunner.ID()}, restored.GunnerIDs())
	assert.Equal(t, c.tech.ID(), restored.TechID())
	assert.Equal(t, c.unit.Definition().Crew().Gunnery, restored.Definition().Crew().Gunnery)
}

func TestSnapshot_LegacyReferencesResolveThroughMap(t *testing.T) {
	// Arrange
	pilot := helpers.CreateTestPerson(3, map[personnel.SkillType]int{personnel.SkillPilotMech: 4})
	pilot.SetLegacyID(17)
	snap := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil).ToSnapshot()
	snap.Drivers = []unit.PersonRef{unit.LegacyRef(17)}
	// solo pilots are seated once; a stale gunner entry is dropped
	snap.Gunners = []unit.PersonRef{unit.LegacyRef(17)}
	resolver := unit.ReferenceResolver{
		Legacy: map[int]uuid.UUID{17: pilot.ID()},
		Roster: helpers.NewTestRoster(pilot),
	}

	// Act
	restored, err := restore(t, snap, resolver)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pilot.ID()}, restored.DriverIDs())
	assert.Empty(t, restored.GunnerIDs())
	assert.Equal(t, pilot.ID(), restored.Commander().ID())
}

func TestSnapshot_DanglingReferencesAreDroppedAndReported(t *testing.T) {
	// Arrange
	gunner := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillGunneryVehicle: 4})
	snap := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil).ToSnapshot()
	snap.Drivers = []unit.PersonRef{unit.LegacyRef(99)}
	snap.Gunners = []unit.PersonRef{unit.RefFor(gunner.ID()), unit.RefFor(uuid.New())}
	snap.Tech = "not-a-uuid"
	resolver := unit.ReferenceResolver{Roster: helpers.NewTestRoster(gunner)}

	// Act
	restored, err := restore(t, snap, resolver)

	// Assert
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	for _, e := range errs {
		var dangling *shared.DanglingReferenceError
		assert.ErrorAs(t, e, &dangling)
	}
	assert.Empty(t, restored.DriverIDs())
	assert.Equal(t, []uuid.UUID{gunner.ID()}, restored.GunnerIDs())
	assert.Equal(t, uuid.Nil, restored.TechID())
}

func TestSnapshot_MalformedFieldsFallBackToDefaults(t *testing.T) {
	// Arrange
	snap := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil).ToSnapshot()
	snap.Site = unit.Site(42)
	snap.MothballTime = -10
	snap.DaysSinceMaintenance = -1
	snap.Refit = &unit.RefitSnapshot{MinutesLeft: 30}

	// Act
	restored, err := restore(t, snap, unit.ReferenceResolver{})

	// Assert
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	var malformed *shared.MalformedSnapshotError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, unit.SiteBay, restored.Site())
	assert.Zero(t, restored.MothballTime())
	assert.Equal(t, unit.MothballStatusActive, restored.MothballStatus())
	assert.Zero(t, restored.DaysSinceMaintenance())
	assert.Nil(t, restored.Refit())
}

func TestSnapshot_MismatchedCorrelationIDIsRewritten(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	snap := helpers.NewReconciledTestUnit(sheet, nil).ToSnapshot()
	sheet.CorrelationID = "mul-1234"

	// Act
	restored, err := restore(t, snap, unit.ReferenceResolver{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, snap.ID.String(), restored.Definition().ExternalID())
	assert.Equal(t, snap.ID.String(), sheet.CorrelationID)
	assert.False(t, restored.FixCorrelationID())
}

func TestSnapshot_WithoutDefinitionFails(t *testing.T) {
	snap := &unit.Snapshot{ID: uuid.New()}

	u, err := unit.FromSnapshot(snap, unit.ReferenceResolver{}, unit.DefaultOptions(), nil)

	assert.Error(t, err)
	assert.Nil(t, u)
}

package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/database"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func newRepos(t *testing.T) *helpers.TestRepositories {
	return helpers.NewTestRepositories(helpers.NewTestDB(t), shared.NewMockClock(helpers.DefaultTestTime()))
}

func saveCrew(t *testing.T, repos *helpers.TestRepositories, people ...*personnel.Person) personnel.MapRoster {
	for _, p := range people {
		require.NoError(t, repos.PersonRepo.Save(context.Background(), p))
	}
	return helpers.NewTestRoster(people...)
}

func TestUnitRepository_SaveAndLoadRoundTrip(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	driver := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	gunner := helpers.CreateTestPerson(4, map[personnel.SkillType]int{personnel.SkillGunneryVehicle: 3})
	roster := saveCrew(t, repos, driver, gunner)

	sheet := helpers.CreateTestTankSheet()
	tank := helpers.NewReconciledTestUnit(sheet, roster)
	require.NoError(t, tank.Assign(driver.ID(), unit.RoleDriver))
	require.NoError(t, tank.Assign(gunner.ID(), unit.RoleGunner))
	tank.SetFluffName("Old Faithful")
	tank.SetSite(unit.SiteFactory)
	tank.SetForceID(12)
	tank.AddHistory("bought at Hesperus II")
	tank.SetQuality(part.QualityB)
	sheet.Comps[2].Destroyed = true // sensors
	_, err := tank.Reconcile(true, nil)
	require.NoError(t, err)

	// Act
	require.NoError(t, repos.UnitRepo.Save(context.Background(), tank))
	report, err := repos.UnitRepo.Load(context.Background(), tank.ID())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, report.ProblemList())
	loaded, ok := report.Unit(tank.ID())
	require.True(t, ok)
	assert.Equal(t, "Old Faithful (Bulldog Medium Tank)", loaded.Name())
	assert.Equal(t, unit.SiteFactory, loaded.Site())
	assert.Equal(t, 12, loaded.ForceID())
	assert.Contains(t, loaded.History(), "Hesperus II")
	assert.Equal(t, tank.DriverIDs(), loaded.DriverIDs())
	assert.Equal(t, tank.GunnerIDs(), loaded.GunnerIDs())
	assert.Equal(t, gunner.ID(), loaded.Commander().ID())
	assert.Equal(t, "B", loaded.QualityName())

	require.Len(t, loaded.Parts(), len(tank.Parts()))
	byID := make(map[uuid.UUID]*part.Part)
	for _, p := range loaded.Parts() {
		byID[p.ID()] = p
	}
	for _, want := range tank.Parts() {
		got, ok := byID[want.ID()]
		require.True(t, ok, want.Name())
		assert.Equal(t, want.Key(), got.Key())
		assert.Equal(t, want.Name(), got.Name())
		assert.Equal(t, want.IsMissing(), got.IsMissing())
	}
	assert.Equal(t, tank.SellValue(), loaded.SellValue())
}

func TestUnitRepository_ReloadedUnitIsStableUnderReconcile(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	mech := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	require.NoError(t, repos.UnitRepo.Save(context.Background(), mech))
	report, err := repos.UnitRepo.Load(context.Background(), mech.ID())
	require.NoError(t, err)
	loaded, _ := report.Unit(mech.ID())

	// Act
	pass, err := loaded.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, pass.IsEmpty(), "%v", pass.Ops)
	assert.Len(t, loaded.Parts(), helpers.MechPartCount)
}

func TestUnitRepository_MothballingSurvivesReload(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	driver := helpers.CreateTestPerson(2, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 4})
	storeman := helpers.CreateTestPerson(1, map[personnel.SkillType]int{personnel.SkillTechMechanic: 8})
	roster := saveCrew(t, repos, driver, storeman)
	tank := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), roster)
	require.NoError(t, tank.Assign(driver.ID(), unit.RoleDriver))
	require.NoError(t, tank.StartMothballing(storeman.ID(), false))

	// Act
	require.NoError(t, repos.UnitRepo.Save(context.Background(), tank))
	report, err := repos.UnitRepo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Units, 1)
	loaded := report.Units[0]
	assert.True(t, loaded.IsMothballing())
	assert.Equal(t, tank.MothballTime(), loaded.MothballTime())
	assert.Equal(t, storeman.ID(), loaded.TechID())
	assert.Empty(t, loaded.DriverIDs())

	// The crew seated before mothballing comes back on activation
	done, err := loaded.WorkMothball(loaded.MothballTime())
	require.NoError(t, err)
	require.True(t, done)
	require.NoError(t, loaded.StartActivating(storeman.ID(), true))
	assert.Equal(t, []uuid.UUID{driver.ID()}, loaded.DriverIDs())
}

func TestUnitRepository_ResolvesLegacyRefsAndDropsDangling(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	veteran := helpers.CreateTestPerson(3, map[personnel.SkillType]int{personnel.SkillPilotGroundVee: 3})
	veteran.SetLegacyID(7)
	saveCrew(t, repos, veteran)

	def, err := definition.Encode(helpers.CreateTestTankSheet())
	require.NoError(t, err)
	id := uuid.New()
	model := &persistence.UnitModel{
		ID:         id.String(),
		Name:       "Bulldog Medium Tank",
		Category:   "TANK",
		Definition: string(def),
		Drivers:    `["7"]`,
		Gunners:    `["` + uuid.NewString() + `"]`,
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, repos.DB.Create(model).Error)

	// Act
	report, err := repos.UnitRepo.Load(context.Background(), id)

	// Assert
	require.NoError(t, err)
	loaded, ok := report.Unit(id)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{veteran.ID()}, loaded.DriverIDs())
	assert.Empty(t, loaded.GunnerIDs())
	assert.Len(t, report.ProblemList(), 1)
}

func TestUnitRepository_UnreadableDefinitionIsReported(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	good := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	require.NoError(t, repos.UnitRepo.Save(context.Background(), good))
	require.NoError(t, repos.DB.Create(&persistence.UnitModel{
		ID: uuid.NewString(), Name: "Broken", Category: "MECH", Definition: "not = [toml", UpdatedAt: time.Now(),
	}).Error)

	// Act
	report, err := repos.UnitRepo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Units, 1)
	assert.Equal(t, good.ID(), report.Units[0].ID())
	require.Len(t, report.ProblemList(), 1)
	var snapErr *shared.SnapshotError
	assert.ErrorAs(t, report.ProblemList()[0], &snapErr)
}

func TestUnitRepository_FindIDsByName(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	named := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil)
	named.SetFluffName("Bessie")
	other := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil)
	require.NoError(t, repos.UnitRepo.Save(context.Background(), named))
	require.NoError(t, repos.UnitRepo.Save(context.Background(), other))

	// Act
	byFluff, err := repos.UnitRepo.FindIDsByName(context.Background(), "Bessie")
	require.NoError(t, err)
	byModel, err := repos.UnitRepo.FindIDsByName(context.Background(), "Bulldog Medium Tank")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []uuid.UUID{named.ID()}, byFluff)
	assert.Equal(t, []uuid.UUID{other.ID()}, byModel)
}

func TestUnitRepository_DeleteRemovesEverything(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	ctx := context.Background()
	mech := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	require.NoError(t, repos.UnitRepo.Save(ctx, mech))
	require.NoError(t, repos.SheetIndex.BindSheet(ctx, mech.ID(), "sheets/hbk-4g.toml"))
	require.NoError(t, repos.RunRepo.Record(ctx, &common.ReconcileRun{
		ID: uuid.New(), UnitID: mech.ID(), Trigger: "import", Created: helpers.MechPartCount, RanAt: helpers.DefaultTestTime(),
	}))

	// Act
	err := repos.UnitRepo.Delete(ctx, mech.ID())

	// Assert
	require.NoError(t, err)
	var parts int64
	require.NoError(t, repos.DB.Model(&persistence.PartModel{}).Count(&parts).Error)
	assert.Zero(t, parts)
	ids, err := repos.SheetIndex.UnitsForSheet(ctx, "sheets/hbk-4g.toml")
	require.NoError(t, err)
	assert.Empty(t, ids)
	runs, err := repos.RunRepo.FindByUnit(ctx, mech.ID(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	var unitErr *shared.UnitError
	assert.ErrorAs(t, repos.UnitRepo.Delete(ctx, mech.ID()), &unitErr)
}

func TestUnitRepository_SaveReplacesRemovedParts(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	sheet := helpers.CreateTestMechSheet()
	mech := helpers.NewReconciledTestUnit(sheet, nil)
	require.NoError(t, repos.UnitRepo.Save(context.Background(), mech))
	sheet.Equipment = sheet.Equipment[:3] // laser pulled
	_, err := mech.Reconcile(true, nil)
	require.NoError(t, err)

	// Act
	require.NoError(t, repos.UnitRepo.Save(context.Background(), mech))

	// Assert
	var parts int64
	require.NoError(t, repos.DB.Model(&persistence.PartModel{}).Where("unit_id = ?", mech.ID().String()).Count(&parts).Error)
	assert.Equal(t, int64(helpers.MechPartCount-1), parts)
}

func TestUnitRepository_CampaignFileKeepsUnitsBetweenSessions(t *testing.T) {
	// Arrange
	cfg := helpers.NewTestCampaignFile(t)
	clock := shared.NewMockClock(helpers.DefaultTestTime())
	mech := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	mech.SetFluffName("Old Faithful")

	first, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, helpers.NewTestRepositories(first, clock).UnitRepo.Save(context.Background(), mech))
	require.NoError(t, database.Close(first))

	// Act
	second, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(second) })
	report, err := helpers.NewTestRepositories(second, clock).UnitRepo.Load(context.Background(), mech.ID())

	// Assert
	require.NoError(t, err)
	loaded, ok := report.Unit(mech.ID())
	require.True(t, ok)
	assert.Equal(t, "Old Faithful (Hunchback HBK-4G)", loaded.Name())
	assert.Len(t, loaded.Parts(), helpers.MechPartCount)
}

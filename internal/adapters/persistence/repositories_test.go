package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestPersonRepository_SaveAndFind(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	p := helpers.CreateTestPerson(4, map[personnel.SkillType]int{
		personnel.SkillPilotMech:   3,
		personnel.SkillGunneryMech: 4,
	})
	p.SetLegacyID(42)
	p.SetHits(2)
	p.SetEdge(1)
	p.SetInjuryModifiers(1, 2)
	p.SetAstechs(4)
	p.SetAbility("weapon_specialist", "Medium Laser")

	// Act
	require.NoError(t, repos.PersonRepo.Save(context.Background(), p))
	found, err := repos.PersonRepo.FindByID(context.Background(), p.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, p.FullTitle(), found.FullTitle())
	assert.Equal(t, 42, found.LegacyID())
	assert.Equal(t, 4, found.Rank())
	assert.Equal(t, 2, found.Hits())
	assert.Equal(t, 1, found.Edge())
	assert.Equal(t, 4, found.Astechs())
	assert.True(t, found.IsActive())
	piloting, gunnery := found.InjuryModifiers()
	assert.Equal(t, 1, piloting)
	assert.Equal(t, 2, gunnery)
	assert.Equal(t, p.Skills(), found.Skills())
	assert.Equal(t, "Medium Laser", found.Ability("weapon_specialist"))
}

func TestPersonRepository_UpdateAndList(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	ctx := context.Background()
	bravo := personnel.NewPerson(uuid.New(), "Bravo", 1)
	alpha := personnel.NewPerson(uuid.New(), "Alpha", 1)
	require.NoError(t, repos.PersonRepo.Save(ctx, bravo))
	require.NoError(t, repos.PersonRepo.Save(ctx, alpha))
	bravo.SetActive(false)

	// Act
	require.NoError(t, repos.PersonRepo.Save(ctx, bravo))
	all, err := repos.PersonRepo.FindAll(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Name())
	assert.False(t, all[1].IsActive())
}

func TestPersonRepository_NotFound(t *testing.T) {
	repos := newRepos(t)

	_, err := repos.PersonRepo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, persistence.ErrPersonNotFound)
}

func TestReconcileRunRepository_NewestFirstWithLimit(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	ctx := context.Background()
	unitID := uuid.New()
	start := helpers.DefaultTestTime()
	for day := 0; day < 5; day++ {
		require.NoError(t, repos.RunRepo.Record(ctx, &common.ReconcileRun{
			ID:      uuid.New(),
			UnitID:  unitID,
			Trigger: "watch",
			Removed: day,
			RanAt:   start.Add(time.Duration(day) * 24 * time.Hour),
		}))
	}
	require.NoError(t, repos.RunRepo.Record(ctx, &common.ReconcileRun{ID: uuid.New(), UnitID: uuid.New(), RanAt: start}))

	// Act
	runs, err := repos.RunRepo.FindByUnit(ctx, unitID, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []int{4, 3, 2}, []int{runs[0].Removed, runs[1].Removed, runs[2].Removed})
	assert.Equal(t, "watch", runs[0].Trigger)
	assert.True(t, runs[0].RanAt.Equal(start.Add(96*time.Hour)))
}

func TestInventoryRepository_SaveReplacesContents(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Inventory.Save(ctx, unit.Inventory{"Heat Sink": 3, "Mech Sensors": 1}))

	// Act
	require.NoError(t, repos.Inventory.Save(ctx, unit.Inventory{"Heat Sink": 2, "Mech Sensors": 0, "AC/20 Ammo": 5}))
	inv, err := repos.Inventory.Load(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, unit.Inventory{"Heat Sink": 2, "AC/20 Ammo": 5}, inv)
}

func TestSheetIndex_RebindMovesUnit(t *testing.T) {
	// Arrange
	repos := newRepos(t)
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()
	require.NoError(t, repos.SheetIndex.BindSheet(ctx, first, "sheets/a.toml"))
	require.NoError(t, repos.SheetIndex.BindSheet(ctx, second, "sheets/a.toml"))

	// Act
	require.NoError(t, repos.SheetIndex.BindSheet(ctx, first, "sheets/b.toml"))

	// Assert
	onA, err := repos.SheetIndex.UnitsForSheet(ctx, "sheets/a.toml")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second}, onA)
	onB, err := repos.SheetIndex.UnitsForSheet(ctx, "./sheets/../sheets/b.toml")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first}, onB)
}

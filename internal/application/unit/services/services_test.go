package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

type failingRunRepository struct{}

func (failingRunRepository) Record(context.Context, *common.ReconcileRun) error {
	return errors.New("disk full")
}

func (failingRunRepository) FindByUnit(context.Context, uuid.UUID, int) ([]*common.ReconcileRun, error) {
	return nil, nil
}

func TestReconcileRecorder_RecordsNonEmptyPass(t *testing.T) {
	// Arrange
	log := helpers.NewCaptureLogger()
	ctx := common.WithLogger(context.Background(), log)
	runs := helpers.NewMockReconcileRunRepository()
	clock := shared.NewMockClock(helpers.DefaultTestTime())
	recorder := services.NewReconcileRecorder(runs, clock)
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	report := &unit.ReconcileReport{
		Ops: []unit.ReconcileOp{
			{Action: unit.ActionCreate, Key: part.Key{}, Name: "Heat Sink"},
			{Action: unit.ActionRemove, Name: "Medium Laser"},
		},
		Inconsistent: []*shared.InconsistentKeyError{
			shared.NewInconsistentKeyError(u.ID().String(), "EQUIPMENT:2", "Heat Sink", uuid.NewString()),
		},
	}

	// Act
	err := recorder.Record(ctx, u, services.TriggerWatch, report)

	// Assert
	require.NoError(t, err)
	recorded := runs.Runs()
	require.Len(t, recorded, 1)
	assert.Equal(t, u.ID(), recorded[0].UnitID)
	assert.Equal(t, services.TriggerWatch, recorded[0].Trigger)
	assert.Equal(t, 1, recorded[0].Created)
	assert.Equal(t, 1, recorded[0].Removed)
	assert.Equal(t, 1, recorded[0].Inconsistent)
	assert.Equal(t, helpers.DefaultTestTime(), recorded[0].RanAt)

	require.Len(t, log.Entries(common.LevelWarn), 1)
	assert.Equal(t, "Heat Sink", log.Entries(common.LevelWarn)[0].Metadata["discarded"])
	require.Len(t, log.Entries(common.LevelInfo), 1)
	assert.Equal(t, "watch", log.Entries(common.LevelInfo)[0].Metadata["trigger"])
}

func TestReconcileRecorder_EmptyPassIsLoggedButNotStored(t *testing.T) {
	// Arrange
	log := helpers.NewCaptureLogger()
	runs := helpers.NewMockReconcileRunRepository()
	recorder := services.NewReconcileRecorder(runs, nil)
	u := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil)

	// Act
	err := recorder.Record(common.WithLogger(context.Background(), log), u, services.TriggerManual, &unit.ReconcileReport{})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, runs.Runs())
	assert.Len(t, log.Entries(common.LevelInfo), 1)
}

func TestReconcileRecorder_NilReportAndNilRepository(t *testing.T) {
	u := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil)
	report := &unit.ReconcileReport{Ops: []unit.ReconcileOp{{Action: unit.ActionRefresh}}}

	assert.NoError(t, services.NewReconcileRecorder(helpers.NewMockReconcileRunRepository(), nil).Record(context.Background(), u, services.TriggerManual, nil))
	assert.NoError(t, services.NewReconcileRecorder(nil, nil).Record(context.Background(), u, services.TriggerManual, report))
}

func TestReconcileRecorder_StoreFailure(t *testing.T) {
	// Arrange
	recorder := services.NewReconcileRecorder(failingRunRepository{}, nil)
	u := helpers.NewReconciledTestUnit(helpers.CreateTestTankSheet(), nil)
	report := &unit.ReconcileReport{Ops: []unit.ReconcileOp{{Action: unit.ActionPromote}}}

	// Act
	err := recorder.Record(context.Background(), u, services.TriggerRefit, report)

	// Assert
	assert.ErrorContains(t, err, "disk full")
}

func TestUnitLoader_LoadLogsProblemsAndFindsUnit(t *testing.T) {
	// Arrange
	log := helpers.NewCaptureLogger()
	ctx := common.WithLogger(context.Background(), log)
	repo := helpers.NewMockUnitRepository()
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	repo.AddUnit(u)
	repo.SetLoadProblems(errors.New("dangling crew ref"), errors.New("dangling part ref"))
	loader := services.NewUnitLoader(repo)

	// Act
	loaded, err := loader.Load(ctx, u.ID())

	// Assert
	require.NoError(t, err)
	assert.Same(t, u, loaded)
	assert.Len(t, log.Entries(common.LevelWarn), 2)
}

func TestUnitLoader_Errors(t *testing.T) {
	repo := helpers.NewMockUnitRepository()
	loader := services.NewUnitLoader(repo)

	_, err := loader.Load(context.Background(), uuid.New())
	var unitErr *shared.UnitError
	require.ErrorAs(t, err, &unitErr)

	repo.SetLoadError(errors.New("connection refused"))
	_, err = loader.LoadAll(context.Background())
	assert.ErrorContains(t, err, "failed to load units")
}

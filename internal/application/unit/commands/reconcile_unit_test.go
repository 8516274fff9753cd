package commands_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func TestReconcileUnit_CleanUnitRecordsNoRun(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	u := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	handler := commands.NewReconcileUnitHandler(f.units, f.recorder, nil)

	// Act
	response, err := handler.Handle(f.ctx, &commands.ReconcileUnitCommand{UnitID: u.ID(), CreateMissingParts: true})

	// Assert
	require.NoError(t, err)
	assert.True(t, response.(*commands.ReconcileUnitResponse).Report.IsEmpty())
	assert.Equal(t, 1, f.units.SaveCount())
	assert.Empty(t, f.runs.Runs())
}

func TestReconcileUnit_DestroyedComponentBecomesMissing(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	sheet := helpers.CreateTestMechSheet()
	u := f.addUnit(helpers.NewReconciledTestUnit(sheet, nil))
	sheet.Comps[3].Destroyed = true
	handler := commands.NewReconcileUnitHandler(f.units, f.recorder, nil)

	// Act
	response, err := handler.Handle(f.ctx, &commands.ReconcileUnitCommand{UnitID: u.ID(), CreateMissingParts: true})

	// Assert
	require.NoError(t, err)
	report := response.(*commands.ReconcileUnitResponse).Report
	assert.False(t, report.IsEmpty())
	sensor, ok := u.PartByKey(part.Key{Kind: part.KindSensor, Location: helpers.MechHead})
	require.True(t, ok)
	assert.True(t, sensor.IsMissing())

	runs := f.runs.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, services.TriggerManual, runs[0].Trigger)
	assert.Equal(t, u.ID(), runs[0].UnitID)
}

func TestReconcileUnit_UnknownUnit(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	handler := commands.NewReconcileUnitHandler(f.units, f.recorder, nil)

	// Act
	_, err := handler.Handle(f.ctx, &commands.ReconcileUnitCommand{UnitID: uuid.New()})

	// Assert
	var unitErr *shared.UnitError
	require.ErrorAs(t, err, &unitErr)
	assert.Equal(t, "unit not found", unitErr.Message)
}

func TestReconcileUnit_IssuerFailureSavesNothing(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	u := f.addUnit(helpers.NewTestUnit(helpers.CreateTestTankSheet(), nil))
	failing := func(*part.Part) (uuid.UUID, error) { return uuid.Nil, errors.New("ledger offline") }
	handler := commands.NewReconcileUnitHandler(f.units, f.recorder, failing)

	// Act
	_, err := handler.Handle(f.ctx, &commands.ReconcileUnitCommand{UnitID: u.ID(), CreateMissingParts: true})

	// Assert
	require.ErrorContains(t, err, "ledger offline")
	assert.Empty(t, u.Parts())
	assert.Zero(t, f.units.SaveCount())
}

func TestReconcileUnit_LoadProblemsAreLoggedNotReturned(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	u := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	f.units.SetLoadProblems(shared.NewDanglingReferenceError(u.ID().String(), "driver", "42"))
	handler := commands.NewReconcileUnitHandler(f.units, f.recorder, nil)

	// Act
	_, err := handler.Handle(f.ctx, &commands.ReconcileUnitCommand{UnitID: u.ID()})

	// Assert
	require.NoError(t, err)
	warnings := f.log.Entries("WARNING")
	require.Len(t, warnings, 1)
	assert.Equal(t, "Unit load problem", warnings[0].Message)
	assert.Equal(t, "load_unit", warnings[0].Metadata["action"])
}

func TestSheetChanged_ReconcilesEveryBoundUnit(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	first := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	second := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	require.NoError(t, f.index.BindSheet(f.ctx, first.ID(), "/sheets/hbk.toml"))
	require.NoError(t, f.index.BindSheet(f.ctx, second.ID(), "/sheets/hbk.toml"))

	f.sheets.SetSheetFunc("/sheets/hbk.toml", func() loadout.Definition {
		changed := helpers.CreateTestMechSheet()
		changed.Equipment = changed.Equipment[:3] // the medium laser is gone
		return changed
	})
	handler := commands.NewSheetChangedHandler(f.units, f.sheets, f.index, f.recorder, nil)

	// Act
	response, err := handler.Handle(f.ctx, &commands.SheetChangedCommand{SheetPath: "/sheets/hbk.toml"})

	// Assert
	require.NoError(t, err)
	resp := response.(*commands.SheetChangedResponse)
	require.Len(t, resp.Units, 2)
	for _, report := range resp.Reports {
		assert.Equal(t, 1, report.Count(unit.ActionRemove))
	}
	assert.Len(t, first.Parts(), helpers.MechPartCount-1)
	assert.Len(t, second.Parts(), helpers.MechPartCount-1)
	assert.NotSame(t, first.Definition(), second.Definition())

	runs := f.runs.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, services.TriggerWatch, runs[0].Trigger)
}

func TestSheetChanged_UnboundSheetIsANoOp(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	handler := commands.NewSheetChangedHandler(f.units, f.sheets, f.index, f.recorder, nil)

	// Act
	response, err := handler.Handle(f.ctx, &commands.SheetChangedCommand{SheetPath: "/sheets/none.toml"})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, response.(*commands.SheetChangedResponse).Units)
}

func TestSheetChanged_BrokenSheetKeepsUnitsAndReportsError(t *testing.T) {
	// Arrange
	f := newHandlerFixture()
	u := f.addUnit(helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil))
	require.NoError(t, f.index.BindSheet(f.ctx, u.ID(), "/sheets/hbk.toml"))
	f.sheets.SetError("/sheets/hbk.toml", errors.New("unexpected EOF"))
	handler := commands.NewSheetChangedHandler(f.units, f.sheets, f.index, f.recorder, nil)

	// Act
	response, err := handler.Handle(f.ctx, &commands.SheetChangedCommand{SheetPath: "/sheets/hbk.toml"})

	// Assert
	require.ErrorContains(t, err, "unexpected EOF")
	assert.Empty(t, response.(*commands.SheetChangedResponse).Units)
	assert.Len(t, u.Parts(), helpers.MechPartCount)
	assert.Len(t, f.log.Entries("ERROR"), 1)
}

package commands_test

import (
	"context"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

// handlerFixture bundles the in-memory doubles every handler test needs
type handlerFixture struct {
	ctx       context.Context
	log       *helpers.CaptureLogger
	units     *helpers.MockUnitRepository
	runs      *helpers.MockReconcileRunRepository
	sheets    *helpers.MockDefinitionLoader
	index     *helpers.MockSheetIndex
	inventory *helpers.MockInventoryRepository
	clock     *shared.MockClock
	recorder  *services.ReconcileRecorder
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		log:       helpers.NewCaptureLogger(),
		units:     helpers.NewMockUnitRepository(),
		runs:      helpers.NewMockReconcileRunRepository(),
		sheets:    helpers.NewMockDefinitionLoader(),
		index:     helpers.NewMockSheetIndex(),
		inventory: helpers.NewMockInventoryRepository(nil),
		clock:     shared.NewMockClock(helpers.DefaultTestTime()),
	}
	f.ctx = common.WithLogger(context.Background(), f.log)
	f.recorder = services.NewReconcileRecorder(f.runs, f.clock)
	return f
}

// addUnit stores a fully reconciled unit
func (f *handlerFixture) addUnit(u *unit.Unit) *unit.Unit {
	f.units.AddUnit(u)
	return u
}

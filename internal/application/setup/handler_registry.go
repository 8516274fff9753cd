package setup

import (
	"reflect"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	personnelCommands "github.com/andrescamacho/unitforge-go/internal/application/personnel/commands"
	personnelQueries "github.com/andrescamacho/unitforge-go/internal/application/personnel/queries"
	unitCommands "github.com/andrescamacho/unitforge-go/internal/application/unit/commands"
	unitQueries "github.com/andrescamacho/unitforge-go/internal/application/unit/queries"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	unitRepo   unit.UnitRepository
	people     personnel.Repository
	runRepo    common.ReconcileRunRepository
	inventory  common.InventoryRepository
	sheets     common.DefinitionLoader
	sheetIndex common.SheetIndex
	exporter   common.WorkbookExporter
	options    unit.Options
	issuer     unit.IDIssuer
	clock      shared.Clock
}

// Dependencies groups what the handlers need. SheetIndex may be nil, in
// which case imported units are not picked up by the sheet watcher.
type Dependencies struct {
	UnitRepo   unit.UnitRepository
	People     personnel.Repository
	RunRepo    common.ReconcileRunRepository
	Inventory  common.InventoryRepository
	Sheets     common.DefinitionLoader
	SheetIndex common.SheetIndex
	Exporter   common.WorkbookExporter
	Options    unit.Options
	Issuer     unit.IDIssuer
	Clock      shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(deps Dependencies) *HandlerRegistry {
	// Default to real clock if not provided
	if deps.Clock == nil {
		deps.Clock = shared.NewRealClock()
	}
	if deps.Issuer == nil {
		deps.Issuer = unit.DefaultIDIssuer
	}

	return &HandlerRegistry{
		unitRepo:   deps.UnitRepo,
		people:     deps.People,
		runRepo:    deps.RunRepo,
		inventory:  deps.Inventory,
		sheets:     deps.Sheets,
		sheetIndex: deps.SheetIndex,
		exporter:   deps.Exporter,
		options:    deps.Options,
		issuer:     deps.Issuer,
		clock:      deps.Clock,
	}
}

type registration struct {
	request interface{}
	handler mediator.RequestHandler
}

func register(m mediator.Mediator, regs []registration) error {
	for _, reg := range regs {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterUnitHandlers registers every unit command and query handler.
//
// Handlers serving several requests are registered once per request type:
//   - AssignCrewHandler: AssignCrew, UnassignCrew
//   - MothballHandler: StartMothball, StartActivation, CancelMothball
//   - RefitHandler: BeginRefit, CompleteRefit, CancelRefit
func (r *HandlerRegistry) RegisterUnitHandlers(m mediator.Mediator) error {
	recorder := services.NewReconcileRecorder(r.runRepo, r.clock)

	crew := unitCommands.NewAssignCrewHandler(r.unitRepo)
	mothball := unitCommands.NewMothballHandler(r.unitRepo)
	refit := unitCommands.NewRefitHandler(r.unitRepo, r.sheets, recorder, r.issuer)

	return register(m, []registration{
		// Commands
		{&unitCommands.ImportUnitCommand{}, unitCommands.NewImportUnitHandler(r.unitRepo, r.sheets, r.sheetIndex, recorder, r.issuer, r.options, r.clock)},
		{&unitCommands.ReconcileUnitCommand{}, unitCommands.NewReconcileUnitHandler(r.unitRepo, recorder, r.issuer)},
		{&unitCommands.SheetChangedCommand{}, unitCommands.NewSheetChangedHandler(r.unitRepo, r.sheets, r.sheetIndex, recorder, r.issuer)},
		{&unitCommands.UpdateUnitCommand{}, unitCommands.NewUpdateUnitHandler(r.unitRepo)},
		{&unitCommands.RemoveUnitCommand{}, unitCommands.NewRemoveUnitHandler(r.unitRepo)},
		{&unitCommands.AssignCrewCommand{}, crew},
		{&unitCommands.UnassignCrewCommand{}, crew},
		{&unitCommands.StartMothballCommand{}, mothball},
		{&unitCommands.StartActivationCommand{}, mothball},
		{&unitCommands.CancelMothballCommand{}, mothball},
		{&unitCommands.AdvanceDayCommand{}, unitCommands.NewAdvanceDayHandler(r.unitRepo, recorder, r.issuer, r.clock)},
		{&unitCommands.SetUnitQualityCommand{}, unitCommands.NewSetUnitQualityHandler(r.unitRepo)},
		{&unitCommands.BeginRefitCommand{}, refit},
		{&unitCommands.CompleteRefitCommand{}, refit},
		{&unitCommands.CancelRefitCommand{}, refit},
		{&unitCommands.ReplaceMissingPartCommand{}, unitCommands.NewReplaceMissingPartHandler(r.unitRepo, r.inventory)},
		{&unitCommands.AddBayAmmoCommand{}, unitCommands.NewAddBayAmmoHandler(r.unitRepo, recorder, r.issuer)},
		{&unitCommands.AdjustStockCommand{}, unitCommands.NewAdjustStockHandler(r.inventory)},
		{&unitCommands.ExportUnitsCommand{}, unitCommands.NewExportUnitsHandler(r.unitRepo, r.exporter)},

		// Queries
		{&unitQueries.ListUnitsQuery{}, unitQueries.NewListUnitsHandler(r.unitRepo)},
		{&unitQueries.GetUnitStatusQuery{}, unitQueries.NewGetUnitStatusHandler(r.unitRepo)},
		{&unitQueries.GetUnitValuationQuery{}, unitQueries.NewGetUnitValuationHandler(r.unitRepo)},
		{&unitQueries.ListRepairNeedsQuery{}, unitQueries.NewListRepairNeedsHandler(r.unitRepo, r.inventory)},
		{&unitQueries.ListReconcileRunsQuery{}, unitQueries.NewListReconcileRunsHandler(r.runRepo, r.unitRepo)},
		{&unitQueries.ListStockQuery{}, unitQueries.NewListStockHandler(r.inventory)},
	})
}

// RegisterPersonnelHandlers registers the roster handlers
func (r *HandlerRegistry) RegisterPersonnelHandlers(m mediator.Mediator) error {
	return register(m, []registration{
		{&personnelCommands.SavePersonCommand{}, personnelCommands.NewSavePersonHandler(r.people)},
		{&personnelQueries.ListPeopleQuery{}, personnelQueries.NewListPeopleHandler(r.people)},
	})
}

// CreateConfiguredMediator creates a mediator with every handler registered
// and the given middlewares installed, outermost first
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := r.RegisterUnitHandlers(m); err != nil {
		return nil, err
	}
	if r.people != nil {
		if err := r.RegisterPersonnelHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

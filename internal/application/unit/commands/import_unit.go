package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// ImportUnitCommand creates a unit from a design sheet
type ImportUnitCommand struct {
	SheetPath string
	FluffName string // Optional
	Site      string // Optional: defaults to a transport bay
}

// ImportUnitResponse carries the new unit
type ImportUnitResponse struct {
	UnitID uuid.UUID
	Name   string
	Parts  int
	Report *unit.ReconcileReport
}

// ImportUnitHandler handles the ImportUnit command
type ImportUnitHandler struct {
	unitRepo unit.UnitRepository
	sheets   common.DefinitionLoader
	index    common.SheetIndex
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
	options  unit.Options
	clock    shared.Clock
}

// NewImportUnitHandler creates a new ImportUnitHandler. index may be nil
// when sheet watching is not used.
func NewImportUnitHandler(
	unitRepo unit.UnitRepository,
	sheets common.DefinitionLoader,
	index common.SheetIndex,
	recorder *services.ReconcileRecorder,
	issuer unit.IDIssuer,
	options unit.Options,
	clock shared.Clock,
) *ImportUnitHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ImportUnitHandler{
		unitRepo: unitRepo,
		sheets:   sheets,
		index:    index,
		recorder: recorder,
		issuer:   issuer,
		options:  options,
		clock:    clock,
	}
}

// Handle executes the ImportUnit command
func (h *ImportUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportUnitCommand")
	}

	def, err := h.sheets.Load(cmd.SheetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read design sheet: %w", err)
	}

	u, err := unit.New(uuid.New(), def, nil, h.options, h.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	if cmd.Site != "" {
		site, err := unit.ParseSite(cmd.Site)
		if err != nil {
			return nil, shared.NewValidationError("site", err.Error())
		}
		u.SetSite(site)
	}
	u.SetFluffName(cmd.FluffName)

	report, err := u.Reconcile(true, h.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile new unit: %w", err)
	}
	u.ResetCrewAndComposite()
	u.AddHistory(fmt.Sprintf("%s imported from %s", shared.CampaignDate(h.clock), cmd.SheetPath))

	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	if h.index != nil {
		if err := h.index.BindSheet(ctx, u.ID(), cmd.SheetPath); err != nil {
			return nil, fmt.Errorf("failed to remember design sheet: %w", err)
		}
	}
	if err := h.recorder.Record(ctx, u, services.TriggerImport, report); err != nil {
		return nil, err
	}

	return &ImportUnitResponse{
		UnitID: u.ID(),
		Name:   u.Name(),
		Parts:  len(u.Parts()),
		Report: report,
	}, nil
}

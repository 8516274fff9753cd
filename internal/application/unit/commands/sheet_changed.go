package commands

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// SheetChangedCommand re-reads a design sheet and reconciles every unit
// imported from it
type SheetChangedCommand struct {
	SheetPath string
}

// SheetChangedResponse lists the reconciled units
type SheetChangedResponse struct {
	Units   []string
	Reports []*unit.ReconcileReport
}

// SheetChangedHandler handles the SheetChanged command
type SheetChangedHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
	sheets   common.DefinitionLoader
	index    common.SheetIndex
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
}

// NewSheetChangedHandler creates a new SheetChangedHandler
func NewSheetChangedHandler(
	unitRepo unit.UnitRepository,
	sheets common.DefinitionLoader,
	index common.SheetIndex,
	recorder *services.ReconcileRecorder,
	issuer unit.IDIssuer,
) *SheetChangedHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	return &SheetChangedHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
		sheets:   sheets,
		index:    index,
		recorder: recorder,
		issuer:   issuer,
	}
}

// Handle executes the SheetChanged command. Each unit gets its own parse of
// the sheet so they never share a definition.
func (h *SheetChangedHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SheetChangedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SheetChangedCommand")
	}

	ids, err := h.index.UnitsForSheet(ctx, cmd.SheetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find units for sheet: %w", err)
	}

	resp := &SheetChangedResponse{}
	var errs error
	for _, id := range ids {
		u, err := h.loader.Load(ctx, id)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		report, err := h.refresh(ctx, u, cmd.SheetPath)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", u.Name(), err))
			continue
		}
		resp.Units = append(resp.Units, u.Name())
		resp.Reports = append(resp.Reports, report)
	}
	if errs != nil {
		common.LoggerFromContext(ctx).Log(common.LevelError, "Sheet refresh failed for some units", map[string]interface{}{
			"action": "sheet_changed",
			"sheet":  cmd.SheetPath,
			"error":  errs.Error(),
		})
	}
	return resp, errs
}

func (h *SheetChangedHandler) refresh(ctx context.Context, u *unit.Unit, path string) (*unit.ReconcileReport, error) {
	def, err := h.sheets.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design sheet: %w", err)
	}
	previous := u.Definition()
	if err := u.ReplaceDefinition(def); err != nil {
		return nil, err
	}
	report, err := u.Reconcile(true, h.issuer)
	if err != nil {
		_ = u.ReplaceDefinition(previous)
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	u.ResetCrewAndComposite()
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	return report, h.recorder.Record(ctx, u, services.TriggerWatch, report)
}

package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// ReconcileUnitCommand brings a unit's parts in line with its definition
type ReconcileUnitCommand struct {
	UnitID             uuid.UUID
	CreateMissingParts bool
	Trigger            string // Optional: defaults to manual
}

// ReconcileUnitResponse carries the registry changes
type ReconcileUnitResponse struct {
	Report *unit.ReconcileReport
}

// ReconcileUnitHandler handles the ReconcileUnit command
type ReconcileUnitHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
}

// NewReconcileUnitHandler creates a new ReconcileUnitHandler. A nil issuer
// hands out random ids.
func NewReconcileUnitHandler(
	unitRepo unit.UnitRepository,
	recorder *services.ReconcileRecorder,
	issuer unit.IDIssuer,
) *ReconcileUnitHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	return &ReconcileUnitHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
		recorder: recorder,
		issuer:   issuer,
	}
}

// Handle executes the ReconcileUnit command
func (h *ReconcileUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ReconcileUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReconcileUnitCommand")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}

	report, err := u.Reconcile(cmd.CreateMissingParts, h.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile %s: %w", u.Name(), err)
	}
	u.ResetCrewAndComposite()

	if err := h.unitRepo.Save(ctx, u); err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelError, "Failed to save reconciled unit", map[string]interface{}{
			"unit_id": u.ID().String(),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	trigger := cmd.Trigger
	if trigger == "" {
		trigger = services.TriggerManual
	}
	if err := h.recorder.Record(ctx, u, trigger, report); err != nil {
		return nil, err
	}

	return &ReconcileUnitResponse{Report: report}, nil
}

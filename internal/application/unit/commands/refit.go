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

// BeginRefitCommand schedules a refit to the design in a sheet
type BeginRefitCommand struct {
	UnitID    uuid.UUID
	SheetPath string
	Minutes   int
	TechID    uuid.UUID
	Cost      float64
}

// CompleteRefitCommand finishes a refit now, whatever time is left
type CompleteRefitCommand struct {
	UnitID uuid.UUID
}

// CancelRefitCommand drops a pending refit
type CancelRefitCommand struct {
	UnitID uuid.UUID
}

// RefitResponse reports the refit state after the command
type RefitResponse struct {
	Refitting   bool
	MinutesLeft int
	Report      *unit.ReconcileReport // Set when the refit completed
}

// RefitHandler handles the BeginRefit, CompleteRefit and CancelRefit commands
type RefitHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
	sheets   common.DefinitionLoader
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
}

// NewRefitHandler creates a new RefitHandler
func NewRefitHandler(
	unitRepo unit.UnitRepository,
	sheets common.DefinitionLoader,
	recorder *services.ReconcileRecorder,
	issuer unit.IDIssuer,
) *RefitHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	return &RefitHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
		sheets:   sheets,
		recorder: recorder,
		issuer:   issuer,
	}
}

// Handle executes any of the refit commands
func (h *RefitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *BeginRefitCommand:
		return h.begin(ctx, cmd)
	case *CompleteRefitCommand:
		return h.complete(ctx, cmd)
	case *CancelRefitCommand:
		return h.cancel(ctx, cmd)
	default:
		return nil, fmt.Errorf("invalid request type: expected a refit command")
	}
}

func (h *RefitHandler) begin(ctx context.Context, cmd *BeginRefitCommand) (*RefitResponse, error) {
	if cmd.Minutes < 0 {
		return nil, shared.NewValidationError("minutes", "must not be negative")
	}
	def, err := h.sheets.Load(cmd.SheetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read refit design: %w", err)
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	if err := u.BeginRefit(def, cmd.Minutes, cmd.TechID, shared.Money(cmd.Cost)); err != nil {
		return nil, fmt.Errorf("failed to begin refit: %w", err)
	}
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Refit started", map[string]interface{}{
		"action":  "begin_refit",
		"unit_id": u.ID().String(),
		"sheet":   cmd.SheetPath,
		"minutes": cmd.Minutes,
	})
	return &RefitResponse{Refitting: true, MinutesLeft: cmd.Minutes}, nil
}

func (h *RefitHandler) complete(ctx context.Context, cmd *CompleteRefitCommand) (*RefitResponse, error) {
	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	report, err := u.CompleteRefit(h.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to complete refit: %w", err)
	}
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	if err := h.recorder.Record(ctx, u, services.TriggerRefit, report); err != nil {
		return nil, err
	}
	return &RefitResponse{Report: report}, nil
}

func (h *RefitHandler) cancel(ctx context.Context, cmd *CancelRefitCommand) (*RefitResponse, error) {
	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	if !u.CancelRefit() {
		return nil, shared.NewUnitError("no refit in progress", u.ID().String())
	}
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	return &RefitResponse{}, nil
}

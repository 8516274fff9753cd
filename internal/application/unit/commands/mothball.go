package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// StartMothballCommand begins putting a unit into storage
type StartMothballCommand struct {
	UnitID uuid.UUID
	TechID uuid.UUID // Optional: the tech doing the work
	GM     bool      // Complete at once
}

// StartActivationCommand begins taking a unit out of storage
type StartActivationCommand struct {
	UnitID uuid.UUID
	TechID uuid.UUID
	GM     bool
}

// CancelMothballCommand abandons a running mothball or activation
type CancelMothballCommand struct {
	UnitID uuid.UUID
}

// MothballResponse reports where the unit stands after the command
type MothballResponse struct {
	From        unit.MothballStatus
	To          unit.MothballStatus
	MinutesLeft int
	Status      string
}

// MothballHandler handles the StartMothball, StartActivation and CancelMothball commands
type MothballHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
}

// NewMothballHandler creates a new MothballHandler
func NewMothballHandler(unitRepo unit.UnitRepository) *MothballHandler {
	return &MothballHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
	}
}

// Handle executes any of the mothball commands
func (h *MothballHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		unitID uuid.UUID
		action string
		apply  func(u *unit.Unit) error
	)

	switch cmd := request.(type) {
	case *StartMothballCommand:
		unitID, action = cmd.UnitID, "start_mothball"
		apply = func(u *unit.Unit) error { return u.StartMothballing(cmd.TechID, cmd.GM) }
	case *StartActivationCommand:
		unitID, action = cmd.UnitID, "start_activation"
		apply = func(u *unit.Unit) error { return u.StartActivating(cmd.TechID, cmd.GM) }
	case *CancelMothballCommand:
		unitID, action = cmd.UnitID, "cancel_mothball"
		apply = func(u *unit.Unit) error { return u.CancelMothballOrActivation() }
	default:
		return nil, fmt.Errorf("invalid request type: expected a mothball command")
	}

	u, err := h.loader.Load(ctx, unitID)
	if err != nil {
		return nil, err
	}

	from := u.MothballStatus()
	if err := apply(u); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	to := u.MothballStatus()

	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	metrics.RecordMothballTransition(string(u.Category()), from, to)
	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Mothball state changed", map[string]interface{}{
		"action":       action,
		"unit_id":      u.ID().String(),
		"from":         string(from),
		"to":           string(to),
		"minutes_left": u.MothballTime(),
	})

	return &MothballResponse{
		From:        from,
		To:          to,
		MinutesLeft: u.MothballTime(),
		Status:      u.Status(),
	}, nil
}

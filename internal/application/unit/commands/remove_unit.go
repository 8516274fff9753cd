package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// RemoveUnitCommand deletes a unit and its parts
type RemoveUnitCommand struct {
	UnitID uuid.UUID
}

// RemoveUnitResponse lists the people freed by the removal
type RemoveUnitResponse struct {
	Name     string
	Released []uuid.UUID
}

// RemoveUnitHandler handles the RemoveUnit command
type RemoveUnitHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
}

// NewRemoveUnitHandler creates a new RemoveUnitHandler
func NewRemoveUnitHandler(unitRepo unit.UnitRepository) *RemoveUnitHandler {
	return &RemoveUnitHandler{unitRepo: unitRepo, loader: services.NewUnitLoader(unitRepo)}
}

// Handle executes the RemoveUnit command
func (h *RemoveUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveUnitCommand")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	released := lo.Uniq(lo.Map(u.Assignments(), func(a unit.Assignment, _ int) uuid.UUID { return a.PersonID }))

	if err := h.unitRepo.Delete(ctx, u.ID()); err != nil {
		return nil, fmt.Errorf("failed to delete unit: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Unit removed", map[string]interface{}{
		"action":   "remove_unit",
		"unit":     u.Name(),
		"released": len(released),
	})
	return &RemoveUnitResponse{Name: u.Name(), Released: released}, nil
}

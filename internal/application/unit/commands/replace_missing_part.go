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

// ReplaceMissingPartCommand fills a missing slot from spare stock
type ReplaceMissingPartCommand struct {
	UnitID uuid.UUID
	PartID uuid.UUID
}

// ReplaceMissingPartResponse reports the replaced part and remaining stock
type ReplaceMissingPartResponse struct {
	PartName  string
	Remaining int
}

// ReplaceMissingPartHandler handles the ReplaceMissingPart command
type ReplaceMissingPartHandler struct {
	unitRepo  unit.UnitRepository
	loader    *services.UnitLoader
	inventory common.InventoryRepository
}

// NewReplaceMissingPartHandler creates a new ReplaceMissingPartHandler
func NewReplaceMissingPartHandler(unitRepo unit.UnitRepository, inventory common.InventoryRepository) *ReplaceMissingPartHandler {
	return &ReplaceMissingPartHandler{
		unitRepo:  unitRepo,
		loader:    services.NewUnitLoader(unitRepo),
		inventory: inventory,
	}
}

// Handle executes the ReplaceMissingPart command. Stock is only written back
// once the unit has been saved.
func (h *ReplaceMissingPartHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ReplaceMissingPartCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReplaceMissingPartCommand")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	stock, err := h.inventory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spare stock: %w", err)
	}

	if err := u.ReplaceMissingPart(cmd.PartID, stock); err != nil {
		return nil, err
	}
	p, _ := u.Part(cmd.PartID)

	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	if err := h.inventory.Save(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to save spare stock: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Missing part replaced from stock", map[string]interface{}{
		"action":    "replace_missing_part",
		"unit":      u.Name(),
		"part":      p.Name(),
		"remaining": stock[p.Name()],
	})

	return &ReplaceMissingPartResponse{
		PartName:  p.Name(),
		Remaining: stock[p.Name()],
	}, nil
}

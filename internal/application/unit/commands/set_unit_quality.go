package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// SetUnitQualityCommand sets every part of a unit to one grade
type SetUnitQualityCommand struct {
	UnitID  uuid.UUID
	Quality string // Letter grade, read with the campaign's naming
}

// SetUnitQualityResponse carries the resulting grade
type SetUnitQualityResponse struct {
	Quality string
}

// SetUnitQualityHandler handles the SetUnitQuality command
type SetUnitQualityHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
}

// NewSetUnitQualityHandler creates a new SetUnitQualityHandler
func NewSetUnitQualityHandler(unitRepo unit.UnitRepository) *SetUnitQualityHandler {
	return &SetUnitQualityHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
	}
}

// Handle executes the SetUnitQuality command
func (h *SetUnitQualityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetUnitQualityCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetUnitQualityCommand")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}

	q, err := part.ParseQuality(cmd.Quality, u.Options().ReverseQualityNames)
	if err != nil {
		return nil, shared.NewValidationError("quality", err.Error())
	}
	u.SetQuality(q)

	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}
	return &SetUnitQualityResponse{Quality: u.QualityName()}, nil
}

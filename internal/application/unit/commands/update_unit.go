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

// UpdateUnitCommand changes campaign bookkeeping on a unit. Nil fields are
// left alone.
type UpdateUnitCommand struct {
	UnitID        uuid.UUID
	FluffName     *string
	Site          *string
	ScenarioID    *int
	ForceID       *int
	DaysToArrival *int
	Salvage       *bool
}

// UpdateUnitResponse carries the resulting status line
type UpdateUnitResponse struct {
	Status string
}

// UpdateUnitHandler handles the UpdateUnit command
type UpdateUnitHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
}

// NewUpdateUnitHandler creates a new UpdateUnitHandler
func NewUpdateUnitHandler(unitRepo unit.UnitRepository) *UpdateUnitHandler {
	return &UpdateUnitHandler{unitRepo: unitRepo, loader: services.NewUnitLoader(unitRepo)}
}

// Handle executes the UpdateUnit command
func (h *UpdateUnitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateUnitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateUnitCommand")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}
	if cmd.Site != nil {
		site, err := unit.ParseSite(*cmd.Site)
		if err != nil {
			return nil, shared.NewValidationError("site", err.Error())
		}
		u.SetSite(site)
		changed["site"] = site.String()
	}
	if cmd.DaysToArrival != nil {
		if *cmd.DaysToArrival < 0 {
			return nil, shared.NewValidationError("days_to_arrival", "cannot be negative")
		}
		u.SetDaysToArrival(*cmd.DaysToArrival)
		changed["days_to_arrival"] = *cmd.DaysToArrival
	}
	if cmd.FluffName != nil {
		u.SetFluffName(*cmd.FluffName)
		changed["fluff_name"] = *cmd.FluffName
	}
	if cmd.ScenarioID != nil {
		u.SetScenarioID(*cmd.ScenarioID)
		changed["scenario_id"] = *cmd.ScenarioID
	}
	if cmd.ForceID != nil {
		u.SetForceID(*cmd.ForceID)
		changed["force_id"] = *cmd.ForceID
	}
	if cmd.Salvage != nil {
		u.SetSalvage(*cmd.Salvage)
		changed["salvage"] = *cmd.Salvage
	}

	if len(changed) > 0 {
		if err := h.unitRepo.Save(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to save unit: %w", err)
		}
		changed["action"] = "update_unit"
		changed["unit"] = u.Name()
		common.LoggerFromContext(ctx).Log(common.LevelInfo, "Unit updated", changed)
	}

	return &UpdateUnitResponse{Status: u.Status()}, nil
}

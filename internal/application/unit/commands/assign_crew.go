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

// AssignCrewCommand seats a person in a crew role
type AssignCrewCommand struct {
	UnitID   uuid.UUID
	PersonID uuid.UUID
	Role     string
}

// UnassignCrewCommand takes a person off a unit in every role they hold
type UnassignCrewCommand struct {
	UnitID   uuid.UUID
	PersonID uuid.UUID
}

// CrewResponse reports the crew after a change
type CrewResponse struct {
	Commander   string
	CrewSize    int
	FullyCrewed bool
	Changed     bool
}

// AssignCrewHandler handles the AssignCrew and UnassignCrew commands
type AssignCrewHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
}

// NewAssignCrewHandler creates a new AssignCrewHandler
func NewAssignCrewHandler(unitRepo unit.UnitRepository) *AssignCrewHandler {
	return &AssignCrewHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
	}
}

// Handle executes either crew command
func (h *AssignCrewHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *AssignCrewCommand:
		return h.assign(ctx, cmd)
	case *UnassignCrewCommand:
		return h.unassign(ctx, cmd)
	default:
		return nil, fmt.Errorf("invalid request type: expected *AssignCrewCommand or *UnassignCrewCommand")
	}
}

func (h *AssignCrewHandler) assign(ctx context.Context, cmd *AssignCrewCommand) (*CrewResponse, error) {
	role := unit.Role(cmd.Role)
	if !role.IsValid() {
		return nil, shared.NewValidationError("role", fmt.Sprintf("unknown crew role %q", cmd.Role))
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	if role != unit.RoleTech {
		if err := h.ensureUnattached(ctx, u, cmd.PersonID, role); err != nil {
			return nil, err
		}
	}
	if err := u.Assign(cmd.PersonID, role); err != nil {
		return nil, fmt.Errorf("failed to assign crew: %w", err)
	}
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Crew assigned", map[string]interface{}{
		"action":    "assign_crew",
		"unit_id":   u.ID().String(),
		"person_id": cmd.PersonID.String(),
		"role":      string(role),
	})
	return crewResponse(u, true), nil
}

// ensureUnattached refuses a crew role to anyone already crewing another unit.
// A tech may look after several units.
func (h *AssignCrewHandler) ensureUnattached(ctx context.Context, target *unit.Unit, personID uuid.UUID, role unit.Role) error {
	units, err := h.loader.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, other := range units {
		if other.ID() != target.ID() && other.HoldsCrewRole(personID) {
			return shared.NewCrewAssignmentError(target.ID().String(), personID.String(), string(role),
				fmt.Sprintf("already crews %s", other.Name()))
		}
	}
	return nil
}

func (h *AssignCrewHandler) unassign(ctx context.Context, cmd *UnassignCrewCommand) (*CrewResponse, error) {
	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}
	if !u.Remove(cmd.PersonID) {
		return crewResponse(u, false), nil
	}
	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Crew removed", map[string]interface{}{
		"action":    "unassign_crew",
		"unit_id":   u.ID().String(),
		"person_id": cmd.PersonID.String(),
	})
	return crewResponse(u, true), nil
}

func crewResponse(u *unit.Unit, changed bool) *CrewResponse {
	resp := &CrewResponse{
		CrewSize:    len(u.ActiveCrew()),
		FullyCrewed: u.IsFullyCrewed(),
		Changed:     changed,
	}
	if c := u.Commander(); c != nil {
		resp.Commander = c.FullTitle()
	}
	return resp
}

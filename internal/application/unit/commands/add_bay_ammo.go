package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// AddBayAmmoCommand adds an empty bin of a new ammunition type to a weapon bay
type AddBayAmmoCommand struct {
	UnitID      uuid.UUID
	BayIndex    int
	AmmoType    string
	Name        string // Optional: defaults to "<type> Ammo"
	ShotsPerTon int
	Cost        float64
}

// AddBayAmmoResponse carries the bin that will hold the rounds
type AddBayAmmoResponse struct {
	PartID      uuid.UUID
	Name        string
	ShotsNeeded int
}

// AddBayAmmoHandler handles the AddBayAmmo command
type AddBayAmmoHandler struct {
	unitRepo unit.UnitRepository
	loader   *services.UnitLoader
	recorder *services.ReconcileRecorder
	issuer   unit.IDIssuer
}

// NewAddBayAmmoHandler creates a new AddBayAmmoHandler
func NewAddBayAmmoHandler(unitRepo unit.UnitRepository, recorder *services.ReconcileRecorder, issuer unit.IDIssuer) *AddBayAmmoHandler {
	if issuer == nil {
		issuer = unit.DefaultIDIssuer
	}
	return &AddBayAmmoHandler{
		unitRepo: unitRepo,
		loader:   services.NewUnitLoader(unitRepo),
		recorder: recorder,
		issuer:   issuer,
	}
}

// Handle executes the AddBayAmmo command
func (h *AddBayAmmoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AddBayAmmoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddBayAmmoCommand")
	}
	if cmd.AmmoType == "" {
		return nil, shared.NewValidationError("ammo_type", "is required")
	}
	if cmd.ShotsPerTon <= 0 {
		return nil, shared.NewValidationError("shots_per_ton", "must be positive")
	}

	u, err := h.loader.Load(ctx, cmd.UnitID)
	if err != nil {
		return nil, err
	}

	name := cmd.Name
	if name == "" {
		name = cmd.AmmoType + " Ammo"
	}
	template := loadout.Mount{
		Class:     loadout.MountAmmo,
		Name:      name,
		AmmoType:  cmd.AmmoType,
		FullShots: cmd.ShotsPerTon,
		Cost:      cmd.Cost,
		Tonnage:   1,
	}
	before := len(u.Parts())
	bin, err := u.AddBayAmmoBin(template, cmd.BayIndex, h.issuer)
	if err != nil {
		return nil, err
	}

	if err := h.unitRepo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	if len(u.Parts()) > before {
		report := &unit.ReconcileReport{}
		report.Ops = append(report.Ops, unit.ReconcileOp{Action: unit.ActionCreate, Key: bin.Key(), PartID: bin.ID(), Name: bin.Name()})
		if err := h.recorder.Record(ctx, u, services.TriggerAmmo, report); err != nil {
			return nil, err
		}
	} else {
		common.LoggerFromContext(ctx).Log(common.LevelDebug, "Reusing empty bay ammo bin", map[string]interface{}{
			"action": "add_bay_ammo",
			"unit":   u.Name(),
			"bin":    bin.ID().String(),
		})
	}

	return &AddBayAmmoResponse{
		PartID:      bin.ID(),
		Name:        bin.Name(),
		ShotsNeeded: bin.Ammo().ShotsNeeded,
	}, nil
}

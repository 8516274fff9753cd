package unit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// Refit is a pending change of configuration
type Refit struct {
	newDefinition loadout.Definition
	minutesLeft   int
	techID        uuid.UUID
	cost          shared.Money
}

// NewRefit builds a refit record, e.g. when loading a saved unit
func NewRefit(def loadout.Definition, minutesLeft int, techID uuid.UUID, cost shared.Money) *Refit {
	if minutesLeft < 0 {
		minutesLeft = 0
	}
	return &Refit{newDefinition: def, minutesLeft: minutesLeft, techID: techID, cost: cost}
}

func (r *Refit) NewDefinition() loadout.Definition { return r.newDefinition }
func (r *Refit) MinutesLeft() int                  { return r.minutesLeft }
func (r *Refit) TechID() uuid.UUID                 { return r.techID }
func (r *Refit) Cost() shared.Money                { return r.cost }
func (r *Refit) IsDone() bool                      { return r.minutesLeft == 0 }

// BeginRefit starts converting the unit to a new definition
func (u *Unit) BeginRefit(def loadout.Definition, minutes int, techID uuid.UUID, cost shared.Money) error {
	if u.refit != nil {
		return shared.NewRefitInProgressError(u.id.String())
	}
	if def == nil {
		return shared.NewValidationError("definition", "is required")
	}
	if def.Profile().Category != u.Category() {
		return shared.NewValidationError("category", fmt.Sprintf("cannot refit %s into %s", u.Category(), def.Profile().Category))
	}
	if u.IsMothballed() || u.InTransition() {
		return shared.NewUnitError("cannot refit a mothballed unit", u.id.String())
	}
	u.refit = NewRefit(def, minutes, techID, cost)
	return nil
}

// RestoreRefit attaches a refit loaded from storage
func (u *Unit) RestoreRefit(r *Refit) {
	u.refit = r
}

// WorkRefit spends tech minutes on the refit. Returns true when it is done.
func (u *Unit) WorkRefit(minutes int) bool {
	if u.refit == nil || minutes <= 0 {
		return false
	}
	u.refit.minutesLeft -= minutes
	if u.refit.minutesLeft < 0 {
		u.refit.minutesLeft = 0
	}
	return u.refit.minutesLeft == 0
}

// CancelRefit drops the pending refit
func (u *Unit) CancelRefit() bool {
	if u.refit == nil {
		return false
	}
	u.refit = nil
	return true
}

// CompleteRefit swaps in the new definition and reconciles the parts against
// it. Ammo bins whose mount survives carry their rounds over.
func (u *Unit) CompleteRefit(issue IDIssuer) (*ReconcileReport, error) {
	if u.refit == nil {
		return nil, shared.NewUnitError("no refit in progress", u.id.String())
	}
	next := u.refit.newDefinition

	// The pending design stays as it was unless the refit goes through.
	crew, externalID := next.Crew(), next.ExternalID()
	carried := make(map[int]int)
	undo := func() {
		for index, shots := range carried {
			_ = next.SetShotsLeft(index, shots)
		}
		next.ApplyCrew(crew)
		next.SetExternalID(externalID)
	}

	mounts := make(map[int]loadout.Mount)
	for _, m := range next.Mounts() {
		mounts[m.Index] = m
	}
	for _, p := range u.parts {
		if p.Kind() != part.KindAmmoBin || p.IsMissing() {
			continue
		}
		m, ok := mounts[p.Key().Index]
		if !ok || m.Class != loadout.MountAmmo || m.AmmoType != p.Ammo().Type {
			continue
		}
		if _, seen := carried[m.Index]; !seen {
			carried[m.Index] = m.ShotsLeft
		}
		if err := next.SetShotsLeft(m.Index, p.ShotsLeft()); err != nil {
			undo()
			return nil, fmt.Errorf("failed to carry ammo for %s: %w", p.Key(), err)
		}
	}

	previous := u.definition
	if err := u.ReplaceDefinition(next); err != nil {
		undo()
		return nil, err
	}
	report, err := u.Reconcile(true, issue)
	if err != nil {
		u.definition = previous
		undo()
		return nil, err
	}
	u.refit = nil
	u.ResetCrewAndComposite()
	return report, nil
}

package unit

import (
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
)

// Status is the one-line state shown in unit lists
func (u *Unit) Status() string {
	switch {
	case u.IsActivating():
		return fmt.Sprintf("Activating (%dm)", u.MothballTime())
	case u.IsMothballing():
		return fmt.Sprintf("Mothballing (%dm)", u.MothballTime())
	case u.IsMothballed():
		return "Mothballed"
	case u.IsDeployed():
		return "Deployed"
	case !u.IsPresent():
		return fmt.Sprintf("In transit (%d days)", u.daysToArrival)
	case u.IsRefitting():
		return "Refitting"
	case !u.IsRepairable():
		return "Salvage"
	case !u.IsFunctional():
		return "Inoperable"
	}
	return u.DamageState().String()
}

// DamageState is the oracle's damage assessment
func (u *Unit) DamageState() loadout.DamageLevel {
	return u.definition.DamageLevel()
}

// IsFunctional is false when the unit cannot take the field at all
func (u *Unit) IsFunctional() bool {
	profile := u.definition.Profile()
	switch c := profile.Category; {
	case c.IsMech():
		engineHits, cockpitHits := 0, 0
		for _, comp := range u.definition.Components() {
			switch comp.Type {
			case loadout.ComponentEngine:
				engineHits += comp.Hits
			case loadout.ComponentCockpit:
				cockpitHits += comp.Hits
			}
		}
		for _, l := range u.definition.Locations() {
			if (l.Role == loadout.RoleCenterTorso || l.Role == loadout.RoleHead) && l.IsBad() {
				return false
			}
		}
		return engineHits <= 2 && cockpitHits == 0
	case c.IsTank():
		for _, l := range u.definition.Locations() {
			if l.Role != loadout.RoleTurret && l.IsBad() {
				return false
			}
		}
		if profile.Motive == loadout.MotiveVTOL && profile.WalkMP <= 0 {
			return false
		}
	case c.IsAero():
		if profile.WalkMP <= 0 && !c.IsJumpship() {
			return false
		}
		return profile.SI > 0
	}
	return true
}

// IsRepairable is false for wrecks only fit for salvage
func (u *Unit) IsRepairable() bool {
	profile := u.definition.Profile()
	switch c := profile.Category; {
	case c.IsMech():
		for _, l := range u.definition.Locations() {
			if l.Role == loadout.RoleCenterTorso && l.Internal <= 0 {
				return false
			}
		}
	case c.IsTank():
		for _, l := range u.definition.Locations() {
			if l.Role == loadout.RoleTurret || l.Role == loadout.RoleBody {
				continue
			}
			if l.Internal <= 0 {
				return false
			}
		}
	case c.IsAero():
		return profile.SI > 0
	}
	return true
}

// CheckDeployment returns why the unit cannot deploy, or "" if it can
func (u *Unit) CheckDeployment() string {
	switch {
	case !u.IsFunctional():
		return "unit is not functional"
	case u.IsUnmanned():
		return "unit has no pilot"
	case u.IsRefitting():
		return "unit is being refit"
	case u.Category().IsTank() && len(u.ActiveCrew()) < u.FullCrewSize():
		return fmt.Sprintf("This vehicle requires a crew of %d", u.FullCrewSize())
	}
	if u.Category() == loadout.CategoryBattleArmor {
		for _, l := range u.definition.Locations() {
			if l.Role == loadout.RoleTrooper && l.Internal == 0 {
				return "This BattleArmor unit has empty suits. Fill them with pilots or salvage them."
			}
		}
	}
	return ""
}

// PartsNeedingFixing lists parts that need work nobody is doing yet
func (u *Unit) PartsNeedingFixing() []*part.Part {
	var out []*part.Part
	for _, p := range u.parts {
		if p.NeedsFixing() {
			out = append(out, p)
		}
	}
	return out
}

// SalvageableParts lists parts that can be pulled off the unit
func (u *Unit) SalvageableParts() []*part.Part {
	var out []*part.Part
	for _, p := range u.parts {
		if !p.IsMissing() && !p.IsBeingWorkedOn() {
			out = append(out, p)
		}
	}
	return out
}

// IsServiceable is true when there is repair work to do, or salvage work on
// units marked for salvage or beyond repair
func (u *Unit) IsServiceable() bool {
	if u.salvage || !u.IsRepairable() {
		return len(u.SalvageableParts()) > 0
	}
	return len(u.PartsNeedingFixing()) > 0
}

// PartsNeeded lists what has to be bought before repairs can finish: missing
// parts without a spare, the first armor short of spare points, and ammo
// bins short of spare rounds
func (u *Unit) PartsNeeded(stock Stock) []*part.Part {
	if u.salvage || !u.IsRepairable() {
		return nil
	}
	if stock == nil {
		stock = NoStock{}
	}

	var out []*part.Part
	armorFound := false
	for _, p := range u.parts {
		switch {
		case p.IsMissing():
			if p.NeedsFixing() && !stock.Available(p, 1) {
				out = append(out, p)
			}
		case p.Kind() == part.KindArmor:
			if armorFound || !p.NeedsFixing() {
				continue
			}
			a := p.Armor()
			if !stock.Available(p, a.Capacity-a.Amount) {
				out = append(out, p)
				armorFound = true
			}
		case p.Kind() == part.KindAmmoBin:
			if p.Ammo().ShotsNeeded > 0 && !stock.Available(p, p.Ammo().ShotsNeeded) {
				out = append(out, p)
			}
		}
	}
	return out
}

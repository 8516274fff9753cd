package unit

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// Role is a crew role tag
type Role string

const (
	RoleDriver      Role = "DRIVER"
	RoleGunner      Role = "GUNNER"
	RoleVesselCrew  Role = "VESSEL_CREW"
	RoleNavigator   Role = "NAVIGATOR"
	RoleTechOfficer Role = "TECH_OFFICER"
	RolePilot       Role = "PILOT"
	RoleTech        Role = "TECH"
)

var validRoles = map[Role]bool{
	RoleDriver: true, RoleGunner: true, RoleVesselCrew: true, RoleNavigator: true,
	RoleTechOfficer: true, RolePilot: true, RoleTech: true,
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

// Assignment is one person holding one role
type Assignment struct {
	PersonID uuid.UUID
	Role     Role
}

// UsesSoloPilot is true for units run by a single pilot
func (u *Unit) UsesSoloPilot() bool {
	return u.Category().UsesSoloPilot()
}

// UsesSoldiers is true for infantry, whose troopers are the crew
func (u *Unit) UsesSoldiers() bool {
	return u.Category().UsesSoldiers()
}

// IsSelfCrewed is true for units that maintain themselves
func (u *Unit) IsSelfCrewed() bool {
	c := u.Category()
	return c == loadout.CategoryDropship || c.IsJumpship() || c.IsConventionalInfantry()
}

func (u *Unit) skipsWoundedCrew() bool {
	return u.Category().IsTank() || u.Category().IsInfantry()
}

// Capacity

// DriverNeeds is how many drivers the unit seats
func (u *Unit) DriverNeeds() int {
	p := u.definition.Profile()
	switch {
	case u.UsesSoloPilot():
		return 1
	case u.UsesSoldiers():
		return p.Troopers
	}
	return p.DriverNeeds
}

// GunnerNeeds is how many gunners the unit seats
func (u *Unit) GunnerNeeds() int {
	p := u.definition.Profile()
	switch {
	case u.UsesSoloPilot():
		return 0
	case u.UsesSoldiers():
		return p.Troopers
	}
	return p.GunnerNeeds
}

// VesselCrewNeeds is the number of non-driving crew seats on spacecraft
func (u *Unit) VesselCrewNeeds() int {
	c := u.Category()
	if !c.IsSmallCraft() && !c.IsJumpship() {
		return 0
	}
	return u.definition.Profile().VesselNeeds
}

// FullCrewSize is the headcount of a complete crew
func (u *Unit) FullCrewSize() int {
	p := u.definition.Profile()
	if p.FullCrewSize > 0 {
		return p.FullCrewSize
	}
	size := u.DriverNeeds() + u.VesselCrewNeeds()
	if !u.UsesSoloPilot() && !u.UsesSoldiers() {
		size += u.GunnerNeeds()
	}
	if u.needsNavigator() {
		size++
	}
	return size
}

func (u *Unit) needsNavigator() bool {
	c := u.Category()
	return c.IsJumpship() && c != loadout.CategorySpaceStation
}

func (u *Unit) CanTakeMoreDrivers() bool {
	return len(u.drivers) < u.DriverNeeds()
}

func (u *Unit) CanTakeMoreGunners() bool {
	return len(u.gunners) < u.GunnerNeeds()
}

func (u *Unit) CanTakeMoreVesselCrew() bool {
	return len(u.vesselCrew) < u.VesselCrewNeeds()
}

func (u *Unit) CanTakeNavigator() bool {
	return u.needsNavigator() && u.navigator == uuid.Nil
}

func (u *Unit) CanTakeTechOfficer() bool {
	p := u.definition.Profile()
	return u.techOfficer == uuid.Nil && (p.TechOfficer || (u.Category().IsTank() && p.CommandConsole))
}

func (u *Unit) CanTakeTech() bool {
	return u.tech == uuid.Nil && u.RequiresMaintenance() && !u.IsSelfCrewed()
}

// Crew views

// Crew is everyone aboard, each once: drivers, gunners, vessel crew, navigator, tech officer
func (u *Unit) Crew() []*personnel.Person {
	ids := append([]uuid.UUID(nil), u.drivers...)
	if !u.UsesSoloPilot() && !u.UsesSoldiers() {
		ids = append(ids, u.gunners...)
	}
	ids = append(ids, u.vesselCrew...)
	ids = append(ids, u.navigator, u.techOfficer)
	return u.people(lo.Uniq(ids))
}

// ActiveCrew is the crew minus wounded drivers and gunners on vehicles and infantry
func (u *Unit) ActiveCrew() []*personnel.Person {
	var crew []*personnel.Person
	fit := func(p *personnel.Person) bool {
		return !(u.skipsWoundedCrew() && p.Hits() > 0)
	}
	crew = append(crew, lo.Filter(u.people(u.drivers), func(p *personnel.Person, _ int) bool { return fit(p) })...)
	if !u.UsesSoloPilot() && !u.UsesSoldiers() {
		crew = append(crew, lo.Filter(u.people(u.gunners), func(p *personnel.Person, _ int) bool { return fit(p) })...)
	}
	crew = append(crew, u.people(u.vesselCrew)...)
	crew = append(crew, u.people([]uuid.UUID{u.navigator, u.techOfficer})...)
	return crew
}

// Commander is the highest ranked crew member. Ties go to vessel crew, then
// gunners, then drivers, then the navigator, and within a list to the first.
func (u *Unit) Commander() *personnel.Person {
	var commander *personnel.Person
	consider := func(p *personnel.Person, skipWounded bool) {
		if p == nil {
			return
		}
		if skipWounded && u.skipsWoundedCrew() && p.Hits() > 0 {
			return
		}
		if p.OutRanks(commander) {
			commander = p
		}
	}
	for _, p := range u.people(u.vesselCrew) {
		consider(p, false)
	}
	for _, p := range u.people(u.gunners) {
		consider(p, true)
	}
	for _, p := range u.people(u.drivers) {
		consider(p, true)
	}
	consider(u.person(u.navigator), false)
	return commander
}

// IsUnmanned is true when nobody can command the unit
func (u *Unit) IsUnmanned() bool {
	return u.Commander() == nil
}

// IsFullyCrewed is true when every seat is filled by someone fit to serve
func (u *Unit) IsFullyCrewed() bool {
	if u.needsNavigator() && u.person(u.navigator) == nil {
		return false
	}
	return len(u.ActiveCrew()) >= u.FullCrewSize()
}

// Assignments lists every role held on the unit, in list order
func (u *Unit) Assignments() []Assignment {
	var out []Assignment
	add := func(role Role, ids ...uuid.UUID) {
		for _, id := range ids {
			if id != uuid.Nil {
				out = append(out, Assignment{PersonID: id, Role: role})
			}
		}
	}
	if u.UsesSoloPilot() {
		add(RolePilot, u.drivers...)
	} else {
		add(RoleDriver, u.drivers...)
		add(RoleGunner, u.gunners...)
	}
	add(RoleVesselCrew, u.vesselCrew...)
	add(RoleNavigator, u.navigator)
	add(RoleTechOfficer, u.techOfficer)
	add(RoleTech, u.tech)
	return out
}

// Mutations. Every change re-runs the composer.

// Assign gives a person a role on the unit
func (u *Unit) Assign(personID uuid.UUID, role Role) error {
	p := u.person(personID)
	if p == nil {
		return shared.NewCrewAssignmentError(u.id.String(), personID.String(), string(role), "unknown person")
	}
	if role != RoleTech && (u.IsMothballed() || u.IsMothballing()) {
		return shared.NewCrewAssignmentError(u.id.String(), personID.String(), string(role), "unit is mothballed")
	}
	if role != RoleTech && u.holds(personID) {
		return shared.NewCrewAssignmentError(u.id.String(), personID.String(), string(role), "already assigned to this unit")
	}

	full := func() error {
		return shared.NewCrewAssignmentError(u.id.String(), personID.String(), string(role), "no seat available")
	}
	switch role {
	case RolePilot:
		if !u.UsesSoloPilot() && !u.UsesSoldiers() {
			return shared.NewCrewAssignmentError(u.id.String(), personID.String(), string(role), "unit has no pilot seat")
		}
		if !u.CanTakeMoreDrivers() {
			return full()
		}
		u.addPilotOrSoldier(personID)
	case RoleDriver:
		if u.UsesSoloPilot() || u.UsesSoldiers() {
			return u.Assign(personID, RolePilot)
		}
		if !u.CanTakeMoreDrivers() {
			return full()
		}
		u.drivers = append(u.drivers, personID)
	case RoleGunner:
		if u.UsesSoloPilot() || u.UsesSoldiers() {
			return u.Assign(personID, RolePilot)
		}
		if !u.CanTakeMoreGunners() {
			return full()
		}
		u.gunners = append(u.gunners, personID)
	case RoleVesselCrew:
		if !u.CanTakeMoreVesselCrew() {
			return full()
		}
		u.vesselCrew = append(u.vesselCrew, personID)
	case RoleNavigator:
		if !u.CanTakeNavigator() {
			return full()
		}
		u.navigator = personID
	case RoleTechOfficer:
		if !u.CanTakeTechOfficer() {
			return full()
		}
		u.techOfficer = personID
	case RoleTech:
		if !u.CanTakeTech() {
			return full()
		}
		u.tech = personID
		return nil
	default:
		return shared.NewValidationError("role", "unknown role "+string(role))
	}

	u.ResetCrewAndComposite()
	return nil
}

// addPilotOrSoldier seats a solo pilot once, or a trooper in both lists
func (u *Unit) addPilotOrSoldier(id uuid.UUID) {
	u.drivers = append(u.drivers, id)
	if u.UsesSoldiers() {
		u.gunners = append(u.gunners, id)
	}
}

// HoldsCrewRole reports whether the person sits in any crew role on the unit.
// The tech slot does not count.
func (u *Unit) HoldsCrewRole(id uuid.UUID) bool {
	return u.holds(id)
}

func (u *Unit) holds(id uuid.UUID) bool {
	return lo.Contains(u.drivers, id) || lo.Contains(u.gunners, id) || lo.Contains(u.vesselCrew, id) ||
		u.navigator == id || u.techOfficer == id
}

// Remove takes a person out of every role on the unit, the tech slot included.
// Returns false if they held none.
func (u *Unit) Remove(personID uuid.UUID) bool {
	removed := u.stripRoles(personID)
	if u.tech == personID {
		u.tech = uuid.Nil
		removed = true
	}
	if removed {
		u.ResetCrewAndComposite()
	}
	return removed
}

func (u *Unit) stripRoles(id uuid.UUID) bool {
	before := len(u.drivers) + len(u.gunners) + len(u.vesselCrew)
	u.drivers = lo.Without(u.drivers, id)
	u.gunners = lo.Without(u.gunners, id)
	u.vesselCrew = lo.Without(u.vesselCrew, id)
	removed := before != len(u.drivers)+len(u.gunners)+len(u.vesselCrew)
	if u.navigator == id {
		u.navigator = uuid.Nil
		removed = true
	}
	if u.techOfficer == id {
		u.techOfficer = uuid.Nil
		removed = true
	}
	return removed
}

// clearCrewRoles removes everyone but the tech, without recomposing
func (u *Unit) clearCrewRoles() {
	u.drivers = nil
	u.gunners = nil
	u.vesselCrew = nil
	u.navigator = uuid.Nil
	u.techOfficer = uuid.Nil
}

// PruneCrew drops references to people who are gone or no longer active.
// Returns the ids removed.
func (u *Unit) PruneCrew() []uuid.UUID {
	var gone []uuid.UUID
	for _, a := range u.Assignments() {
		p := u.person(a.PersonID)
		if p == nil || !p.IsActive() {
			gone = append(gone, a.PersonID)
		}
	}
	gone = lo.Uniq(gone)
	for _, id := range gone {
		u.stripRoles(id)
		if u.tech == id {
			u.tech = uuid.Nil
		}
	}
	if len(gone) > 0 {
		u.ResetCrewAndComposite()
	}
	return gone
}

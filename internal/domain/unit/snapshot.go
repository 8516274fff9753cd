package unit

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// PersonRef is a stored reference to a person: a UUID, or the integer
// surrogate used by legacy saves
type PersonRef string

// RefFor stores a person id. The nil id becomes the empty ref.
func RefFor(id uuid.UUID) PersonRef {
	if id == uuid.Nil {
		return ""
	}
	return PersonRef(id.String())
}

// LegacyRef stores an integer surrogate
func LegacyRef(n int) PersonRef {
	return PersonRef(strconv.Itoa(n))
}

func (r PersonRef) IsEmpty() bool { return r == "" }

// IsLegacy is true for integer surrogates
func (r PersonRef) IsLegacy() bool {
	_, err := strconv.Atoi(string(r))
	return err == nil
}

// ReferenceResolver turns stored refs into person ids. Legacy surrogates go
// through the map built once every person has loaded.
type ReferenceResolver struct {
	Legacy map[int]uuid.UUID
	Roster personnel.Roster
}

// Resolve returns the id for ref, false if it points at nobody
func (r ReferenceResolver) Resolve(ref PersonRef) (uuid.UUID, bool) {
	if ref.IsEmpty() {
		return uuid.Nil, false
	}
	if n, err := strconv.Atoi(string(ref)); err == nil {
		id, ok := r.Legacy[n]
		return id, ok && id != uuid.Nil
	}
	id, err := uuid.Parse(string(ref))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	if r.Roster != nil && r.Roster.Person(id) == nil {
		return uuid.Nil, false
	}
	return id, true
}

// RefitSnapshot is the stored form of a pending refit
type RefitSnapshot struct {
	Definition  loadout.Definition
	MinutesLeft int
	Tech        PersonRef
	Cost        shared.Money
}

// Snapshot is everything about a unit that is saved between sessions
type Snapshot struct {
	ID         uuid.UUID
	Definition loadout.Definition

	Site          Site
	Salvage       bool
	ForceID       int
	ScenarioID    int
	DaysToArrival int

	Drivers     []PersonRef
	Gunners     []PersonRef
	VesselCrew  []PersonRef
	Navigator   PersonRef
	TechOfficer PersonRef
	Tech        PersonRef

	Mothballed   bool
	MothballTime int
	Mothball     *MothballSnapshot

	DaysSinceMaintenance   int
	DaysActivelyMaintained int
	AstechDaysMaintained   int

	History               string
	FluffName             string
	LastMaintenanceReport string

	Refit *RefitSnapshot
	Parts []*part.Part
}

// ToSnapshot captures the unit for storage
func (u *Unit) ToSnapshot() *Snapshot {
	refs := func(ids []uuid.UUID) []PersonRef {
		out := make([]PersonRef, 0, len(ids))
		for _, id := range ids {
			out = append(out, RefFor(id))
		}
		return out
	}

	s := &Snapshot{
		ID:                     u.id,
		Definition:             u.definition,
		Site:                   u.site,
		Salvage:                u.salvage,
		ForceID:                u.forceID,
		ScenarioID:             u.scenarioID,
		DaysToArrival:          u.daysToArrival,
		Drivers:                refs(u.drivers),
		Gunners:                refs(u.gunners),
		VesselCrew:             refs(u.vesselCrew),
		Navigator:              RefFor(u.navigator),
		TechOfficer:            RefFor(u.techOfficer),
		Tech:                   RefFor(u.tech),
		Mothballed:             u.IsMothballed(),
		MothballTime:           u.MothballTime(),
		Mothball:               u.snapshot,
		DaysSinceMaintenance:   u.daysSinceMaintenance,
		DaysActivelyMaintained: u.daysActivelyMaintained,
		AstechDaysMaintained:   u.astechDaysMaintained,
		History:                u.history,
		FluffName:              u.fluffName,
		LastMaintenanceReport:  u.lastMaintenanceReport,
		Parts:                  u.Parts(),
	}
	if u.refit != nil {
		s.Refit = &RefitSnapshot{
			Definition:  u.refit.newDefinition,
			MinutesLeft: u.refit.minutesLeft,
			Tech:        RefFor(u.refit.techID),
			Cost:        u.refit.cost,
		}
	}
	return s
}

// FromSnapshot rebuilds a unit. Bad values are replaced by defaults and
// unresolvable people are left out; each is reported in the returned error
// while the unit is still returned. Only a snapshot without a usable
// definition yields no unit.
func FromSnapshot(s *Snapshot, resolver ReferenceResolver, opts Options, clock shared.Clock) (*Unit, error) {
	u, err := New(s.ID, s.Definition, resolver.Roster, opts, clock)
	if err != nil {
		return nil, err
	}
	unitID := s.ID.String()
	var errs error

	one := func(role Role, ref PersonRef) uuid.UUID {
		if ref.IsEmpty() {
			return uuid.Nil
		}
		id, ok := resolver.Resolve(ref)
		if !ok {
			errs = multierr.Append(errs, shared.NewDanglingReferenceError(unitID, string(role), string(ref)))
		}
		return id
	}
	many := func(role Role, refs []PersonRef) []uuid.UUID {
		var out []uuid.UUID
		for _, ref := range refs {
			if id := one(role, ref); id != uuid.Nil {
				out = append(out, id)
			}
		}
		return out
	}

	if s.Site.IsValid() {
		u.site = s.Site
	} else {
		errs = multierr.Append(errs, shared.NewMalformedSnapshotError(unitID, "site", fmt.Sprint(int(s.Site))))
	}
	u.salvage = s.Salvage
	u.forceID = s.ForceID
	u.scenarioID = s.ScenarioID
	u.SetDaysToArrival(s.DaysToArrival)
	u.history = s.History
	u.fluffName = s.FluffName
	u.lastMaintenanceReport = s.LastMaintenanceReport

	u.drivers = many(RoleDriver, s.Drivers)
	u.gunners = many(RoleGunner, s.Gunners)
	u.vesselCrew = many(RoleVesselCrew, s.VesselCrew)
	u.navigator = one(RoleNavigator, s.Navigator)
	u.techOfficer = one(RoleTechOfficer, s.TechOfficer)
	u.tech = one(RoleTech, s.Tech)
	if u.UsesSoloPilot() {
		u.gunners = nil
	}

	timer := s.MothballTime
	if timer < 0 {
		errs = multierr.Append(errs, shared.NewMalformedSnapshotError(unitID, "mothballTime", strconv.Itoa(timer)))
		timer = 0
	}
	u.mothball = RestoreMothballMachine(s.Mothballed, timer, u.clock)
	u.snapshot = s.Mothball

	if s.DaysSinceMaintenance < 0 || s.DaysActivelyMaintained < 0 || s.AstechDaysMaintained < 0 {
		errs = multierr.Append(errs, shared.NewMalformedSnapshotError(unitID, "maintenance",
			fmt.Sprintf("%d/%d/%d", s.DaysSinceMaintenance, s.DaysActivelyMaintained, s.AstechDaysMaintained)))
	}
	u.RestoreMaintenanceCounters(s.DaysSinceMaintenance, s.DaysActivelyMaintained, s.AstechDaysMaintained)

	if s.Refit != nil {
		if s.Refit.Definition == nil {
			errs = multierr.Append(errs, shared.NewMalformedSnapshotError(unitID, "refit", "missing definition"))
		} else {
			tech := one(RoleTech, s.Refit.Tech)
			u.refit = NewRefit(s.Refit.Definition, s.Refit.MinutesLeft, tech, s.Refit.Cost)
		}
	}

	u.parts = append([]*part.Part(nil), s.Parts...)
	u.rebuildPodSpaces()
	u.ResetCrewAndComposite()
	return u, errs
}

package unit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// NoForce and NoScenario mark a unit outside any force or battle
const (
	NoForce    = -1
	NoScenario = -1
)

// Unit is the root aggregate: a definition, the parts that realise it and the
// people that crew and service it.
//
// Invariants:
//   - At most one part per structural key
//   - At most one refit in progress
//   - A mothball timer above zero means exactly one transition is running
//   - People are held by id and resolved through the roster at every use
type Unit struct {
	id         uuid.UUID
	definition loadout.Definition
	roster     personnel.Roster
	options    Options
	clock      shared.Clock

	site          Site
	salvage       bool
	forceID       int
	scenarioID    int
	daysToArrival int

	history               string
	fluffName             string
	lastMaintenanceReport string

	drivers     []uuid.UUID
	gunners     []uuid.UUID
	vesselCrew  []uuid.UUID
	navigator   uuid.UUID
	techOfficer uuid.UUID
	tech        uuid.UUID
	engineer    *Engineer

	mothball *MothballMachine
	snapshot *MothballSnapshot

	daysSinceMaintenance   int
	daysActivelyMaintained int
	astechDaysMaintained   int

	parts     []*part.Part
	podSpaces []*PodSpace
	refit     *Refit
}

// New creates an active unit for a definition. Parts are not created until the
// first reconciliation.
func New(id uuid.UUID, def loadout.Definition, roster personnel.Roster, opts Options, clock shared.Clock) (*Unit, error) {
	if def == nil {
		return nil, shared.NewValidationError("definition", "is required")
	}
	if !def.Profile().Category.IsValid() {
		return nil, shared.NewValidationError("category", fmt.Sprintf("unknown category %q", def.Profile().Category))
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	if roster == nil {
		roster = personnel.MapRoster{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	u := &Unit{
		id:         id,
		definition: def,
		roster:     roster,
		options:    opts,
		clock:      clock,
		site:       SiteBay,
		forceID:    NoForce,
		scenarioID: NoScenario,
		mothball:   NewMothballMachine(clock),
	}
	u.FixCorrelationID()
	return u, nil
}

// Getters

func (u *Unit) ID() uuid.UUID                  { return u.id }
func (u *Unit) Definition() loadout.Definition { return u.definition }
func (u *Unit) Options() Options               { return u.options }
func (u *Unit) Site() Site                     { return u.site }
func (u *Unit) IsSalvage() bool                { return u.salvage }
func (u *Unit) ForceID() int                   { return u.forceID }
func (u *Unit) ScenarioID() int                { return u.scenarioID }
func (u *Unit) DaysToArrival() int             { return u.daysToArrival }
func (u *Unit) History() string                { return u.history }
func (u *Unit) FluffName() string              { return u.fluffName }
func (u *Unit) LastMaintenanceReport() string  { return u.lastMaintenanceReport }
func (u *Unit) TechID() uuid.UUID              { return u.tech }
func (u *Unit) NavigatorID() uuid.UUID         { return u.navigator }
func (u *Unit) TechOfficerID() uuid.UUID       { return u.techOfficer }
func (u *Unit) Engineer() *Engineer            { return u.engineer }
func (u *Unit) Refit() *Refit                  { return u.refit }
func (u *Unit) IsRefitting() bool              { return u.refit != nil }
func (u *Unit) IsDeployed() bool               { return u.scenarioID != NoScenario }
func (u *Unit) IsPresent() bool                { return u.daysToArrival == 0 }

func (u *Unit) Category() loadout.Category {
	return u.definition.Profile().Category
}

// Name is the chassis and model, with the fluff name in front when set
func (u *Unit) Name() string {
	p := u.definition.Profile()
	name := p.Chassis
	if p.Model != "" {
		name += " " + p.Model
	}
	if u.fluffName != "" {
		return u.fluffName + " (" + name + ")"
	}
	return name
}

// DriverIDs returns the ordered driver list
func (u *Unit) DriverIDs() []uuid.UUID { return append([]uuid.UUID(nil), u.drivers...) }

// GunnerIDs returns the ordered gunner list
func (u *Unit) GunnerIDs() []uuid.UUID { return append([]uuid.UUID(nil), u.gunners...) }

// VesselCrewIDs returns the ordered vessel crew list
func (u *Unit) VesselCrewIDs() []uuid.UUID { return append([]uuid.UUID(nil), u.vesselCrew...) }

// Parts returns the registry in registration order
func (u *Unit) Parts() []*part.Part {
	return append([]*part.Part(nil), u.parts...)
}

// Part finds a registered part by id
func (u *Unit) Part(id uuid.UUID) (*part.Part, bool) {
	if id == uuid.Nil {
		return nil, false
	}
	for _, p := range u.parts {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// PartByKey finds the part registered for a structural key
func (u *Unit) PartByKey(key part.Key) (*part.Part, bool) {
	for _, p := range u.parts {
		if p.Key() == key {
			return p, true
		}
	}
	return nil, false
}

// PodSpaces returns the omni pod spaces, empty for fixed-configuration units
func (u *Unit) PodSpaces() []*PodSpace {
	return append([]*PodSpace(nil), u.podSpaces...)
}

// Quirks lists the design quirks when quirks are in use
func (u *Unit) Quirks() []string {
	if !u.options.UseQuirks {
		return nil
	}
	return append([]string(nil), u.definition.Profile().Quirks...)
}

// HasQuirk reports whether quirks are in use and the design has the named one
func (u *Unit) HasQuirk(name string) bool {
	for _, q := range u.Quirks() {
		if q == name {
			return true
		}
	}
	return false
}

// Mutators

func (u *Unit) SetSite(site Site)            { u.site = site }
func (u *Unit) SetForceID(id int)            { u.forceID = id }
func (u *Unit) SetScenarioID(id int)         { u.scenarioID = id }
func (u *Unit) SetHistory(h string)          { u.history = h }
func (u *Unit) SetFluffName(n string)        { u.fluffName = n }
func (u *Unit) SetOptions(opts Options)      { u.options = opts }
func (u *Unit) SetRoster(r personnel.Roster) { u.roster = r }

// SetDaysToArrival sets the transit time, never below zero
func (u *Unit) SetDaysToArrival(days int) {
	if days < 0 {
		days = 0
	}
	u.daysToArrival = days
}

// SetSalvage marks the unit for salvage. Clearing it also clears the salvage
// flag on every part.
func (u *Unit) SetSalvage(salvage bool) {
	u.salvage = salvage
	if !salvage {
		for _, p := range u.parts {
			p.SetSalvaging(false)
		}
	}
}

// MarkPartForSalvage flags one part for removal. Only units marked for salvage
// can have salvaging parts.
func (u *Unit) MarkPartForSalvage(partID uuid.UUID, salvaging bool) error {
	p, ok := u.Part(partID)
	if !ok {
		return shared.NewUnitError(fmt.Sprintf("no part %s", partID), u.id.String())
	}
	if salvaging && !u.salvage {
		return shared.NewUnitError("unit is not marked for salvage", u.id.String())
	}
	p.SetSalvaging(salvaging)
	return nil
}

// SetLastMaintenanceReport stores the text of the latest maintenance check
func (u *Unit) SetLastMaintenanceReport(report string) {
	u.lastMaintenanceReport = report
}

// AddHistory appends a line to the unit history
func (u *Unit) AddHistory(line string) {
	if u.history == "" {
		u.history = line
		return
	}
	u.history += "\n" + line
}

// FixCorrelationID rewrites the definition's external id when it does not
// match the unit id. Returns true if it had to.
func (u *Unit) FixCorrelationID() bool {
	if u.definition.ExternalID() == u.id.String() {
		return false
	}
	u.definition.SetExternalID(u.id.String())
	return true
}

// ReplaceDefinition swaps in a new definition, e.g. after the oracle reports
// new damage. The caller is expected to reconcile afterwards.
func (u *Unit) ReplaceDefinition(def loadout.Definition) error {
	if def == nil {
		return shared.NewValidationError("definition", "is required")
	}
	if def.Profile().Category != u.Category() {
		return shared.NewValidationError("category", fmt.Sprintf("cannot change %s into %s", u.Category(), def.Profile().Category))
	}
	crew := u.definition.Crew()
	u.definition = def
	u.definition.ApplyCrew(crew)
	u.FixCorrelationID()
	return nil
}

// Person resolves someone holding a role on the unit, nil when unknown
func (u *Unit) Person(id uuid.UUID) *personnel.Person {
	return u.person(id)
}

func (u *Unit) person(id uuid.UUID) *personnel.Person {
	if id == uuid.Nil || u.roster == nil {
		return nil
	}
	return u.roster.Person(id)
}

func (u *Unit) people(ids []uuid.UUID) []*personnel.Person {
	out := make([]*personnel.Person, 0, len(ids))
	for _, id := range ids {
		if p := u.person(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

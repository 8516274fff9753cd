package part

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
)

// Condition summarises a part for the repair screens
type Condition string

const (
	ConditionFunctional    Condition = "FUNCTIONAL"
	ConditionDamaged       Condition = "DAMAGED"
	ConditionMissing       Condition = "MISSING"
	ConditionBeingWorkedOn Condition = "BEING_WORKED_ON"
)

// ArmorState tracks armor points on an Armor part
type ArmorState struct {
	Type      string
	Amount    int
	Capacity  int
	PointCost float64
}

// AmmoState tracks an ammunition bin
type AmmoState struct {
	Type         string
	FullShots    int
	ShotsNeeded  int
	BayIndex     int
	CapacityTons float64
}

// Spec is everything the definition says about a part. The reconciler builds
// one per structural slot and either creates a part from it or refreshes an
// existing part with it.
type Spec struct {
	Key          Key
	Name         string
	Missing      bool
	Hits         int
	MaxHits      int
	Quantity     int
	Tonnage      float64
	UnitTonnage  float64
	Price        float64
	Availability loadout.Rating
	OmniPodded   bool
	Slot         loadout.SlotRef
	Armor        *ArmorState
	Ammo         *AmmoState
	HasChildren  bool
}

// State is the work-in-progress a part carries across saves
type State struct {
	Quality     Quality
	Salvaging   bool
	TechID      uuid.UUID
	MinutesLeft int
	ParentID    uuid.UUID
	ChildIDs    []uuid.UUID
}

// Part is one physical component of a unit.
// A zero id marks a placeholder that has not been given a durable identity yet.
type Part struct {
	id    uuid.UUID
	spec  Spec
	state State
}

// New creates a part from a spec with default quality and no work assigned
func New(spec Spec) *Part {
	if spec.Quantity <= 0 {
		spec.Quantity = 1
	}
	spec.Armor = copyArmor(spec.Armor)
	spec.Ammo = copyAmmo(spec.Ammo)
	return &Part{
		spec:  spec,
		state: State{Quality: DefaultQuality},
	}
}

// Rehydrate rebuilds a persisted part
func Rehydrate(id uuid.UUID, spec Spec, state State) *Part {
	p := New(spec)
	p.id = id
	p.state = state
	p.state.ChildIDs = append([]uuid.UUID(nil), state.ChildIDs...)
	if !p.state.Quality.IsValid() {
		p.state.Quality = DefaultQuality
	}
	return p
}

func copyArmor(a *ArmorState) *ArmorState {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func copyAmmo(a *AmmoState) *AmmoState {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// Getters

func (p *Part) ID() uuid.UUID                { return p.id }
func (p *Part) HasIdentity() bool            { return p.id != uuid.Nil }
func (p *Part) Key() Key                     { return p.spec.Key }
func (p *Part) Kind() Kind                   { return p.spec.Key.Kind }
func (p *Part) Name() string                 { return p.spec.Name }
func (p *Part) IsMissing() bool              { return p.spec.Missing }
func (p *Part) Hits() int                    { return p.spec.Hits }
func (p *Part) MaxHits() int                 { return p.spec.MaxHits }
func (p *Part) Quantity() int                { return p.spec.Quantity }
func (p *Part) Tonnage() float64             { return p.spec.Tonnage }
func (p *Part) UnitTonnage() float64         { return p.spec.UnitTonnage }
func (p *Part) Availability() loadout.Rating { return p.spec.Availability }
func (p *Part) IsOmniPodded() bool           { return p.spec.OmniPodded }
func (p *Part) Slot() loadout.SlotRef        { return p.spec.Slot }
func (p *Part) Quality() Quality             { return p.state.Quality }
func (p *Part) IsSalvaging() bool            { return p.state.Salvaging }
func (p *Part) TechID() uuid.UUID            { return p.state.TechID }
func (p *Part) MinutesLeft() int             { return p.state.MinutesLeft }
func (p *Part) ParentID() uuid.UUID          { return p.state.ParentID }
func (p *Part) IsBeingWorkedOn() bool        { return p.state.TechID != uuid.Nil }
func (p *Part) HasChildren() bool            { return p.spec.HasChildren }

// Spec returns a copy of the definition-derived facts
func (p *Part) Spec() Spec {
	s := p.spec
	s.Armor = copyArmor(p.spec.Armor)
	s.Ammo = copyAmmo(p.spec.Ammo)
	return s
}

// State returns a copy of the work-in-progress state
func (p *Part) State() State {
	s := p.state
	s.ChildIDs = append([]uuid.UUID(nil), p.state.ChildIDs...)
	return s
}

// Armor returns the armor track, nil for non-armor parts
func (p *Part) Armor() *ArmorState {
	return copyArmor(p.spec.Armor)
}

// Ammo returns the bin state, nil for non-ammo parts
func (p *Part) Ammo() *AmmoState {
	return copyAmmo(p.spec.Ammo)
}

// ChildIDs returns the ids of owned child parts (bay doors, cubicles)
func (p *Part) ChildIDs() []uuid.UUID {
	return append([]uuid.UUID(nil), p.state.ChildIDs...)
}

// NeedsFixing is true when nobody is working on the part and it is missing,
// damaged, short on armor or short on shots
func (p *Part) NeedsFixing() bool {
	if p.IsBeingWorkedOn() {
		return false
	}
	if p.spec.Missing {
		return true
	}
	if p.spec.Armor != nil {
		return p.spec.Armor.Amount < p.spec.Armor.Capacity
	}
	if p.spec.Ammo != nil {
		return p.spec.Ammo.ShotsNeeded > 0
	}
	return p.spec.Hits > 0
}

// NeedsMaintenance is false for consumables and absent parts
func (p *Part) NeedsMaintenance() bool {
	if p.spec.Missing {
		return false
	}
	switch p.Kind() {
	case KindArmor, KindAmmoBin, KindBayDoor, KindCubicle:
		return false
	}
	return true
}

// Condition returns the coarse repair status
func (p *Part) Condition() Condition {
	switch {
	case p.IsBeingWorkedOn():
		return ConditionBeingWorkedOn
	case p.spec.Missing:
		return ConditionMissing
	case p.NeedsFixing():
		return ConditionDamaged
	default:
		return ConditionFunctional
	}
}

// Mutators

// AssignIdentity gives a placeholder its durable id. It is a no-op for parts
// that already have one.
func (p *Part) AssignIdentity(id uuid.UUID) {
	if p.id == uuid.Nil {
		p.id = id
	}
}

func (p *Part) SetQuality(q Quality) {
	if q.IsValid() {
		p.state.Quality = q
	}
}

func (p *Part) SetSalvaging(salvaging bool) {
	p.state.Salvaging = salvaging
}

// AssignTech starts work on the part
func (p *Part) AssignTech(techID uuid.UUID, minutes int) {
	p.state.TechID = techID
	p.state.MinutesLeft = minutes
}

// RetargetTech moves in-progress work to another tech, keeping the time left
func (p *Part) RetargetTech(techID uuid.UUID) {
	if p.IsBeingWorkedOn() {
		p.state.TechID = techID
	}
}

// CancelAssignment drops any in-progress work
func (p *Part) CancelAssignment() {
	p.state.TechID = uuid.Nil
	p.state.MinutesLeft = 0
}

func (p *Part) SetParentID(id uuid.UUID) {
	p.state.ParentID = id
}

// AddChild links an owned child part. Placeholders and duplicates are ignored.
func (p *Part) AddChild(id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	for _, existing := range p.state.ChildIDs {
		if existing == id {
			return false
		}
	}
	p.state.ChildIDs = append(p.state.ChildIDs, id)
	return true
}

// RemoveChild unlinks a child part
func (p *Part) RemoveChild(id uuid.UUID) {
	kept := p.state.ChildIDs[:0]
	for _, existing := range p.state.ChildIDs {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	p.state.ChildIDs = kept
}

// Refresh copies the definition-derived condition onto the part. Identity,
// quality and in-progress work are untouched. Returns true if anything changed.
func (p *Part) Refresh(spec Spec) bool {
	if spec.Quantity <= 0 {
		spec.Quantity = p.spec.Quantity
	}
	changed := p.spec.Name != spec.Name ||
		p.spec.Hits != spec.Hits ||
		p.spec.Quantity != spec.Quantity ||
		p.spec.OmniPodded != spec.OmniPodded ||
		!sameArmor(p.spec.Armor, spec.Armor) ||
		!sameAmmo(p.spec.Ammo, spec.Ammo)

	spec.Key = p.spec.Key
	spec.Missing = p.spec.Missing
	spec.Armor = copyArmor(spec.Armor)
	spec.Ammo = copyAmmo(spec.Ammo)
	p.spec = spec
	return changed
}

func sameArmor(a, b *ArmorState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameAmmo(a, b *AmmoState) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Replaced turns a missing part into a present one with fresh condition
func (p *Part) Replaced() {
	p.spec.Missing = false
	p.spec.Hits = 0
	p.state.Quality = DefaultQuality
	p.CancelAssignment()
}

// SetShotsNeeded records how many rounds the bin is short
func (p *Part) SetShotsNeeded(n int) {
	if p.spec.Ammo == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > p.spec.Ammo.FullShots {
		n = p.spec.Ammo.FullShots
	}
	p.spec.Ammo.ShotsNeeded = n
}

// ShotsLeft is the number of rounds in the bin
func (p *Part) ShotsLeft() int {
	if p.spec.Ammo == nil {
		return 0
	}
	return p.spec.Ammo.FullShots - p.spec.Ammo.ShotsNeeded
}

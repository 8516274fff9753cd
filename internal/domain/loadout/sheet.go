package loadout

import (
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// Sheet is the in-process Definition: a record sheet loaded from a design file.
type Sheet struct {
	CorrelationID string
	Spec          Profile
	Locs          []Location
	Comps         []Component
	Equipment     []Mount
	TransportBays []Bay
	Collars       []DockingCollar
	Decks         []GravDeck
	CrewRecord    CrewRecord

	// DamageOverride pins the damage level instead of deriving it from the tracks
	DamageOverride *DamageLevel
}

// NewSheet creates a sheet with an unknown crew
func NewSheet(profile Profile) *Sheet {
	return &Sheet{
		Spec:       profile,
		CrewRecord: UnknownCrew(),
	}
}

func (s *Sheet) ExternalID() string {
	return s.CorrelationID
}

func (s *Sheet) SetExternalID(id string) {
	s.CorrelationID = id
}

func (s *Sheet) Profile() Profile {
	return s.Spec
}

func (s *Sheet) Locations() []Location {
	return append([]Location(nil), s.Locs...)
}

func (s *Sheet) Components() []Component {
	return append([]Component(nil), s.Comps...)
}

func (s *Sheet) Mounts() []Mount {
	return append([]Mount(nil), s.Equipment...)
}

func (s *Sheet) Bays() []Bay {
	return append([]Bay(nil), s.TransportBays...)
}

func (s *Sheet) DockingCollars() []DockingCollar {
	return append([]DockingCollar(nil), s.Collars...)
}

func (s *Sheet) GravDecks() []GravDeck {
	return append([]GravDeck(nil), s.Decks...)
}

func (s *Sheet) Crew() CrewRecord {
	crew := s.CrewRecord
	crew.Abilities = copyAbilities(s.CrewRecord.Abilities)
	return crew
}

func (s *Sheet) ApplyCrew(crew CrewRecord) {
	crew.Abilities = copyAbilities(crew.Abilities)
	s.CrewRecord = crew
}

func copyAbilities(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// DamageLevel grades the remaining armor and structure against the maximums.
// Aerospace units are graded on structural integrity alone.
func (s *Sheet) DamageLevel() DamageLevel {
	if s.DamageOverride != nil {
		return *s.DamageOverride
	}

	var remaining, maximum int
	if s.Spec.Category.IsAero() && s.Spec.OriginalSI > 0 {
		remaining, maximum = s.Spec.SI, s.Spec.OriginalSI
	} else {
		for _, loc := range s.Locs {
			maximum += loc.MaxInternal + loc.MaxArmor + loc.MaxRearArmor
			if loc.Destroyed {
				continue
			}
			remaining += loc.Internal + loc.Armor + loc.RearArmor
		}
	}
	if maximum == 0 {
		return DamageNone
	}

	ratio := float64(remaining) / float64(maximum)
	switch {
	case ratio >= 1:
		return DamageNone
	case ratio >= 0.8:
		return DamageLight
	case ratio >= 0.6:
		return DamageModerate
	case ratio >= 0.4:
		return DamageHeavy
	default:
		return DamageCrippled
	}
}

// Location returns the location with the given index
func (s *Sheet) Location(index int) (*Location, bool) {
	for i := range s.Locs {
		if s.Locs[i].Index == index {
			return &s.Locs[i], true
		}
	}
	return nil, false
}

// Mount returns the mount with the given equipment number
func (s *Sheet) Mount(index int) (*Mount, bool) {
	for i := range s.Equipment {
		if s.Equipment[i].Index == index {
			return &s.Equipment[i], true
		}
	}
	return nil, false
}

func (s *Sheet) SetShotsLeft(mountIndex, shots int) error {
	m, ok := s.Mount(mountIndex)
	if !ok {
		return fmt.Errorf("no equipment number %d", mountIndex)
	}
	if m.Class != MountAmmo {
		return fmt.Errorf("equipment %d (%s) is not ammunition", mountIndex, m.Name)
	}
	if shots < 0 {
		shots = 0
	}
	if m.FullShots > 0 && shots > m.FullShots {
		shots = m.FullShots
	}
	m.ShotsLeft = shots
	return nil
}

// AddAmmoMount adds an empty ammunition mount to a weapon bay, in the bay's location.
func (s *Sheet) AddAmmoMount(template Mount, bayIndex int) (Mount, error) {
	bay, ok := s.Mount(bayIndex)
	if !ok || bay.Class != MountWeaponBay {
		return Mount{}, fmt.Errorf("no weapon bay with equipment number %d", bayIndex)
	}

	loc, ok := s.Location(bay.Location)
	if !ok {
		return Mount{}, fmt.Errorf("weapon bay %d has no location", bayIndex)
	}
	if loc.Slots > 0 && s.slotsUsed(loc.Index)+1 > loc.Slots {
		return Mount{}, shared.NewLocationFullError(s.CorrelationID, loc.Name)
	}

	next := 0
	for _, m := range s.Equipment {
		if m.Index >= next {
			next = m.Index + 1
		}
	}

	mount := template
	mount.Index = next
	mount.Class = MountAmmo
	mount.Location = loc.Index
	mount.BayIndex = bayIndex
	mount.ShotsLeft = 0
	mount.Destroyed = false
	mount.Hits = 0
	if mount.Slots == 0 {
		mount.Slots = 1
	}
	s.Equipment = append(s.Equipment, mount)
	return mount, nil
}

func (s *Sheet) slotsUsed(location int) int {
	used := 0
	for _, m := range s.Equipment {
		if m.Location == location {
			used += m.Slots
		}
	}
	for _, c := range s.Comps {
		if c.Location == location {
			used++
		}
	}
	return used
}

// DestroyLocation blows a location off the unit. Everything mounted there is
// destroyed with it and has to be replaced on its own.
func (s *Sheet) DestroyLocation(index int) error {
	loc, ok := s.Location(index)
	if !ok {
		return fmt.Errorf("no location %d", index)
	}
	loc.Destroyed = true
	loc.Internal = 0
	s.cascadeLocation(index)
	return nil
}

// DestroyBay wrecks a transport bay along with its doors and cubicles
func (s *Sheet) DestroyBay(index int) error {
	for i := range s.TransportBays {
		if s.TransportBays[i].Index == index {
			s.TransportBays[i].Destroyed = true
			s.cascadeBay(&s.TransportBays[i])
			return nil
		}
	}
	return fmt.Errorf("no bay %d", index)
}

// SettleDestruction pushes the destroyed flag of every location and bay down
// to what they contain. Sheets read from disk may only mark the container.
func (s *Sheet) SettleDestruction() {
	for _, loc := range s.Locs {
		if loc.Destroyed {
			s.cascadeLocation(loc.Index)
		}
	}
	for i := range s.TransportBays {
		if s.TransportBays[i].Destroyed {
			s.cascadeBay(&s.TransportBays[i])
		}
	}
}

func (s *Sheet) cascadeLocation(index int) {
	for i := range s.Comps {
		if s.Comps[i].Location == index {
			s.Comps[i].Destroyed = true
		}
	}
	for i := range s.Equipment {
		if s.Equipment[i].Location == index {
			s.Equipment[i].Destroyed = true
		}
	}
}

func (s *Sheet) cascadeBay(b *Bay) {
	b.DamagedDoors = b.Doors
	b.DamagedCubicles = b.Cubicles()
}

// SlotUsable reports whether the container holding a slot is intact, so the
// slot itself can be refitted with a spare
func (s *Sheet) SlotUsable(ref SlotRef) bool {
	switch ref.Class {
	case SlotComponent, SlotMount:
		loc, ok := s.Location(ref.Location)
		return !ok || !loc.Destroyed
	case SlotBayDoor, SlotCubicle:
		for _, b := range s.TransportBays {
			if b.Index == ref.Index {
				return !b.Destroyed
			}
		}
	}
	return true
}

// RestoreSlot marks a slot as intact again after its part was replaced.
// Only the given slot is restored; contents of a location or bay stay as they are.
func (s *Sheet) RestoreSlot(ref SlotRef) error {
	switch ref.Class {
	case SlotLocation:
		loc, ok := s.Location(ref.Location)
		if !ok {
			return fmt.Errorf("no location %d", ref.Location)
		}
		loc.Destroyed = false
		if loc.Internal <= 0 {
			loc.Internal = loc.MaxInternal
		}
		return nil
	case SlotComponent:
		for i := range s.Comps {
			c := &s.Comps[i]
			if c.Type == ref.Component && c.Location == ref.Location && c.Index == ref.Index {
				c.Destroyed = false
				c.Hits = 0
				return nil
			}
		}
		return fmt.Errorf("no %s component at %d/%d", ref.Component, ref.Location, ref.Index)
	case SlotMount:
		m, ok := s.Mount(ref.Index)
		if !ok {
			return fmt.Errorf("no equipment number %d", ref.Index)
		}
		m.Destroyed = false
		m.Hits = 0
		return nil
	case SlotBay:
		for i := range s.TransportBays {
			if s.TransportBays[i].Index == ref.Index {
				s.TransportBays[i].Destroyed = false
				return nil
			}
		}
		return fmt.Errorf("no bay %d", ref.Index)
	case SlotBayDoor:
		for i := range s.TransportBays {
			b := &s.TransportBays[i]
			if b.Index == ref.Index {
				if b.DamagedDoors > 0 {
					b.DamagedDoors--
				}
				return nil
			}
		}
		return fmt.Errorf("no bay %d", ref.Index)
	case SlotCubicle:
		for i := range s.TransportBays {
			b := &s.TransportBays[i]
			if b.Index == ref.Index {
				if b.DamagedCubicles > 0 {
					b.DamagedCubicles--
				}
				return nil
			}
		}
		return fmt.Errorf("no bay %d", ref.Index)
	case SlotCollar:
		for i := range s.Collars {
			if s.Collars[i].Index == ref.Index {
				s.Collars[i].Damaged = false
				return nil
			}
		}
		return fmt.Errorf("no docking collar %d", ref.Index)
	case SlotGravDeck:
		for i := range s.Decks {
			if s.Decks[i].Index == ref.Index {
				s.Decks[i].Damaged = false
				return nil
			}
		}
		return fmt.Errorf("no grav deck %d", ref.Index)
	}
	return fmt.Errorf("unknown slot class %q", ref.Class)
}

// Clone returns a deep copy, used when a refit needs its own target design
func (s *Sheet) Clone() *Sheet {
	c := *s
	c.Spec.Quirks = append([]string(nil), s.Spec.Quirks...)
	c.Locs = s.Locations()
	c.Comps = s.Components()
	c.Equipment = s.Mounts()
	c.TransportBays = s.Bays()
	c.Collars = s.DockingCollars()
	c.Decks = s.GravDecks()
	c.CrewRecord = s.Crew()
	if s.DamageOverride != nil {
		level := *s.DamageOverride
		c.DamageOverride = &level
	}
	return &c
}

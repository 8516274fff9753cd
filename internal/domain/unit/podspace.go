package unit

import (
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
)

// PodSpace is one location of an omni unit together with the pod-mounted
// parts in it. Pod spaces are derived from the registry and never stored.
type PodSpace struct {
	location int
	name     string
	parts    []*part.Part
}

func (s *PodSpace) Location() int       { return s.location }
func (s *PodSpace) Name() string        { return s.name }
func (s *PodSpace) Parts() []*part.Part { return append([]*part.Part(nil), s.parts...) }
func (s *PodSpace) IsEmpty() bool       { return len(s.parts) == 0 }
func (s *PodSpace) PodCount() int       { return len(s.parts) }

// IsFunctional is true when no pod part is missing
func (s *PodSpace) IsFunctional() bool {
	for _, p := range s.parts {
		if p.IsMissing() {
			return false
		}
	}
	return true
}

// NeedsFixing is true when any pod part needs work and nobody is on it
func (s *PodSpace) NeedsFixing() bool {
	for _, p := range s.parts {
		if p.NeedsFixing() {
			return true
		}
	}
	return false
}

// HasSalvageableParts is true when any pod part can still be pulled
func (s *PodSpace) HasSalvageableParts() bool {
	for _, p := range s.parts {
		if !p.IsMissing() {
			return true
		}
	}
	return false
}

// rebuildPodSpaces regroups pod-mounted equipment by location. Fixed
// configuration units have no pod spaces.
func (u *Unit) rebuildPodSpaces() {
	u.podSpaces = nil
	if !u.definition.Profile().Omni {
		return
	}
	for _, l := range u.definition.Locations() {
		space := &PodSpace{location: l.Index, name: l.Name}
		for _, p := range u.parts {
			slot := p.Slot()
			if p.IsOmniPodded() && slot.Class == loadout.SlotMount && slot.Location == l.Index {
				space.parts = append(space.parts, p)
			}
		}
		u.podSpaces = append(u.podSpaces, space)
	}
}

// RebuildPodSpaces regroups pod-mounted equipment after a change in omni
// status or locations
func (u *Unit) RebuildPodSpaces() {
	u.rebuildPodSpaces()
}

package unit

import (
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
)

// requirements lists the part every structural slot of the definition calls
// for, in definition order. Children follow their bay.
func requirements(def loadout.Definition) []part.Spec {
	profile := def.Profile()
	locations := def.Locations()

	var specs []part.Spec
	add := func(s part.Spec) {
		s.UnitTonnage = profile.Tonnage
		specs = append(specs, s)
	}

	for _, l := range locations {
		add(part.Spec{
			Key:     part.Key{Kind: part.KindStructure, Location: l.Index},
			Name:    fmt.Sprintf("%s %s", l.StructureType, l.Name),
			Missing: l.IsBad(),
			Hits:    l.MaxInternal - l.Internal,
			MaxHits: l.MaxInternal,
			Price:   l.StructureCost,
			Slot:    loadout.SlotRef{Class: loadout.SlotLocation, Location: l.Index, Index: l.Index},
		})
		add(armorSpec(l, false))
		if l.HasRear {
			add(armorSpec(l, true))
		}
	}

	for _, c := range def.Components() {
		add(part.Spec{
			Key:          part.Key{Kind: part.Kind(c.Type), Location: c.Location, Index: c.Index},
			Name:         c.Name,
			Missing:      c.Destroyed,
			Hits:         c.Hits,
			MaxHits:      c.MaxHits,
			Tonnage:      c.Tonnage,
			Price:        c.Cost,
			Availability: c.Availability,
			Slot:         loadout.SlotRef{Class: loadout.SlotComponent, Component: c.Type, Location: c.Location, Index: c.Index},
		})
	}

	for _, m := range def.Mounts() {
		add(mountSpec(m))
	}

	for _, b := range def.Bays() {
		add(part.Spec{
			Key:         part.Key{Kind: part.KindTransportBay, Location: part.NoLocation, Index: b.Index},
			Name:        fmt.Sprintf("%s Bay #%d", bayName(b.Type), b.Index+1),
			Missing:     b.Destroyed,
			Price:       b.Cost,
			HasChildren: true,
			Slot:        loadout.SlotRef{Class: loadout.SlotBay, Location: part.NoLocation, Index: b.Index},
		})
		for d := 0; d < b.Doors; d++ {
			add(part.Spec{
				Key:     part.Key{Kind: part.KindBayDoor, Location: d, Index: b.Index},
				Name:    fmt.Sprintf("Bay Door (Bay #%d)", b.Index+1),
				Missing: d >= b.Doors-b.DamagedDoors,
				Price:   1000,
				Slot:    loadout.SlotRef{Class: loadout.SlotBayDoor, Location: d, Index: b.Index},
			})
		}
		cubicles := b.Cubicles()
		for c := 0; c < cubicles; c++ {
			add(part.Spec{
				Key:     part.Key{Kind: part.KindCubicle, Location: c, Index: b.Index},
				Name:    fmt.Sprintf("%s Cubicle (Bay #%d)", bayName(b.Type), b.Index+1),
				Missing: c >= cubicles-b.DamagedCubicles,
				Price:   cubiclePrice(b.Type),
				Slot:    loadout.SlotRef{Class: loadout.SlotCubicle, Location: c, Index: b.Index},
			})
		}
	}

	for _, c := range def.DockingCollars() {
		add(part.Spec{
			Key:     part.Key{Kind: part.KindDockingCollar, Location: part.NoLocation, Index: c.Index},
			Name:    "Docking Collar",
			Missing: c.Damaged,
			Price:   c.Cost,
			Slot:    loadout.SlotRef{Class: loadout.SlotCollar, Location: part.NoLocation, Index: c.Index},
		})
	}

	for _, g := range def.GravDecks() {
		add(part.Spec{
			Key:     part.Key{Kind: part.KindGravDeck, Location: part.NoLocation, Index: g.Index},
			Name:    fmt.Sprintf("Grav Deck (%dm)", g.Diameter),
			Missing: g.Damaged,
			Price:   g.Cost,
			Slot:    loadout.SlotRef{Class: loadout.SlotGravDeck, Location: part.NoLocation, Index: g.Index},
		})
	}

	return specs
}

// armorSpec never marks armor missing; a destroyed location just has none left
func armorSpec(l loadout.Location, rear bool) part.Spec {
	amount, capacity := l.Armor, l.MaxArmor
	name := fmt.Sprintf("%s Armor (%s)", l.ArmorType, l.Name)
	if rear {
		amount, capacity = l.RearArmor, l.MaxRearArmor
		name = fmt.Sprintf("%s Armor (%s, rear)", l.ArmorType, l.Name)
	}
	if l.IsBad() {
		amount = 0
	}
	return part.Spec{
		Key:  part.Key{Kind: part.KindArmor, Location: l.Index, Rear: rear},
		Name: name,
		Armor: &part.ArmorState{
			Type:      l.ArmorType,
			Amount:    amount,
			Capacity:  capacity,
			PointCost: l.ArmorPointCost,
		},
		Slot: loadout.SlotRef{Class: loadout.SlotLocation, Location: l.Index, Index: l.Index},
	}
}

func mountSpec(m loadout.Mount) part.Spec {
	kind := part.KindEquipment
	switch m.Class {
	case loadout.MountAmmo:
		kind = part.KindAmmoBin
	case loadout.MountHeatSink:
		kind = part.KindHeatSink
	case loadout.MountJumpJet:
		kind = part.KindJumpJet
	}

	spec := part.Spec{
		Key:          part.Key{Kind: kind, Location: part.NoLocation, Index: m.Index},
		Name:         m.Name,
		Missing:      m.Destroyed,
		Hits:         m.Hits,
		MaxHits:      m.Slots,
		Tonnage:      m.Tonnage,
		Price:        m.Cost,
		Availability: m.Availability,
		OmniPodded:   m.OmniPodded,
		Slot:         loadout.SlotRef{Class: loadout.SlotMount, Location: m.Location, Index: m.Index},
	}
	if kind == part.KindAmmoBin {
		needed := m.FullShots - m.ShotsLeft
		if needed < 0 {
			needed = 0
		}
		spec.Ammo = &part.AmmoState{
			Type:         m.AmmoType,
			FullShots:    m.FullShots,
			ShotsNeeded:  needed,
			BayIndex:     m.BayIndex,
			CapacityTons: m.CapacityTons,
		}
	}
	return spec
}

func bayName(t loadout.BayType) string {
	switch t {
	case loadout.BayMech:
		return "Mech"
	case loadout.BayASF:
		return "ASF"
	case loadout.BaySmallCraft:
		return "Small Craft"
	case loadout.BayLightVehicle:
		return "Light Vehicle"
	case loadout.BayHeavyVehicle:
		return "Heavy Vehicle"
	case loadout.BaySuperHeavy:
		return "Superheavy Vehicle"
	case loadout.BayProtomech:
		return "Protomech"
	case loadout.BayBattleArmor:
		return "Battle Armor"
	case loadout.BayInfantry:
		return "Infantry"
	case loadout.BayLivestock:
		return "Livestock"
	case loadout.BayCrewQuarters:
		return "Quarters"
	}
	return "Cargo"
}

func cubiclePrice(t loadout.BayType) float64 {
	switch t {
	case loadout.BayMech, loadout.BayASF, loadout.BaySmallCraft:
		return 20000
	case loadout.BayLightVehicle, loadout.BayHeavyVehicle, loadout.BaySuperHeavy:
		return 20000
	case loadout.BayProtomech, loadout.BayBattleArmor:
		return 10000
	}
	return 5000
}

package helpers

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// Mech location indexes used by CreateTestMechSheet
const (
	MechHead = iota
	MechCenterTorso
	MechLeftTorso
	MechRightTorso
	MechLeftArm
	MechRightArm
	MechLeftLeg
	MechRightLeg
)

// Equipment numbers used by CreateTestMechSheet
const (
	MechAutocannon = iota
	MechAutocannonAmmo
	MechHeatSink
	MechMediumLaser
)

// MechPartCount is the number of parts a reconciled CreateTestMechSheet unit has:
// 8 structure, 8 front armor, 3 rear armor, 7 components, 4 mounts
const MechPartCount = 30

func mechLocation(index int, name, abbr string, role loadout.LocationRole, internal, armor, rear, slots int) loadout.Location {
	return loadout.Location{
		Index: index, Name: name, Abbr: abbr, Role: role,
		Internal: internal, MaxInternal: internal,
		Armor: armor, MaxArmor: armor,
		RearArmor: rear, MaxRearArmor: rear, HasRear: rear > 0,
		Slots:         slots,
		StructureType: "Standard", ArmorType: "Standard",
		StructureCost: 1600, ArmorPointCost: 625,
	}
}

// CreateTestMechSheet builds an undamaged 50 ton medium mech
func CreateTestMechSheet() *loadout.Sheet {
	s := loadout.NewSheet(loadout.Profile{
		Chassis:       "Hunchback",
		Model:         "HBK-4G",
		Category:      loadout.CategoryMech,
		WeightClass:   loadout.WeightMedium,
		Tonnage:       50,
		Year:          3025,
		WalkMP:        4,
		EngineType:    loadout.EngineFusion,
		EngineTonnage: 8.5,
		HeatSinks:     13,
		Cost:          3500000,
		Availability:  loadout.RatingC,
	})
	s.Locs = []loadout.Location{
		mechLocation(MechHead, "Head", "HD", loadout.RoleHead, 3, 9, 0, 6),
		mechLocation(MechCenterTorso, "Center Torso", "CT", loadout.RoleCenterTorso, 16, 26, 8, 12),
		mechLocation(MechLeftTorso, "Left Torso", "LT", loadout.RoleSideTorso, 12, 20, 4, 12),
		mechLocation(MechRightTorso, "Right Torso", "RT", loadout.RoleSideTorso, 12, 20, 4, 12),
		mechLocation(MechLeftArm, "Left Arm", "LA", loadout.RoleArm, 8, 16, 0, 12),
		mechLocation(MechRightArm, "Right Arm", "RA", loadout.RoleArm, 8, 16, 0, 12),
		mechLocation(MechLeftLeg, "Left Leg", "LL", loadout.RoleLeg, 12, 20, 0, 6),
		mechLocation(MechRightLeg, "Right Leg", "RL", loadout.RoleLeg, 12, 20, 0, 6),
	}
	s.Comps = []loadout.Component{
		{Type: loadout.ComponentEngine, Location: MechCenterTorso, Name: "Fusion Engine (200)", MaxHits: 3, Cost: 100000, Tonnage: 8.5},
		{Type: loadout.ComponentGyro, Location: MechCenterTorso, Name: "Standard Gyro", MaxHits: 2, Cost: 300000, Tonnage: 2},
		{Type: loadout.ComponentCockpit, Location: MechHead, Name: "Standard Cockpit", MaxHits: 1, Cost: 200000, Tonnage: 3},
		{Type: loadout.ComponentSensor, Location: MechHead, Name: "Mech Sensors", MaxHits: 2, Cost: 100000},
		{Type: loadout.ComponentLifeSupport, Location: MechHead, Name: "Mech Life Support", MaxHits: 1, Cost: 50000},
		{Type: loadout.ComponentActuator, Location: MechLeftArm, Name: "Shoulder", MaxHits: 1, Cost: 10000},
		{Type: loadout.ComponentActuator, Location: MechRightArm, Name: "Shoulder", MaxHits: 1, Cost: 10000},
	}
	s.Equipment = []loadout.Mount{
		{Index: MechAutocannon, Class: loadout.MountWeapon, Name: "AC/20", Location: MechRightTorso, Slots: 10, Cost: 300000, Tonnage: 14, BayIndex: loadout.NoBay},
		{Index: MechAutocannonAmmo, Class: loadout.MountAmmo, Name: "AC/20 Ammo", Location: MechLeftTorso, Slots: 1, Cost: 10000, Tonnage: 1,
			AmmoType: "AC20", FullShots: 20, ShotsLeft: 20, BayIndex: loadout.NoBay},
		{Index: MechHeatSink, Class: loadout.MountHeatSink, Name: "Heat Sink", Location: MechCenterTorso, Slots: 1, Cost: 2000, Tonnage: 1, BayIndex: loadout.NoBay},
		{Index: MechMediumLaser, Class: loadout.MountWeapon, Name: "Medium Laser", Location: MechLeftArm, Slots: 1, Cost: 40000, Tonnage: 1, EnergyHeat: 3, BayIndex: loadout.NoBay},
	}
	return s
}

// CreateTestOmniMechSheet builds an omni mech with two pod-mounted weapons
func CreateTestOmniMechSheet() *loadout.Sheet {
	s := CreateTestMechSheet()
	s.Spec.Chassis = "Mad Cat"
	s.Spec.Model = "Prime"
	s.Spec.Omni = true
	s.Spec.Clan = true
	for i := range s.Equipment {
		if s.Equipment[i].Class == loadout.MountWeapon {
			s.Equipment[i].OmniPodded = true
		}
	}
	return s
}

// CreateTestTankSheet builds a tracked tank with a turret and a crew of four
func CreateTestTankSheet() *loadout.Sheet {
	s := loadout.NewSheet(loadout.Profile{
		Chassis:       "Bulldog",
		Model:         "Medium Tank",
		Category:      loadout.CategoryTank,
		Motive:        loadout.MotiveTracked,
		WeightClass:   loadout.WeightMedium,
		Tonnage:       60,
		WalkMP:        4,
		EngineType:    loadout.EngineCombustion,
		EngineTonnage: 12,
		DriverNeeds:   1,
		GunnerNeeds:   3,
		FullCrewSize:  4,
		Cost:          850000,
		Availability:  loadout.RatingB,
	})
	loc := func(index int, name string, role loadout.LocationRole, internal, armor int) loadout.Location {
		return loadout.Location{
			Index: index, Name: name, Role: role,
			Internal: internal, MaxInternal: internal, Armor: armor, MaxArmor: armor,
			StructureType: "Standard", ArmorType: "Standard", StructureCost: 1000, ArmorPointCost: 625,
		}
	}
	s.Locs = []loadout.Location{
		loc(0, "Body", loadout.RoleBody, 0, 0),
		loc(1, "Front", loadout.RoleHull, 6, 40),
		loc(2, "Left", loadout.RoleHull, 6, 30),
		loc(3, "Right", loadout.RoleHull, 6, 30),
		loc(4, "Rear", loadout.RoleHull, 6, 20),
		loc(5, "Turret", loadout.RoleTurret, 6, 30),
	}
	s.Comps = []loadout.Component{
		{Type: loadout.ComponentEngine, Location: 0, Name: "ICE Engine", MaxHits: 1, Cost: 60000},
		{Type: loadout.ComponentMotiveSystem, Location: 0, Name: "Motive System", MaxHits: 4, Cost: 20000},
		{Type: loadout.ComponentSensor, Location: 0, Name: "Vehicle Sensors", MaxHits: 3, Cost: 20000},
		{Type: loadout.ComponentTurretLock, Location: 5, Name: "Turret Lock", MaxHits: 1, Cost: 5000},
	}
	s.Equipment = []loadout.Mount{
		{Index: 0, Class: loadout.MountWeapon, Name: "Large Laser", Location: 5, Slots: 1, Cost: 100000, Tonnage: 5, BayIndex: loadout.NoBay},
		{Index: 1, Class: loadout.MountWeapon, Name: "SRM 6", Location: 1, Slots: 1, Cost: 80000, Tonnage: 3, BayIndex: loadout.NoBay},
		{Index: 2, Class: loadout.MountAmmo, Name: "SRM 6 Ammo", Location: 0, Slots: 1, Cost: 27000, Tonnage: 1,
			AmmoType: "SRM6", FullShots: 15, ShotsLeft: 15, BayIndex: loadout.NoBay},
	}
	return s
}

// Equipment numbers used by CreateTestDropshipSheet
const (
	DropshipWeaponBay = iota
	DropshipBayAmmo
)

// CreateTestDropshipSheet builds a 1900 ton aerodyne dropship with a mech bay,
// a weapon bay and one docking collar
func CreateTestDropshipSheet() *loadout.Sheet {
	s := loadout.NewSheet(loadout.Profile{
		Chassis:      "Leopard",
		Model:        "(2537)",
		Category:     loadout.CategoryDropship,
		Tonnage:      1900,
		WalkMP:       4,
		SI:           9,
		OriginalSI:   9,
		EngineType:   loadout.EngineFusion,
		FuelTonnage:  100,
		DriverNeeds:  2,
		GunnerNeeds:  6,
		VesselNeeds:  6,
		FullCrewSize: 14,
		Cost:         120000000,
		Availability: loadout.RatingD,
	})
	loc := func(index int, name string, armor, slots int) loadout.Location {
		return loadout.Location{
			Index: index, Name: name, Role: loadout.RoleHull, Armor: armor, MaxArmor: armor, Slots: slots,
			ArmorType: "Standard", ArmorPointCost: 1000,
		}
	}
	s.Locs = []loadout.Location{
		loc(0, "Nose", 80, 3),
		loc(1, "Left Wing", 60, 0),
		loc(2, "Right Wing", 60, 0),
		loc(3, "Aft", 50, 0),
	}
	s.Comps = []loadout.Component{
		{Type: loadout.ComponentEngine, Location: 3, Name: "Spacecraft Engine", MaxHits: 3, Cost: 2000000},
		{Type: loadout.ComponentAvionics, Location: 3, Name: "Avionics", MaxHits: 3, Cost: 50000},
		{Type: loadout.ComponentFireControl, Location: 3, Name: "Fire Control", MaxHits: 3, Cost: 100000},
		{Type: loadout.ComponentLandingGear, Location: 3, Name: "Landing Gear", MaxHits: 1, Cost: 150000},
	}
	s.Equipment = []loadout.Mount{
		{Index: DropshipWeaponBay, Class: loadout.MountWeaponBay, Name: "LRM Bay", Location: 0, Slots: 1, Cost: 500000, Tonnage: 20, BayIndex: loadout.NoBay},
		{Index: DropshipBayAmmo, Class: loadout.MountAmmo, Name: "LRM 20 Ammo", Location: 0, Slots: 1, Cost: 30000, Tonnage: 2,
			AmmoType: "LRM20", FullShots: 12, ShotsLeft: 12, BayIndex: DropshipWeaponBay, CapacityTons: 2},
	}
	s.TransportBays = []loadout.Bay{
		{Index: 0, Type: loadout.BayMech, Capacity: 2, Doors: 2, Cost: 40000},
	}
	s.Collars = []loadout.DockingCollar{{Index: 0, Cost: 10000}}
	return s
}

// CreateTestInfantrySheet builds a foot platoon of seven troopers
func CreateTestInfantrySheet() *loadout.Sheet {
	s := loadout.NewSheet(loadout.Profile{
		Chassis:      "Foot Platoon",
		Model:        "(Rifle)",
		Category:     loadout.CategoryInfantry,
		Motive:       loadout.MotiveLeg,
		Tonnage:      3,
		Troopers:     7,
		Squads:       1,
		Cost:         1200000,
		Availability: loadout.RatingA,
	})
	s.Locs = []loadout.Location{
		{Index: 0, Name: "Troopers", Role: loadout.RoleTrooper, Internal: 7, MaxInternal: 7},
	}
	s.Comps = []loadout.Component{
		{Type: loadout.ComponentInfantryWeapon, Location: 0, Name: "Auto-Rifle", Cost: 1000},
	}
	return s
}

// CreateTestPerson builds an active person with a fake name and callsign
func CreateTestPerson(rank int, skills map[personnel.SkillType]int) *personnel.Person {
	p := personnel.NewPerson(uuid.MustParse(gofakeit.UUID()), gofakeit.Name(), rank)
	p.SetCallsign(gofakeit.Username())
	for t, value := range skills {
		p.SetSkill(t, personnel.Skill{Level: 13 - value, Value: value})
	}
	return p
}

// CreateTestCrew builds n people of equal rank holding one skill at the given values
func CreateTestCrew(rank int, skill personnel.SkillType, values ...int) []*personnel.Person {
	crew := make([]*personnel.Person, 0, len(values))
	for _, v := range values {
		crew = append(crew, CreateTestPerson(rank, map[personnel.SkillType]int{skill: v}))
	}
	return crew
}

// DefaultTestTime is the start time of mock clocks in tests
func DefaultTestTime() time.Time {
	return time.Date(3025, time.June, 1, 8, 0, 0, 0, time.UTC)
}

// NewTestRoster creates a roster holding the given people
func NewTestRoster(people ...*personnel.Person) personnel.MapRoster {
	return personnel.MapRoster{}.Add(people...)
}

// NewTestUnit creates a unit for the sheet with default options and a mock clock
func NewTestUnit(sheet loadout.Definition, roster personnel.Roster) *unit.Unit {
	u, err := unit.New(uuid.New(), sheet, roster, unit.DefaultOptions(), shared.NewMockClock(DefaultTestTime()))
	if err != nil {
		panic(err)
	}
	return u
}

// NewReconciledTestUnit creates a unit and gives it its full set of parts
func NewReconciledTestUnit(sheet loadout.Definition, roster personnel.Roster) *unit.Unit {
	u := NewTestUnit(sheet, roster)
	if _, err := u.Reconcile(true, nil); err != nil {
		panic(err)
	}
	return u
}

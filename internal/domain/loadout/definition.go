package loadout

// Definition is the read/write view of a unit's equipment and damage state.
//
// It is owned by the external unit oracle: the unit aggregate reads it to decide
// which parts must exist and writes back only the composite crew, ammunition
// counts, its correlation id and slot restorations.
type Definition interface {
	ExternalID() string
	SetExternalID(id string)

	Profile() Profile
	Locations() []Location
	Components() []Component
	Mounts() []Mount
	Bays() []Bay
	DockingCollars() []DockingCollar
	GravDecks() []GravDeck
	DamageLevel() DamageLevel

	Crew() CrewRecord
	ApplyCrew(crew CrewRecord)

	SetShotsLeft(mountIndex, shots int) error
	AddAmmoMount(template Mount, bayIndex int) (Mount, error)
	RestoreSlot(ref SlotRef) error
	SlotUsable(ref SlotRef) bool
}

// Profile holds the scalar facts about a design
type Profile struct {
	Chassis     string
	Model       string
	Category    Category
	Motive      Motive
	WeightClass WeightClass
	Tonnage     float64
	Year        int

	Clan           bool
	Omni           bool
	Industrial     bool
	Support        bool
	Spheroid       bool
	MilitaryDesign bool
	CommandConsole bool

	// Movement and structural integrity
	WalkMP       int
	JumpMP       int
	SI           int
	OriginalSI   int
	NavalRepair  bool
	DriveCompact bool
	HasLF        bool
	HasHPG       bool

	// Engine and fuel
	EngineType    EngineType
	EngineTonnage float64
	FuelTonnage   float64
	Fuel          int
	FuelPerTon    float64

	// Large craft extras
	HeatSinks       int
	HeatType        int
	ArmorTonnage    float64
	ArmorCostPerTon float64
	LifeBoats       int
	EscapePods      int

	// Crew requirements
	FullCrewSize int
	DriverNeeds  int
	GunnerNeeds  int
	VesselNeeds  int
	Navigator    bool
	TechOfficer  bool
	Troopers     int
	Squads       int

	// Price facts
	Cost             float64
	EnergyWeaponHeat int
	Quirks           []string
	Availability     Rating
}

// Rating is an availability grade, A (common) to F (rare), X for unknown
type Rating int

const (
	RatingA Rating = iota
	RatingB
	RatingC
	RatingD
	RatingE
	RatingF
	RatingX
)

var ratingNames = []string{"A", "B", "C", "D", "E", "F", "X"}

func (r Rating) String() string {
	if r < RatingA || r > RatingX {
		return "?"
	}
	return ratingNames[r]
}

// ParseRating accepts a single grade letter, anything else is X
func ParseRating(s string) Rating {
	for i, name := range ratingNames {
		if s == name {
			return Rating(i)
		}
	}
	return RatingX
}

// Location is a hit location with its structure and armor track
type Location struct {
	Index        int
	Name         string
	Abbr         string
	Role         LocationRole
	Internal     int
	MaxInternal  int
	Armor        int
	MaxArmor     int
	RearArmor    int
	MaxRearArmor int
	HasRear      bool
	Destroyed    bool
	Slots        int

	StructureType  string
	ArmorType      string
	StructureCost  float64
	ArmorPointCost float64
}

// LocationRole marks locations the functional checks care about
type LocationRole string

const (
	RoleHead        LocationRole = "HEAD"
	RoleCenterTorso LocationRole = "CENTER_TORSO"
	RoleSideTorso   LocationRole = "SIDE_TORSO"
	RoleArm         LocationRole = "ARM"
	RoleLeg         LocationRole = "LEG"
	RoleBody        LocationRole = "BODY"
	RoleTurret      LocationRole = "TURRET"
	RoleRotor       LocationRole = "ROTOR"
	RoleHull        LocationRole = "HULL"
	RoleTrooper     LocationRole = "TROOPER"
	RoleNone        LocationRole = ""
)

// IsBad reports whether the location is gone outright
func (l Location) IsBad() bool {
	return l.Destroyed
}

// ComponentType names a fixed system that is not mounted equipment
type ComponentType string

const (
	ComponentEngine          ComponentType = "ENGINE"
	ComponentGyro            ComponentType = "GYRO"
	ComponentCockpit         ComponentType = "COCKPIT"
	ComponentLifeSupport     ComponentType = "LIFE_SUPPORT"
	ComponentSensor          ComponentType = "SENSOR"
	ComponentActuator        ComponentType = "ACTUATOR"
	ComponentAvionics        ComponentType = "AVIONICS"
	ComponentFireControl     ComponentType = "FIRE_CONTROL"
	ComponentLandingGear     ComponentType = "LANDING_GEAR"
	ComponentThrusters       ComponentType = "THRUSTERS"
	ComponentMotiveSystem    ComponentType = "MOTIVE_SYSTEM"
	ComponentRotor           ComponentType = "ROTOR"
	ComponentTurretLock      ComponentType = "TURRET_LOCK"
	ComponentDriveCoil       ComponentType = "DRIVE_COIL"
	ComponentDriveController ComponentType = "DRIVE_CONTROLLER"
	ComponentFieldInitiator  ComponentType = "FIELD_INITIATOR"
	ComponentChargingSystem  ComponentType = "CHARGING_SYSTEM"
	ComponentHeliumTank      ComponentType = "HELIUM_TANK"
	ComponentLFBattery       ComponentType = "LF_BATTERY"
	ComponentInfantryMotive  ComponentType = "INFANTRY_MOTIVE"
	ComponentInfantryArmor   ComponentType = "INFANTRY_ARMOR"
	ComponentInfantryWeapon  ComponentType = "INFANTRY_WEAPON"
	ComponentBattleArmorSuit ComponentType = "BATTLE_ARMOR_SUIT"
)

// Component is a fixed system. Index distinguishes several components of the
// same type in one location (actuator number, battery ordinal).
type Component struct {
	Type         ComponentType
	Location     int
	Index        int
	Name         string
	Hits         int
	MaxHits      int
	Destroyed    bool
	Cost         float64
	Tonnage      float64
	Availability Rating
}

// MountClass is what a mounted piece of equipment is
type MountClass string

const (
	MountWeapon    MountClass = "WEAPON"
	MountAmmo      MountClass = "AMMO"
	MountHeatSink  MountClass = "HEAT_SINK"
	MountJumpJet   MountClass = "JUMP_JET"
	MountMisc      MountClass = "MISC"
	MountWeaponBay MountClass = "WEAPON_BAY"
)

// Mount is one piece of mounted equipment, keyed by its equipment number
type Mount struct {
	Index        int
	Class        MountClass
	Name         string
	Location     int
	Rear         bool
	Hits         int
	Destroyed    bool
	Slots        int
	OmniPodded   bool
	Cost         float64
	Tonnage      float64
	Availability Rating
	EnergyHeat   int

	// Ammunition
	AmmoType     string
	ShotsLeft    int
	FullShots    int
	BayIndex     int
	CapacityTons float64
}

// NoBay marks a mount that does not belong to a weapon bay
const NoBay = -1

// BayType is the kind of unit or cargo a transport bay holds
type BayType string

const (
	BayMech         BayType = "MECH"
	BayASF          BayType = "ASF"
	BaySmallCraft   BayType = "SMALL_CRAFT"
	BayLightVehicle BayType = "LIGHT_VEHICLE"
	BayHeavyVehicle BayType = "HEAVY_VEHICLE"
	BaySuperHeavy   BayType = "SUPER_HEAVY_VEHICLE"
	BayProtomech    BayType = "PROTOMECH"
	BayBattleArmor  BayType = "BATTLE_ARMOR"
	BayInfantry     BayType = "INFANTRY"
	BayCargo        BayType = "CARGO"
	BayLivestock    BayType = "LIVESTOCK"
	BayCrewQuarters BayType = "QUARTERS"
)

// CarriesUnits is true for bays with cubicles that hold whole units
func (b BayType) CarriesUnits() bool {
	switch b {
	case BayMech, BayASF, BaySmallCraft, BayLightVehicle, BayHeavyVehicle, BaySuperHeavy,
		BayProtomech, BayBattleArmor, BayInfantry:
		return true
	}
	return false
}

// Bay is a transport bay. Door ordinals at or above Doors-DamagedDoors are
// destroyed, and cubicles the same way against Capacity-DamagedCubicles.
type Bay struct {
	Index           int
	Type            BayType
	Capacity        float64
	Doors           int
	DamagedDoors    int
	DamagedCubicles int
	Destroyed       bool
	Cost            float64
}

// Cubicles is the number of unit cubicles the bay holds
func (b Bay) Cubicles() int {
	if !b.Type.CarriesUnits() {
		return 0
	}
	return int(b.Capacity)
}

// DockingCollar lets a jumpship carry a dropship
type DockingCollar struct {
	Index   int
	Damaged bool
	Cost    float64
}

// GravDeck is a rotating habitat section on large craft
type GravDeck struct {
	Index    int
	Diameter int
	Damaged  bool
	Cost     float64
}

// SlotClass identifies which list a slot reference points into
type SlotClass string

const (
	SlotLocation  SlotClass = "LOCATION"
	SlotComponent SlotClass = "COMPONENT"
	SlotMount     SlotClass = "MOUNT"
	SlotBay       SlotClass = "BAY"
	SlotBayDoor   SlotClass = "BAY_DOOR"
	SlotCubicle   SlotClass = "CUBICLE"
	SlotCollar    SlotClass = "DOCKING_COLLAR"
	SlotGravDeck  SlotClass = "GRAV_DECK"
)

// SlotRef addresses one slot in a definition for restoration after a replacement
type SlotRef struct {
	Class     SlotClass
	Component ComponentType
	Location  int
	Index     int
}

// CrewRecord is the single composite crew the oracle tracks for a unit
type CrewRecord struct {
	Missing      bool
	ExternalID   string
	Name         string
	Callsign     string
	Size         int
	Piloting     int
	Gunnery      int
	Artillery    int
	Hits         int
	Toughness    int
	CommandBonus int
	Edge         int
	DriverHit    bool
	CommanderHit bool
	Abilities    map[string]string
}

// UnknownCrew is the empty crew record the oracle starts with
func UnknownCrew() CrewRecord {
	return CrewRecord{
		Missing:   true,
		Name:      "Unknown",
		Piloting:  5,
		Gunnery:   4,
		Artillery: 4,
		Abilities: map[string]string{},
	}
}

package definition

import "github.com/andrescamacho/unitforge-go/internal/domain/loadout"

// SheetFormatVersion is written to every encoded sheet
const SheetFormatVersion = 1

// sheetFile is the on-disk layout of a design sheet
type sheetFile struct {
	Format        int             `toml:"format"`
	CorrelationID string          `toml:"correlation_id,omitempty"`
	Profile       profileFile     `toml:"profile"`
	Damage        *int            `toml:"damage_override,omitempty"`
	Crew          crewFile        `toml:"crew"`
	Locations     []locationFile  `toml:"location"`
	Components    []componentFile `toml:"component"`
	Mounts        []mountFile     `toml:"mount"`
	Bays          []bayFile       `toml:"bay"`
	Collars       []collarFile    `toml:"docking_collar"`
	GravDecks     []gravDeckFile  `toml:"grav_deck"`
}

type profileFile struct {
	Chassis          string   `toml:"chassis"`
	Model            string   `toml:"model"`
	Category         string   `toml:"category"`
	Motive           string   `toml:"motive,omitempty"`
	WeightClass      string   `toml:"weight_class,omitempty"`
	Tonnage          float64  `toml:"tonnage"`
	Year             int      `toml:"year,omitempty"`
	Clan             bool     `toml:"clan,omitempty"`
	Omni             bool     `toml:"omni,omitempty"`
	Industrial       bool     `toml:"industrial,omitempty"`
	Support          bool     `toml:"support,omitempty"`
	Spheroid         bool     `toml:"spheroid,omitempty"`
	MilitaryDesign   bool     `toml:"military_design,omitempty"`
	CommandConsole   bool     `toml:"command_console,omitempty"`
	WalkMP           int      `toml:"walk_mp,omitempty"`
	JumpMP           int      `toml:"jump_mp,omitempty"`
	SI               int      `toml:"si,omitempty"`
	OriginalSI       int      `toml:"original_si,omitempty"`
	NavalRepair      bool     `toml:"naval_repair,omitempty"`
	DriveCompact     bool     `toml:"drive_compact,omitempty"`
	HasLF            bool     `toml:"lf_battery,omitempty"`
	HasHPG           bool     `toml:"hpg,omitempty"`
	EngineType       string   `toml:"engine_type,omitempty"`
	EngineTonnage    float64  `toml:"engine_tonnage,omitempty"`
	FuelTonnage      float64  `toml:"fuel_tonnage,omitempty"`
	Fuel             int      `toml:"fuel,omitempty"`
	FuelPerTon       float64  `toml:"fuel_per_ton,omitempty"`
	HeatSinks        int      `toml:"heat_sinks,omitempty"`
	HeatType         int      `toml:"heat_type,omitempty"`
	ArmorTonnage     float64  `toml:"armor_tonnage,omitempty"`
	ArmorCostPerTon  float64  `toml:"armor_cost_per_ton,omitempty"`
	LifeBoats        int      `toml:"life_boats,omitempty"`
	EscapePods       int      `toml:"escape_pods,omitempty"`
	FullCrewSize     int      `toml:"full_crew_size,omitempty"`
	DriverNeeds      int      `toml:"driver_needs,omitempty"`
	GunnerNeeds      int      `toml:"gunner_needs,omitempty"`
	VesselNeeds      int      `toml:"vessel_needs,omitempty"`
	Navigator        bool     `toml:"navigator,omitempty"`
	TechOfficer      bool     `toml:"tech_officer,omitempty"`
	Troopers         int      `toml:"troopers,omitempty"`
	Squads           int      `toml:"squads,omitempty"`
	Cost             float64  `toml:"cost"`
	EnergyWeaponHeat int      `toml:"energy_weapon_heat,omitempty"`
	Quirks           []string `toml:"quirks,omitempty"`
	Availability     string   `toml:"availability,omitempty"`
}

type crewFile struct {
	Missing      bool              `toml:"missing"`
	ExternalID   string            `toml:"external_id,omitempty"`
	Name         string            `toml:"name,omitempty"`
	Callsign     string            `toml:"callsign,omitempty"`
	Size         int               `toml:"size,omitempty"`
	Piloting     int               `toml:"piloting"`
	Gunnery      int               `toml:"gunnery"`
	Artillery    int               `toml:"artillery"`
	Hits         int               `toml:"hits,omitempty"`
	Toughness    int               `toml:"toughness,omitempty"`
	CommandBonus int               `toml:"command_bonus,omitempty"`
	Edge         int               `toml:"edge,omitempty"`
	DriverHit    bool              `toml:"driver_hit,omitempty"`
	CommanderHit bool              `toml:"commander_hit,omitempty"`
	Abilities    map[string]string `toml:"abilities,omitempty"`
}

type locationFile struct {
	Index          int     `toml:"index"`
	Name           string  `toml:"name"`
	Abbr           string  `toml:"abbr,omitempty"`
	Role           string  `toml:"role,omitempty"`
	Internal       int     `toml:"internal"`
	MaxInternal    int     `toml:"max_internal"`
	Armor          int     `toml:"armor"`
	MaxArmor       int     `toml:"max_armor"`
	RearArmor      int     `toml:"rear_armor,omitempty"`
	MaxRearArmor   int     `toml:"max_rear_armor,omitempty"`
	HasRear        bool    `toml:"has_rear,omitempty"`
	Destroyed      bool    `toml:"destroyed,omitempty"`
	Slots          int     `toml:"slots,omitempty"`
	StructureType  string  `toml:"structure_type,omitempty"`
	ArmorType      string  `toml:"armor_type,omitempty"`
	StructureCost  float64 `toml:"structure_cost,omitempty"`
	ArmorPointCost float64 `toml:"armor_point_cost,omitempty"`
}

type componentFile struct {
	Type         string  `toml:"type"`
	Location     int     `toml:"location"`
	Index        int     `toml:"index,omitempty"`
	Name         string  `toml:"name"`
	Hits         int     `toml:"hits,omitempty"`
	MaxHits      int     `toml:"max_hits,omitempty"`
	Destroyed    bool    `toml:"destroyed,omitempty"`
	Cost         float64 `toml:"cost"`
	Tonnage      float64 `toml:"tonnage,omitempty"`
	Availability string  `toml:"availability,omitempty"`
}

type mountFile struct {
	Index        int     `toml:"index"`
	Class        string  `toml:"class"`
	Name         string  `toml:"name"`
	Location     int     `toml:"location"`
	Rear         bool    `toml:"rear,omitempty"`
	Hits         int     `toml:"hits,omitempty"`
	Destroyed    bool    `toml:"destroyed,omitempty"`
	Slots        int     `toml:"slots,omitempty"`
	OmniPodded   bool    `toml:"omni_podded,omitempty"`
	Cost         float64 `toml:"cost"`
	Tonnage      float64 `toml:"tonnage,omitempty"`
	Availability string  `toml:"availability,omitempty"`
	EnergyHeat   int     `toml:"energy_heat,omitempty"`
	AmmoType     string  `toml:"ammo_type,omitempty"`
	ShotsLeft    int     `toml:"shots_left,omitempty"`
	FullShots    int     `toml:"full_shots,omitempty"`
	BayIndex     *int    `toml:"bay,omitempty"`
	CapacityTons float64 `toml:"capacity_tons,omitempty"`
}

type bayFile struct {
	Index           int     `toml:"index"`
	Type            string  `toml:"type"`
	Capacity        float64 `toml:"capacity"`
	Doors           int     `toml:"doors"`
	DamagedDoors    int     `toml:"damaged_doors,omitempty"`
	DamagedCubicles int     `toml:"damaged_cubicles,omitempty"`
	Destroyed       bool    `toml:"destroyed,omitempty"`
	Cost            float64 `toml:"cost,omitempty"`
}

type collarFile struct {
	Index   int     `toml:"index"`
	Damaged bool    `toml:"damaged,omitempty"`
	Cost    float64 `toml:"cost,omitempty"`
}

type gravDeckFile struct {
	Index    int     `toml:"index"`
	Diameter int     `toml:"diameter"`
	Damaged  bool    `toml:"damaged,omitempty"`
	Cost     float64 `toml:"cost,omitempty"`
}

func ratingName(r loadout.Rating) string {
	if r == loadout.RatingX {
		return ""
	}
	return r.String()
}

func parseRating(s string) loadout.Rating {
	if s == "" {
		return loadout.RatingX
	}
	return loadout.ParseRating(s)
}

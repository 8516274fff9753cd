package loadout

// Category is the broad unit family a definition describes
type Category string

const (
	CategoryMech           Category = "MECH"
	CategoryProtomech      Category = "PROTOMECH"
	CategoryTank           Category = "TANK"
	CategoryConvFighter    Category = "CONV_FIGHTER"
	CategoryAerospace      Category = "AEROSPACE"
	CategorySmallCraft     Category = "SMALL_CRAFT"
	CategoryDropship       Category = "DROPSHIP"
	CategoryJumpship       Category = "JUMPSHIP"
	CategoryWarship        Category = "WARSHIP"
	CategorySpaceStation   Category = "SPACE_STATION"
	CategoryBattleArmor    Category = "BATTLE_ARMOR"
	CategoryInfantry       Category = "INFANTRY"
	CategoryGunEmplacement Category = "GUN_EMPLACEMENT"
)

var validCategories = map[Category]bool{
	CategoryMech: true, CategoryProtomech: true, CategoryTank: true, CategoryConvFighter: true,
	CategoryAerospace: true, CategorySmallCraft: true, CategoryDropship: true, CategoryJumpship: true,
	CategoryWarship: true, CategorySpaceStation: true, CategoryBattleArmor: true, CategoryInfantry: true,
	CategoryGunEmplacement: true,
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	return validCategories[c]
}

// IsMech covers battlemechs and industrial mechs
func (c Category) IsMech() bool { return c == CategoryMech }

func (c Category) IsTank() bool { return c == CategoryTank }

// IsInfantry covers conventional infantry and battle armor
func (c Category) IsInfantry() bool {
	return c == CategoryInfantry || c == CategoryBattleArmor
}

func (c Category) IsConventionalInfantry() bool { return c == CategoryInfantry }

// IsSmallCraft covers small craft and dropships
func (c Category) IsSmallCraft() bool {
	return c == CategorySmallCraft || c == CategoryDropship
}

// IsJumpship covers jumpships, warships and space stations
func (c Category) IsJumpship() bool {
	return c == CategoryJumpship || c == CategoryWarship || c == CategorySpaceStation
}

// IsAero covers everything that flies in space
func (c Category) IsAero() bool {
	switch c {
	case CategoryConvFighter, CategoryAerospace, CategorySmallCraft, CategoryDropship,
		CategoryJumpship, CategoryWarship, CategorySpaceStation:
		return true
	}
	return false
}

// IsLargeCraft covers dropships and everything bigger
func (c Category) IsLargeCraft() bool {
	return c == CategoryDropship || c.IsJumpship()
}

// UsesSoloPilot is true for units run by exactly one person
func (c Category) UsesSoloPilot() bool {
	switch c {
	case CategoryMech, CategoryProtomech, CategoryConvFighter, CategoryAerospace:
		return true
	}
	return false
}

// UsesSoldiers is true for units whose crew are the troopers themselves
func (c Category) UsesSoldiers() bool {
	return c.IsInfantry()
}

// IsCrewServed is true where the composite crew is a blend of several people
func (c Category) IsCrewServed() bool {
	return c.IsSmallCraft() || c.IsJumpship() || c.IsTank() || c.IsInfantry()
}

// Motive is the propulsion type of vehicles and conventional infantry
type Motive string

const (
	MotiveNone       Motive = ""
	MotiveTracked    Motive = "TRACKED"
	MotiveWheeled    Motive = "WHEELED"
	MotiveHover      Motive = "HOVER"
	MotiveVTOL       Motive = "VTOL"
	MotiveNaval      Motive = "NAVAL"
	MotiveHydrofoil  Motive = "HYDROFOIL"
	MotiveSubmarine  Motive = "SUBMARINE"
	MotiveWiGE       Motive = "WIGE"
	MotiveLeg        Motive = "LEG"
	MotiveMotorized  Motive = "MOTORIZED"
	MotiveJump       Motive = "JUMP"
	MotiveMechanized Motive = "MECHANIZED"
)

// IsNaval covers surface and submerged water vehicles
func (m Motive) IsNaval() bool {
	return m == MotiveNaval || m == MotiveHydrofoil || m == MotiveSubmarine
}

// WeightClass follows the usual tonnage brackets
type WeightClass string

const (
	WeightUltraLight    WeightClass = "ULTRA_LIGHT"
	WeightLight         WeightClass = "LIGHT"
	WeightMedium        WeightClass = "MEDIUM"
	WeightHeavy         WeightClass = "HEAVY"
	WeightAssault       WeightClass = "ASSAULT"
	WeightSuperHeavy    WeightClass = "SUPER_HEAVY"
	WeightSmallSupport  WeightClass = "SMALL_SUPPORT"
	WeightMediumSupport WeightClass = "MEDIUM_SUPPORT"
	WeightLargeSupport  WeightClass = "LARGE_SUPPORT"
)

// EngineType distinguishes fuel handling in running costs
type EngineType string

const (
	EngineFusion     EngineType = "FUSION"
	EngineFission    EngineType = "FISSION"
	EngineFuelCell   EngineType = "FUEL_CELL"
	EngineCombustion EngineType = "COMBUSTION"
	EngineNone       EngineType = "NONE"
)

// DamageLevel is the oracle's overall damage assessment
type DamageLevel int

const (
	DamageNone DamageLevel = iota
	DamageLight
	DamageModerate
	DamageHeavy
	DamageCrippled
)

func (d DamageLevel) String() string {
	switch d {
	case DamageLight:
		return "Light Damage"
	case DamageModerate:
		return "Moderate Damage"
	case DamageHeavy:
		return "Heavy Damage"
	case DamageCrippled:
		return "Crippled"
	default:
		return "Undamaged"
	}
}

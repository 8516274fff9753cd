package unit

import (
	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// standard fuel price per ton, and the cheaper petrochemical price
const (
	fuelPricePerTon       = 15000.0
	petroFuelPricePerTon  = 1000.0
	fuelLoadsPerMonth     = 4.0
	burnDaysBetweenRefuel = 15.0
)

// SellValue is the sum of what every part on the unit is worth, plus the
// systems of large craft that are not tracked as parts
func (u *Unit) SellValue() shared.Money {
	value := shared.Zero
	for _, p := range u.parts {
		value = value.Plus(p.ActualValue(u.options.PartValues).Times(float64(p.Quantity())))
	}

	profile := u.definition.Profile()
	c := profile.Category
	w := profile.Tonnage

	if c.IsSmallCraft() {
		// bridge and computer
		value = value.Plus(shared.Money(200000 + 10*w)).Plus(200000)
	}
	if c == loadout.CategoryJumpship || c == loadout.CategoryWarship {
		value = value.Plus(u.jumpDriveValue())
	}
	if c == loadout.CategoryProtomech {
		value = value.Plus(shared.Money(2000 * profile.EnergyWeaponHeat))
	}
	return value
}

// jumpDriveValue covers the sail, the drive, its support systems and the rest
// of a jump-capable hull
func (u *Unit) jumpDriveValue() shared.Money {
	profile := u.definition.Profile()
	w := profile.Tonnage

	drive := shared.Money(50000 * (30 + w/7500))
	switch {
	case profile.DriveCompact && profile.HasLF:
		drive = drive.Times(15)
	case profile.DriveCompact:
		drive = drive.Times(5)
	case profile.HasLF:
		drive = drive.Times(3)
	}
	if profile.Category == loadout.CategoryWarship {
		drive = drive.Plus(shared.Money(20000000 * (50 + w/10000)))
	} else {
		drive = drive.Plus(shared.Money(10000000 * (w / 10000)))
	}

	value := drive
	if profile.HasHPG {
		value = value.Plus(1000000000)
	}
	if profile.FuelPerTon > 0 {
		value = value.Plus(shared.Money(200 * float64(profile.Fuel) / profile.FuelPerTon))
	}
	value = value.Plus(shared.Money(profile.ArmorTonnage * profile.ArmorCostPerTon))
	sinkCost := shared.Money(2000 + 4000*float64(profile.HeatType))
	value = value.Plus(sinkCost.Times(float64(profile.HeatSinks)))

	doors := lo.SumBy(u.definition.Bays(), func(b loadout.Bay) int { return b.Doors })
	bays := shared.Zero
	for _, b := range u.definition.Bays() {
		switch b.Type {
		case loadout.BayMech, loadout.BayASF, loadout.BaySmallCraft, loadout.BayLightVehicle, loadout.BayHeavyVehicle:
			bays = bays.Plus(shared.Money(20000 * b.Capacity))
		}
	}
	value = value.Plus(bays).Plus(shared.Money(1000 * doors))
	value = value.Plus(shared.Money(5000 * (profile.LifeBoats + profile.EscapePods)))
	return value
}

// UnitCostMultiplier is the construction overhead on top of the parts. Units
// past repair are worth their parts and nothing more.
func (u *Unit) UnitCostMultiplier() float64 {
	if !u.IsRepairable() {
		return 1.0
	}
	profile := u.definition.Profile()
	multiplier := 1.0
	tonnage := 100.0

	switch c := profile.Category; {
	case c == loadout.CategoryMech && profile.Industrial:
		tonnage = 400
	case c.IsTank() && profile.Motive == loadout.MotiveVTOL:
		tonnage = 30
	case c.IsTank():
		switch profile.Motive {
		case loadout.MotiveWheeled, loadout.MotiveNaval:
			tonnage = 200
		case loadout.MotiveHover, loadout.MotiveSubmarine:
			tonnage = 50
		case loadout.MotiveHydrofoil:
			tonnage = 75
		case loadout.MotiveWiGE:
			tonnage = 25
		}
	case c == loadout.CategoryDropship:
		multiplier = 36
		if profile.Spheroid {
			multiplier = 28
		}
	case c == loadout.CategorySmallCraft:
		tonnage = 50
	case c == loadout.CategorySpaceStation:
		multiplier = 5
	case c == loadout.CategoryWarship:
		multiplier = 2
	case c == loadout.CategoryJumpship:
		multiplier = 1.25
	case c.IsAero():
		tonnage = 200
	}

	c := profile.Category
	if !c.IsInfantry() && c != loadout.CategoryDropship && !c.IsJumpship() {
		multiplier = 1 + profile.Tonnage/tonnage
	}
	if profile.Omni {
		multiplier *= 1.25
	}
	return multiplier
}

// BuyCost is the market price of a new unit of this design
func (u *Unit) BuyCost() shared.Money {
	profile := u.definition.Profile()
	cost := shared.Money(profile.Cost)
	if profile.Clan {
		cost = cost.Times(u.options.ClanPriceModifier)
	}
	return cost
}

// WeeklyMaintenanceCost is the upkeep for one week
func (u *Unit) WeeklyMaintenanceCost() shared.Money {
	profile := u.definition.Profile()
	c := profile.Category
	vtol := c.IsTank() && profile.Motive == loadout.MotiveVTOL

	if !u.options.UsePercentageMaintenance {
		switch {
		case c == loadout.CategoryMech && profile.Omni:
			return 100
		case c == loadout.CategoryMech:
			return 75
		case c == loadout.CategoryWarship:
			return 5000
		case c.IsJumpship():
			return 800
		case c == loadout.CategoryDropship:
			return 500
		case c == loadout.CategoryConvFighter:
			return 50
		case c.IsAero() && profile.Omni:
			return 125
		case c.IsAero(), vtol:
			return 65
		case c.IsTank():
			return 25
		case c == loadout.CategoryBattleArmor:
			return shared.Money(50 * profile.Troopers)
		case c == loadout.CategoryInfantry:
			return shared.Money(10 * profile.Squads)
		}
		return shared.Zero
	}

	value := u.BuyCost()
	if u.options.UseSellValueForMaint {
		value = u.SellValue()
	}

	var rate float64
	switch {
	case c == loadout.CategoryMech:
		rate = 0.02
	case c == loadout.CategoryWarship:
		rate = 0.07
	case c.IsJumpship():
		rate = 0.06
	case c == loadout.CategoryDropship:
		rate = 0.05
	case c == loadout.CategoryConvFighter:
		rate = 0.03
	case c.IsAero():
		rate = 0.04
	case vtol:
		rate = 0.02
	case c.IsTank():
		rate = 0.015
	case c == loadout.CategoryBattleArmor:
		rate = 0.03
	case c == loadout.CategoryInfantry:
		rate = 0.005
	}

	cost := value.Times(rate)
	if u.IsMothballed() {
		cost = cost.Times(0.1)
	}
	return cost.DividedBy(52)
}

// MaintenanceCost is the upkeep for one maintenance cycle
func (u *Unit) MaintenanceCost() shared.Money {
	days := u.options.MaintenanceCycleDays
	if days <= 0 {
		days = 7
	}
	return u.WeeklyMaintenanceCost().Times(float64(days)).DividedBy(7)
}

// SparePartsCost is the monthly spend on spares. Mothballed units need none.
func (u *Unit) SparePartsCost() shared.Money {
	if u.IsMothballed() {
		return shared.Zero
	}
	profile := u.definition.Profile()
	c := profile.Category
	w := profile.Tonnage

	var cost shared.Money
	switch {
	case c.IsJumpship():
		cost = shared.Money(w * 0.0001 * 15000)
	case c.IsAero():
		cost = shared.Money(w * 0.001 * 15000)
	case c.IsTank():
		cost = shared.Money(w * 0.001 * 8000)
	case c == loadout.CategoryMech, c == loadout.CategoryBattleArmor:
		cost = shared.Money(w * 0.001 * 10000)
	case c == loadout.CategoryInfantry:
		switch profile.Motive {
		case loadout.MotiveMechanized:
			cost = shared.Money(w * 0.001 * 10000)
		case loadout.MotiveLeg:
			cost = shared.Money(3 * 0.002 * 10000)
		case loadout.MotiveJump:
			cost = shared.Money(4 * 0.002 * 10000)
		case loadout.MotiveMotorized:
			cost = shared.Money(6 * 0.002 * 10000)
		default:
			cost = shared.Money(w * 0.002 * 10000)
		}
	}

	if u.HasQuirk("easy_maintain") {
		cost = cost.Times(0.8)
	}
	if u.HasQuirk("difficult_maintain") {
		cost = cost.Times(1.25)
	}
	if u.HasQuirk("non_standard") {
		cost = cost.Times(2.0)
	}
	if u.HasQuirk("ubiquitous_is") {
		cost = cost.Times(0.75)
	}
	return cost
}

// AmmoCost is the monthly spend on ammunition: a quarter of what is loaded
func (u *Unit) AmmoCost() shared.Money {
	cost := shared.Zero
	for _, p := range u.parts {
		if p.Kind() == part.KindAmmoBin && !p.IsMissing() {
			cost = cost.Plus(p.StickerPrice())
		}
	}
	return cost.Times(0.25)
}

// FuelCost is the monthly spend on fuel
func (u *Unit) FuelCost() shared.Money {
	profile := u.definition.Profile()
	c := profile.Category

	switch {
	case c.IsSmallCraft(), c.IsJumpship():
		return shared.Money(u.tonsBurnedPerDay())
	case c == loadout.CategoryConvFighter:
		price := petroFuelPricePerTon
		if profile.EngineType == loadout.EngineFusion {
			price = fuelPricePerTon
		}
		return shared.Money(profile.FuelTonnage * fuelLoadsPerMonth * price)
	case c == loadout.CategoryAerospace:
		return shared.Money(profile.FuelTonnage * fuelLoadsPerMonth * fuelPricePerTon)
	case c.IsTank(), c == loadout.CategoryMech:
		return u.vehicleFuelCost()
	case c == loadout.CategoryBattleArmor:
		if profile.JumpMP > 0 {
			return shared.Money(profile.Tonnage * 0.02 * petroFuelPricePerTon * fuelLoadsPerMonth)
		}
	case c == loadout.CategoryInfantry:
		if profile.Motive != loadout.MotiveLeg {
			return shared.Money(profile.Tonnage * 0.02 * petroFuelPricePerTon * fuelLoadsPerMonth)
		}
	}
	return shared.Zero
}

func (u *Unit) vehicleFuelCost() shared.Money {
	profile := u.definition.Profile()
	var price float64
	switch profile.EngineType {
	case loadout.EngineFuelCell:
		price = fuelPricePerTon
	case loadout.EngineCombustion:
		price = petroFuelPricePerTon
	default:
		return shared.Zero
	}
	if profile.Category.IsTank() && profile.Support {
		return shared.Money(profile.FuelTonnage * price * fuelLoadsPerMonth)
	}
	return shared.Money(profile.EngineTonnage * 0.1 * price * fuelLoadsPerMonth)
}

// tonsBurnedPerDay prices the daily burn of large craft, in C-bills
func (u *Unit) tonsBurnedPerDay() float64 {
	profile := u.definition.Profile()
	w := profile.Tonnage

	switch profile.Category {
	case loadout.CategoryDropship:
		burn := 1.84
		if !profile.MilitaryDesign {
			switch {
			case w < 1000:
				burn = 1.84
			case w < 4000:
				burn = 2.82
			case w < 9000:
				burn = 3.37
			case w < 20000:
				burn = 4.22
			case w < 30000:
				burn = 6.52
			case w < 40000:
				burn = 7.71
			case w < 50000:
				burn = 7.74
			case w < 70000:
				burn = 8.37
			default:
				burn = 8.83
			}
		}
		return burn * burnDaysBetweenRefuel * fuelPricePerTon
	case loadout.CategorySmallCraft:
		return 1.84 * burnDaysBetweenRefuel * fuelPricePerTon
	case loadout.CategoryJumpship, loadout.CategoryWarship, loadout.CategorySpaceStation:
		var burn float64
		switch {
		case w < 50000:
			burn = 2.82
		case w < 100000:
			burn = 9.77
		case w < 200000:
			burn = 19.75
		default:
			burn = 39.52
		}
		if profile.Category == loadout.CategoryWarship {
			return burn * burnDaysBetweenRefuel * fuelPricePerTon
		}
		return burn * 3 * fuelPricePerTon
	}
	return 0
}

// ValueOfAllMissingParts is what it would cost to make the unit whole: new
// parts for the missing ones plus the armor and ammunition it is short
func (u *Unit) ValueOfAllMissingParts() shared.Money {
	value := shared.Zero
	for _, p := range u.parts {
		value = value.Plus(p.ValueNeeded())
	}
	return value
}

package unit

import (
	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/pkg/utils"
)

// Maintenance counters

func (u *Unit) DaysSinceMaintenance() int   { return u.daysSinceMaintenance }
func (u *Unit) DaysActivelyMaintained() int { return u.daysActivelyMaintained }
func (u *Unit) AstechDaysMaintained() int   { return u.astechDaysMaintained }

// IncrementDaysSinceMaintenance accrues one day. A maintained day also books
// the astechs that helped.
func (u *Unit) IncrementDaysSinceMaintenance(maintained bool, astechs int) {
	u.daysSinceMaintenance++
	if maintained {
		u.daysActivelyMaintained++
		u.astechDaysMaintained += astechs
	}
}

// AstechTeam is how many astechs help maintain the unit each day. A self-crewed
// unit counts the healthy members behind its engineer; otherwise it is the
// team of the assigned tech.
func (u *Unit) AstechTeam() int {
	if u.engineer != nil {
		return u.engineer.Size
	}
	if tech := u.person(u.tech); tech != nil {
		return tech.Astechs()
	}
	return 0
}

// ResetDaysSinceMaintenance starts a fresh maintenance cycle
func (u *Unit) ResetDaysSinceMaintenance() {
	u.daysSinceMaintenance = 0
	u.daysActivelyMaintained = 0
	u.astechDaysMaintained = 0
}

// RestoreMaintenanceCounters sets the counters from a snapshot. Negative
// values are treated as zero.
func (u *Unit) RestoreMaintenanceCounters(since, active, astechDays int) {
	u.daysSinceMaintenance = utils.Max(since, 0)
	u.daysActivelyMaintained = utils.Max(active, 0)
	u.astechDaysMaintained = utils.Max(astechDays, 0)
}

// MaintenanceCoverage is the share of days in the cycle that had a tech on the job
func (u *Unit) MaintenanceCoverage() float64 {
	if u.daysSinceMaintenance == 0 {
		return 0
	}
	return float64(u.daysActivelyMaintained) / float64(u.daysSinceMaintenance)
}

// AstechsMaintained is the average astech team size over the cycle
func (u *Unit) AstechsMaintained() int {
	if u.daysSinceMaintenance == 0 {
		return 0
	}
	return u.astechDaysMaintained / u.daysSinceMaintenance
}

// IsMaintenanceDue is true once a full cycle has passed
func (u *Unit) IsMaintenanceDue() bool {
	days := u.options.MaintenanceCycleDays
	if days <= 0 {
		return false
	}
	return u.daysSinceMaintenance >= days
}

// IsAvailable is true when the unit is present, not in combat and not in storage.
// A refit makes the unit unavailable unless ignoreRefit is set.
func (u *Unit) IsAvailable(ignoreRefit bool) bool {
	return u.IsPresent() && !u.IsDeployed() && (ignoreRefit || !u.IsRefitting()) &&
		!u.IsMothballing() && !u.IsMothballed()
}

// RequiresMaintenance is false for units in storage and for foot infantry
func (u *Unit) RequiresMaintenance() bool {
	return u.IsAvailable(false) && !u.Category().IsConventionalInfantry()
}

// MaintenanceTime is the minutes of tech time a maintenance check takes
func (u *Unit) MaintenanceTime() int {
	p := u.definition.Profile()
	switch c := p.Category; {
	case c == loadout.CategoryMech:
		switch p.WeightClass {
		case loadout.WeightUltraLight:
			return 30
		case loadout.WeightLight:
			return 45
		case loadout.WeightMedium:
			return 60
		case loadout.WeightHeavy:
			return 75
		default:
			return 90
		}
	case c == loadout.CategoryProtomech:
		return 20
	case c == loadout.CategoryBattleArmor:
		return 10
	case c == loadout.CategoryConvFighter:
		return 45
	case c == loadout.CategorySmallCraft:
		return 90
	case c == loadout.CategoryAerospace:
		switch p.WeightClass {
		case loadout.WeightLight:
			return 45
		case loadout.WeightMedium:
			return 60
		default:
			return 75
		}
	case c.IsTank() && p.Support:
		switch p.WeightClass {
		case loadout.WeightSmallSupport:
			return 20
		case loadout.WeightMediumSupport:
			return 35
		default:
			return 100
		}
	case c.IsTank():
		switch p.WeightClass {
		case loadout.WeightLight:
			return 30
		case loadout.WeightMedium:
			return 50
		case loadout.WeightHeavy:
			return 75
		case loadout.WeightAssault:
			return 90
		default:
			return 120
		}
	}
	return 0
}

// MaintenanceMultiplier scales maintenance time by where the work is done
func (u *Unit) MaintenanceMultiplier() float64 {
	switch u.site {
	case SiteField:
		return 2
	case SiteMobileBase:
		return 1.5
	case SiteFacility, SiteFactory:
		return 0.8
	}
	return 1
}

// TotalMaintenanceTime is the maintenance time adjusted for the site
func (u *Unit) TotalMaintenanceTime() int {
	return utils.RoundHalfUp(float64(u.MaintenanceTime()) * u.MaintenanceMultiplier())
}

// ratedParts are the parts that take part in quality: everything not missing
func (u *Unit) ratedParts() []*part.Part {
	var out []*part.Part
	for _, p := range u.parts {
		if !p.IsMissing() {
			out = append(out, p)
		}
	}
	return out
}

// Quality is the rounded mean quality of the parts on the unit, D with none
func (u *Unit) Quality() part.Quality {
	rated := u.ratedParts()
	if len(rated) == 0 {
		return part.DefaultQuality
	}
	sum := 0
	for _, p := range rated {
		sum += int(p.Quality())
	}
	return part.Quality(utils.RoundHalfUp(float64(sum) / float64(len(rated))))
}

// SetQuality sets every part on the unit to the given quality
func (u *Unit) SetQuality(q part.Quality) {
	for _, p := range u.ratedParts() {
		p.SetQuality(q)
	}
}

// QualityName is the quality letter under the campaign naming scheme
func (u *Unit) QualityName() string {
	return u.Quality().Name(u.options.ReverseQualityNames)
}

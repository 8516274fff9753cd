package unit

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/pkg/utils"
)

// Composite skill bounds and the value used when nobody has the skill
const (
	untrainedSkill      = 13
	untrainedAntiMech   = 8
	maxCompositePilot   = 8
	maxCompositeGunnery = 7
	maxCompositeArty    = 8
)

// ResetCrewAndComposite derives the composite crew from the assigned people and
// writes it to the definition. It runs after every crew change and after
// reconciliation.
func (u *Unit) ResetCrewAndComposite() {
	crew := u.compositeSkills()
	commander := u.Commander()

	if !crew.Missing {
		if commander == nil {
			crew.Missing = true
		} else {
			crew.Name = commander.FullTitle()
			crew.Callsign = commander.Callsign()
			crew.ExternalID = commander.ID().String()
			crew.Toughness = commander.Toughness()
			crew.CommanderHit = u.Category().IsTank() && commander.Hits() > 0
		}
	}

	if u.UsesSoloPilot() && commander != nil {
		if !commander.IsActive() {
			crew.Missing = true
		}
		crew.Hits = commander.Hits()
	}

	crew.Abilities = map[string]string{}
	if u.options.UseAbilities && commander != nil {
		if u.Category().IsCrewServed() {
			u.applyCrewAbilities(&crew, commander)
		} else {
			crew.Abilities = commander.Abilities()
		}
	}

	u.definition.ApplyCrew(crew)
	u.resetEngineer()
}

// compositeSkills blends skill values across the crew
func (u *Unit) compositeSkills() loadout.CrewRecord {
	crew := loadout.UnknownCrew()
	crew.Name = ""
	crew.Size = 0

	if u.UsesSoloPilot() {
		return u.soloPilotSkills(crew)
	}
	if len(u.drivers) == 0 && len(u.gunners) == 0 {
		crew.Missing = true
		return crew
	}

	profile := u.definition.Profile()
	driveType := personnel.DrivingSkillFor(profile.Category, profile.Motive)
	gunType := personnel.GunnerySkillFor(profile.Category)
	artillery := untrainedSkill
	var sumPiloting, nDrivers, sumGunnery, nGunners, nCrew int

	for _, p := range u.people(u.drivers) {
		if p.Hits() > 0 {
			continue
		}
		if s, ok := p.Skill(driveType); ok {
			sumPiloting += s.Value
			nDrivers++
		} else if u.Category().IsInfantry() {
			sumPiloting += untrainedAntiMech
			nDrivers++
		}
		if u.Category().IsTank() && u.FullCrewSize() == 1 {
			if s, ok := p.Skill(gunType); ok {
				sumGunnery += s.Value
				nGunners++
			}
		}
		if u.options.UseAdvancedMedical {
			mod, _ := p.InjuryModifiers()
			sumPiloting += mod
		}
	}
	for _, p := range u.people(u.gunners) {
		if p.Hits() > 0 {
			continue
		}
		if s, ok := p.Skill(gunType); ok {
			sumGunnery += s.Value
			nGunners++
		}
		if s, ok := p.Skill(personnel.SkillArtillery); ok && s.Value < artillery {
			artillery = s.Value
		}
		if u.options.UseAdvancedMedical {
			_, mod := p.InjuryModifiers()
			sumGunnery += mod
		}
	}
	for _, p := range u.people(u.vesselCrew) {
		if p.Hits() == 0 {
			nCrew++
		}
	}
	if nav := u.person(u.navigator); nav != nil && nav.Hits() == 0 {
		nCrew++
	}

	piloting, gunnery := untrainedSkill, untrainedSkill
	if nDrivers > 0 {
		piloting = utils.RoundHalfUp(float64(sumPiloting) / float64(nDrivers))
	}
	if nGunners > 0 {
		gunnery = utils.RoundHalfUp(float64(sumGunnery) / float64(nGunners))
	}

	switch {
	case u.Category().IsTank():
		if nDrivers == 0 && nGunners == 0 {
			crew.Missing = true
			return crew
		}
		crew.DriverHit = nDrivers == 0
	case u.Category().IsInfantry():
		if nDrivers == 0 && nGunners == 0 {
			crew.Missing = true
			return crew
		}
	case u.Category().IsSmallCraft() || u.Category().IsJumpship():
		crew.Hits = crewShortfallHits(nDrivers+nGunners+nCrew, u.FullCrewSize())
	}

	crew.Piloting = utils.Clamp(piloting, 0, maxCompositePilot)
	crew.Gunnery = utils.Clamp(gunnery, 0, maxCompositeGunnery)
	crew.Artillery = utils.Clamp(artillery, 0, maxCompositeArty)
	crew.Size = nDrivers + nGunners + nCrew
	if u.Category().IsInfantry() {
		crew.Size = nDrivers
	}
	crew.Missing = false
	return crew
}

func (u *Unit) soloPilotSkills(crew loadout.CrewRecord) loadout.CrewRecord {
	pilot := u.Commander()
	if pilot == nil {
		crew.Missing = true
		return crew
	}
	profile := u.definition.Profile()
	skill := func(t personnel.SkillType) int {
		if s, ok := pilot.Skill(t); ok {
			return s.Value
		}
		return untrainedSkill
	}
	piloting := skill(personnel.DrivingSkillFor(profile.Category, profile.Motive))
	gunnery := skill(personnel.GunnerySkillFor(profile.Category))
	if u.options.UseAdvancedMedical {
		pMod, gMod := pilot.InjuryModifiers()
		piloting += pMod
		gunnery += gMod
	}

	crew.Piloting = utils.Clamp(piloting, 0, maxCompositePilot)
	crew.Gunnery = utils.Clamp(gunnery, 0, maxCompositeGunnery)
	crew.Artillery = utils.Clamp(skill(personnel.SkillArtillery), 0, maxCompositeArty)
	crew.Size = 1
	crew.Missing = false
	return crew
}

// crewShortfallHits converts an understaffed spacecraft crew into crew hits,
// at least one whenever any seat is empty
func crewShortfallHits(present, full int) int {
	if full <= 0 {
		return 0
	}
	percent := 1.0 - float64(present)/float64(full)
	if percent < 0 {
		percent = 0
	}
	hits := int(percent * 6)
	if percent > 0 && hits == 0 {
		hits = 1
	}
	return hits
}

// applyCrewAbilities votes the crew's abilities onto the composite. The
// commander's values are the baseline; an ability value held by more than half
// the combat crew replaces it, and implants need the whole crew.
func (u *Unit) applyCrewAbilities(crew *loadout.CrewRecord, commander *personnel.Person) {
	combatIDs := append([]uuid.UUID(nil), u.drivers...)
	if !u.Category().IsInfantry() {
		combatIDs = append(combatIDs, u.gunners...)
	}
	combat := u.people(combatIDs)
	crewSize := float64(len(combatIDs))

	names := lo.Keys(commander.Abilities())
	for _, p := range combat {
		names = append(names, lo.Keys(p.Abilities())...)
	}
	names = lo.Uniq(names)

	abilities := commander.Abilities()
	for _, name := range names {
		counts := lo.CountValues(lo.Map(combat, func(p *personnel.Person, _ int) string {
			return p.Ability(name)
		}))
		best, bestCount := "", 0
		for value, count := range counts {
			passes := float64(count) > crewSize/2
			if personnel.ImplantAbilities[name] {
				passes = float64(count) >= crewSize
			}
			if passes && count > bestCount {
				best, bestCount = value, count
			}
		}
		if bestCount == 0 {
			continue
		}
		if best == "" {
			delete(abilities, name)
		} else {
			abilities[name] = best
		}
	}
	crew.Abilities = abilities

	if u.options.UseEdge && crewSize > 0 {
		sum := 0
		for _, p := range combat {
			sum += p.Edge()
		}
		crew.Edge = utils.RoundHalfUp(float64(sum) / crewSize)
	}

	if s, ok := commander.Skill(personnel.SkillTactics); ok {
		crew.CommandBonus = s.Value
	} else {
		crew.CommandBonus = 0
	}
}

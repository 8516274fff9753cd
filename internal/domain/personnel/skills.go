package personnel

import "github.com/andrescamacho/unitforge-go/internal/domain/loadout"

// SkillType names a trainable skill
type SkillType string

const (
	SkillPilotMech       SkillType = "piloting/mech"
	SkillGunneryMech     SkillType = "gunnery/mech"
	SkillPilotGroundVee  SkillType = "piloting/ground_vehicle"
	SkillPilotVTOL       SkillType = "piloting/vtol"
	SkillPilotNaval      SkillType = "piloting/naval"
	SkillGunneryVehicle  SkillType = "gunnery/vehicle"
	SkillPilotAero       SkillType = "piloting/aerospace"
	SkillGunneryAero     SkillType = "gunnery/aerospace"
	SkillPilotJet        SkillType = "piloting/jet"
	SkillGunneryJet      SkillType = "gunnery/jet"
	SkillPilotSpace      SkillType = "piloting/spacecraft"
	SkillGunnerySpace    SkillType = "gunnery/spacecraft"
	SkillGunneryBA       SkillType = "gunnery/battlesuit"
	SkillGunneryProto    SkillType = "gunnery/protomech"
	SkillSmallArms       SkillType = "small_arms"
	SkillAntiMech        SkillType = "anti_mech"
	SkillArtillery       SkillType = "artillery"
	SkillTactics         SkillType = "tactics"
	SkillNavigation      SkillType = "navigation"
	SkillTechVessel      SkillType = "tech/vessel"
	SkillTechMechanic    SkillType = "tech/mechanic"
	SkillTechMech        SkillType = "tech/mech"
	SkillTechAero        SkillType = "tech/aero"
	SkillTechBattleArmor SkillType = "tech/ba"
)

var validSkills = map[SkillType]bool{
	SkillPilotMech: true, SkillGunneryMech: true, SkillPilotGroundVee: true, SkillPilotVTOL: true,
	SkillPilotNaval: true, SkillGunneryVehicle: true, SkillPilotAero: true, SkillGunneryAero: true,
	SkillPilotJet: true, SkillGunneryJet: true, SkillPilotSpace: true, SkillGunnerySpace: true,
	SkillGunneryBA: true, SkillGunneryProto: true, SkillSmallArms: true, SkillAntiMech: true,
	SkillArtillery: true, SkillTactics: true, SkillNavigation: true, SkillTechVessel: true,
	SkillTechMechanic: true, SkillTechMech: true, SkillTechAero: true, SkillTechBattleArmor: true,
}

// IsValid reports whether s is a known skill
func (s SkillType) IsValid() bool {
	return validSkills[s]
}

// DrivingSkillFor is the skill used to drive or pilot a unit
func DrivingSkillFor(category loadout.Category, motive loadout.Motive) SkillType {
	switch category {
	case loadout.CategoryMech:
		return SkillPilotMech
	case loadout.CategoryProtomech:
		return SkillGunneryProto
	case loadout.CategoryTank:
		switch {
		case motive == loadout.MotiveVTOL:
			return SkillPilotVTOL
		case motive.IsNaval():
			return SkillPilotNaval
		default:
			return SkillPilotGroundVee
		}
	case loadout.CategoryConvFighter:
		return SkillPilotJet
	case loadout.CategoryAerospace:
		return SkillPilotAero
	case loadout.CategoryBattleArmor, loadout.CategoryInfantry:
		return SkillAntiMech
	}
	if category.IsSmallCraft() || category.IsJumpship() {
		return SkillPilotSpace
	}
	return SkillGunneryVehicle
}

// GunnerySkillFor is the skill used to fire a unit's weapons
func GunnerySkillFor(category loadout.Category) SkillType {
	switch category {
	case loadout.CategoryMech:
		return SkillGunneryMech
	case loadout.CategoryProtomech:
		return SkillGunneryProto
	case loadout.CategoryTank, loadout.CategoryGunEmplacement:
		return SkillGunneryVehicle
	case loadout.CategoryConvFighter:
		return SkillGunneryJet
	case loadout.CategoryAerospace:
		return SkillGunneryAero
	case loadout.CategoryBattleArmor:
		return SkillGunneryBA
	case loadout.CategoryInfantry:
		return SkillSmallArms
	}
	return SkillGunnerySpace
}

// ImplantAbilities are the options that represent surgical implants.
// They need every crew member to carry them before the crew gets them.
var ImplantAbilities = map[string]bool{
	"vdni":              true,
	"bvdni":             true,
	"proto_dni":         true,
	"dermal_armor":      true,
	"dermal_camo_armor": true,
	"tsm_implant":       true,
	"comm_implant":      true,
	"boost_comm":        true,
	"cyber_eye_im":      true,
	"cyber_eye_tele":    true,
	"mm_eye_im":         true,
	"cyber_imp_audio":   true,
	"cyber_imp_visual":  true,
	"cyber_imp_laser":   true,
	"filtration":        true,
	"pain_shunt":        true,
	"multi_trac":        true,
	"suicide_implants":  true,
}

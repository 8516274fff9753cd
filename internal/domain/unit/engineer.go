package unit

import (
	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
)

// Tech work day and overtime allowance, in minutes
const (
	TechWorkDay  = 480
	TechOvertime = TechWorkDay / 2
)

// regularMechanicLevel is the skill level given to an infantry engineer, which
// only ever reloads ammunition
const regularMechanicLevel = 3

// Engineer is the synthetic technician that stands in for the crew of a
// self-crewed unit. Its id is the commander's id.
type Engineer struct {
	ID           uuid.UUID
	Name         string
	Rank         int
	Skill        personnel.SkillType
	Level        int
	Bonus        int
	Size         int
	Edge         int
	MinutesLeft  int
	OvertimeLeft int
}

// resetEngineer rebuilds the engineer of a self-crewed unit. Without one any
// mothball transition and any part work in progress is cancelled.
func (u *Unit) resetEngineer() {
	if !u.IsSelfCrewed() {
		return
	}

	minutesLeft, overtimeLeft := TechWorkDay, TechOvertime
	if u.engineer != nil {
		minutesLeft, overtimeLeft = u.engineer.MinutesLeft, u.engineer.OvertimeLeft
	} else {
		for _, p := range u.ActiveCrew() {
			if p.MinutesLeft() < minutesLeft {
				minutesLeft = p.MinutesLeft()
			}
			if p.OvertimeLeft() < overtimeLeft {
				overtimeLeft = p.OvertimeLeft()
			}
		}
	}

	commander := u.Commander()
	switch {
	case u.Category().IsInfantry():
		u.engineer = nil
		if commander != nil {
			u.engineer = &Engineer{
				ID:           commander.ID(),
				Name:         commander.FullTitle(),
				Rank:         commander.Rank(),
				Skill:        personnel.SkillTechMechanic,
				Level:        regularMechanicLevel,
				Size:         1,
				MinutesLeft:  minutesLeft,
				OvertimeLeft: overtimeLeft,
			}
		}
	default:
		u.engineer = u.vesselEngineer(commander, minutesLeft, overtimeLeft)
	}

	if u.engineer != nil {
		for _, p := range u.parts {
			p.RetargetTech(u.engineer.ID)
		}
		return
	}

	if u.InTransition() {
		u.mothball.Abort()
	}
	for _, p := range u.parts {
		if p.IsBeingWorkedOn() {
			p.CancelAssignment()
		}
	}
}

func (u *Unit) vesselEngineer(commander *personnel.Person, minutesLeft, overtimeLeft int) *Engineer {
	if commander == nil || len(u.vesselCrew) == 0 {
		return nil
	}

	var nCrew, sumLevel, sumBonus, sumEdge, healthy int
	name := "Nobody"
	bestRank := -1 << 31
	for _, p := range u.people(u.vesselCrew) {
		sumEdge += p.Edge()
		if p.Hits() == 0 {
			healthy++
		}
		if s, ok := p.Skill(personnel.SkillTechVessel); ok {
			sumLevel += s.Level
			sumBonus += s.Bonus
			nCrew++
		}
		if p.Rank() > bestRank {
			name = p.FullTitle()
			bestRank = p.Rank()
		}
	}
	if nCrew == 0 {
		return nil
	}

	return &Engineer{
		ID:           commander.ID(),
		Name:         name,
		Rank:         bestRank,
		Skill:        personnel.SkillTechVessel,
		Level:        sumLevel / nCrew,
		Bonus:        sumBonus / nCrew,
		Size:         healthy,
		Edge:         sumEdge / nCrew,
		MinutesLeft:  minutesLeft,
		OvertimeLeft: overtimeLeft,
	}
}

// SpendEngineerTime books work minutes against the engineer's day
func (u *Unit) SpendEngineerTime(minutes int) {
	if u.engineer == nil {
		return
	}
	u.engineer.MinutesLeft -= minutes
	if u.engineer.MinutesLeft < 0 {
		u.engineer.OvertimeLeft += u.engineer.MinutesLeft
		u.engineer.MinutesLeft = 0
	}
	if u.engineer.OvertimeLeft < 0 {
		u.engineer.OvertimeLeft = 0
	}
}

// ResetEngineerDay restores a full work day to the engineer at the start of a day
func (u *Unit) ResetEngineerDay() {
	if u.engineer == nil {
		return
	}
	u.engineer.MinutesLeft = TechWorkDay
	u.engineer.OvertimeLeft = TechOvertime
}

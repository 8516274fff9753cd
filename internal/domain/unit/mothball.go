package unit

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// MothballStatus is where a unit stands in the storage lifecycle
type MothballStatus string

const (
	MothballStatusActive      MothballStatus = "ACTIVE"
	MothballStatusMothballing MothballStatus = "MOTHBALLING"
	MothballStatusMothballed  MothballStatus = "MOTHBALLED"
	MothballStatusActivating  MothballStatus = "ACTIVATING"
)

// MothballMachine manages the ACTIVE → MOTHBALLING → MOTHBALLED → ACTIVATING → ACTIVE cycle.
//
// Invariants:
//   - minutesLeft > 0 exactly when a transition is in progress
//   - Timestamps are automatically managed
//   - Clock is injected for testability
type MothballMachine struct {
	status      MothballStatus
	minutesLeft int
	startedAt   *time.Time
	updatedAt   time.Time
	clock       shared.Clock
}

// NewMothballMachine creates a machine for an active unit
func NewMothballMachine(clock shared.Clock) *MothballMachine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MothballMachine{
		status:    MothballStatusActive,
		updatedAt: clock.Now(),
		clock:     clock,
	}
}

// RestoreMothballMachine rebuilds the machine from the persisted flag and timer
func RestoreMothballMachine(mothballed bool, minutesLeft int, clock shared.Clock) *MothballMachine {
	m := NewMothballMachine(clock)
	if minutesLeft < 0 {
		minutesLeft = 0
	}
	m.minutesLeft = minutesLeft
	switch {
	case minutesLeft > 0 && mothballed:
		m.status = MothballStatusActivating
	case minutesLeft > 0:
		m.status = MothballStatusMothballing
	case mothballed:
		m.status = MothballStatusMothballed
	}
	return m
}

// Getters

func (m *MothballMachine) Status() MothballStatus { return m.status }
func (m *MothballMachine) MinutesLeft() int       { return m.minutesLeft }
func (m *MothballMachine) StartedAt() *time.Time  { return m.startedAt }
func (m *MothballMachine) UpdatedAt() time.Time   { return m.updatedAt }

// IsMothballedFlag is the persisted flag: true from the end of mothballing
// until activation completes
func (m *MothballMachine) IsMothballedFlag() bool {
	return m.status == MothballStatusMothballed || m.status == MothballStatusActivating
}

// InTransition is true while the timer runs
func (m *MothballMachine) InTransition() bool {
	return m.status == MothballStatusMothballing || m.status == MothballStatusActivating
}

// State transition methods

// BeginMothballing moves ACTIVE → MOTHBALLING
func (m *MothballMachine) BeginMothballing(minutes int) error {
	if m.status != MothballStatusActive {
		return shared.NewInvalidTransitionError("", string(m.status), string(MothballStatusMothballing))
	}
	m.begin(MothballStatusMothballing, minutes)
	return nil
}

// BeginActivating moves MOTHBALLED → ACTIVATING
func (m *MothballMachine) BeginActivating(minutes int) error {
	if m.status != MothballStatusMothballed {
		return shared.NewInvalidTransitionError("", string(m.status), string(MothballStatusActivating))
	}
	m.begin(MothballStatusActivating, minutes)
	return nil
}

func (m *MothballMachine) begin(status MothballStatus, minutes int) {
	now := m.clock.Now()
	m.status = status
	m.minutesLeft = minutes
	if m.minutesLeft < 1 {
		m.minutesLeft = 1
	}
	m.startedAt = &now
	m.updatedAt = now
}

// Work spends tech minutes on the running transition. Returns true when the
// timer reaches zero; the caller then completes the transition.
func (m *MothballMachine) Work(minutes int) bool {
	if !m.InTransition() || minutes <= 0 {
		return false
	}
	m.minutesLeft -= minutes
	if m.minutesLeft < 0 {
		m.minutesLeft = 0
	}
	m.updatedAt = m.clock.Now()
	return m.minutesLeft == 0
}

// Complete finishes the running transition
func (m *MothballMachine) Complete() (MothballStatus, error) {
	var next MothballStatus
	switch m.status {
	case MothballStatusMothballing:
		next = MothballStatusMothballed
	case MothballStatusActivating:
		next = MothballStatusActive
	default:
		return m.status, shared.NewInvalidTransitionError("", string(m.status), "COMPLETE")
	}
	m.settle(next)
	return next, nil
}

// Abort stops the running transition and returns to where it started
func (m *MothballMachine) Abort() (MothballStatus, error) {
	var prior MothballStatus
	switch m.status {
	case MothballStatusMothballing:
		prior = MothballStatusActive
	case MothballStatusActivating:
		prior = MothballStatusMothballed
	default:
		return m.status, shared.NewInvalidTransitionError("", string(m.status), "CANCEL")
	}
	m.settle(prior)
	return prior, nil
}

func (m *MothballMachine) settle(status MothballStatus) {
	m.status = status
	m.minutesLeft = 0
	m.startedAt = nil
	m.updatedAt = m.clock.Now()
}

// MothballSnapshot is the crew, tech and part work a unit had when mothballing
// started, kept so activation can put it back.
type MothballSnapshot struct {
	Drivers         []uuid.UUID
	Gunners         []uuid.UUID
	VesselCrew      []uuid.UUID
	Navigator       uuid.UUID
	TechOfficer     uuid.UUID
	Tech            uuid.UUID
	PartAssignments map[uuid.UUID]PartWork
}

// PartWork is a tech assignment on one part
type PartWork struct {
	TechID      uuid.UUID
	MinutesLeft int
}

func (u *Unit) takeSnapshot(tech uuid.UUID) *MothballSnapshot {
	s := &MothballSnapshot{
		Drivers:         append([]uuid.UUID(nil), u.drivers...),
		Gunners:         append([]uuid.UUID(nil), u.gunners...),
		VesselCrew:      append([]uuid.UUID(nil), u.vesselCrew...),
		Navigator:       u.navigator,
		TechOfficer:     u.techOfficer,
		Tech:            tech,
		PartAssignments: make(map[uuid.UUID]PartWork),
	}
	for _, p := range u.parts {
		if p.IsBeingWorkedOn() && p.HasIdentity() {
			s.PartAssignments[p.ID()] = PartWork{TechID: p.TechID(), MinutesLeft: p.MinutesLeft()}
		}
	}
	return s
}

// restoreCrew puts the snapshot's crew back, skipping anyone who is gone or
// inactive. Dropped ids are returned.
func (u *Unit) restoreCrew(s *MothballSnapshot) []uuid.UUID {
	var dropped []uuid.UUID
	keep := func(ids []uuid.UUID) []uuid.UUID {
		var out []uuid.UUID
		for _, id := range ids {
			if p := u.person(id); p != nil && p.IsActive() {
				out = append(out, id)
			} else {
				dropped = append(dropped, id)
			}
		}
		return out
	}
	single := func(id uuid.UUID) uuid.UUID {
		if id == uuid.Nil {
			return uuid.Nil
		}
		if p := u.person(id); p != nil && p.IsActive() {
			return id
		}
		dropped = append(dropped, id)
		return uuid.Nil
	}
	u.drivers = keep(s.Drivers)
	u.gunners = keep(s.Gunners)
	u.vesselCrew = keep(s.VesselCrew)
	u.navigator = single(s.Navigator)
	u.techOfficer = single(s.TechOfficer)
	return dropped
}

// Snapshot returns the stored mothball snapshot, nil if there is none
func (u *Unit) Snapshot() *MothballSnapshot {
	return u.snapshot
}

// MothballStatus reports the storage lifecycle state
func (u *Unit) MothballStatus() MothballStatus {
	return u.mothball.Status()
}

// MothballTime is the number of minutes left on the running transition
func (u *Unit) MothballTime() int {
	return u.mothball.MinutesLeft()
}

// IsMothballing is true while the unit is being put into storage
func (u *Unit) IsMothballing() bool {
	return u.mothball.Status() == MothballStatusMothballing
}

// IsActivating is true while the unit is being taken out of storage
func (u *Unit) IsActivating() bool {
	return u.mothball.Status() == MothballStatusActivating
}

// IsMothballed is true once mothballing completes, and stays true until
// activation completes
func (u *Unit) IsMothballed() bool {
	return u.mothball.IsMothballedFlag()
}

// InTransition is true while either transition is running
func (u *Unit) InTransition() bool {
	return u.mothball.InTransition()
}

// MothballOrActivationTime is the work needed for the next transition
func (u *Unit) MothballOrActivationTime() int {
	c := u.Category()
	switch {
	case c.IsInfantry():
		return TechWorkDay
	case c.IsLargeCraft():
		return TechWorkDay * int(math.Ceil(u.definition.Profile().Tonnage/500.0))
	case u.IsMothballed():
		return TechWorkDay
	default:
		return TechWorkDay * 2
	}
}

// StartMothballing begins putting the unit into storage with the given tech.
// Crew leave at once, except on self-crewed units which need their crew for
// the work. With gm set the transition completes immediately.
func (u *Unit) StartMothballing(techID uuid.UUID, gm bool) error {
	if u.mothball.Status() != MothballStatusActive {
		return shared.NewInvalidTransitionError(u.id.String(), string(u.mothball.Status()), string(MothballStatusMothballing))
	}

	u.snapshot = u.takeSnapshot(u.tech)
	u.tech = techID
	u.forceID = NoForce
	for _, p := range u.parts {
		p.CancelAssignment()
	}

	if err := u.mothball.BeginMothballing(u.MothballOrActivationTime()); err != nil {
		return err
	}
	if !u.IsSelfCrewed() {
		u.clearCrewRoles()
	}
	u.ResetCrewAndComposite()

	if gm {
		return u.CompleteMothballTransition()
	}
	return nil
}

// StartActivating begins taking a mothballed unit out of storage. The crew
// recorded at mothballing is seated again straight away.
func (u *Unit) StartActivating(techID uuid.UUID, gm bool) error {
	if u.mothball.Status() != MothballStatusMothballed {
		return shared.NewInvalidTransitionError(u.id.String(), string(u.mothball.Status()), string(MothballStatusActivating))
	}

	if err := u.mothball.BeginActivating(u.MothballOrActivationTime()); err != nil {
		return err
	}
	if u.snapshot != nil {
		u.restoreCrew(u.snapshot)
	}
	u.tech = techID
	u.ResetCrewAndComposite()

	if gm {
		return u.CompleteMothballTransition()
	}
	return nil
}

// WorkMothball spends tech minutes on the running transition and completes it
// when the timer runs out. Returns true if the transition completed.
func (u *Unit) WorkMothball(minutes int) (bool, error) {
	if !u.mothball.Work(minutes) {
		return false, nil
	}
	return true, u.CompleteMothballTransition()
}

// CompleteMothballTransition finishes the running transition.
//
// Finishing mothballing strips every crew role but keeps the tech. Finishing
// activation gives the unit its pre-mothball tech back and restarts the
// maintenance cycle.
func (u *Unit) CompleteMothballTransition() error {
	next, err := u.mothball.Complete()
	if err != nil {
		return shared.NewInvalidTransitionError(u.id.String(), string(u.mothball.Status()), "COMPLETE")
	}

	switch next {
	case MothballStatusMothballed:
		u.clearCrewRoles()
		for _, p := range u.parts {
			p.CancelAssignment()
		}
	case MothballStatusActive:
		u.tech = uuid.Nil
		if u.snapshot != nil {
			if t := u.person(u.snapshot.Tech); t != nil && t.IsActive() {
				u.tech = u.snapshot.Tech
			}
		}
		u.snapshot = nil
		u.ResetDaysSinceMaintenance()
	}
	u.ResetCrewAndComposite()
	return nil
}

// CancelMothballOrActivation abandons the running transition.
//
// Cancelled mothballing puts back the crew, tech and part work from the
// snapshot. Cancelled activation records the seated crew in a fresh snapshot
// and sends them away again. Maintenance counters restart either way.
func (u *Unit) CancelMothballOrActivation() error {
	prior, err := u.mothball.Abort()
	if err != nil {
		return shared.NewInvalidTransitionError(u.id.String(), string(u.mothball.Status()), "CANCEL")
	}

	switch prior {
	case MothballStatusActive:
		if u.snapshot != nil {
			u.restoreCrew(u.snapshot)
			u.tech = u.snapshot.Tech
			for id, work := range u.snapshot.PartAssignments {
				if p, ok := u.Part(id); ok && !p.IsMissing() {
					p.AssignTech(work.TechID, work.MinutesLeft)
				}
			}
		}
		u.snapshot = nil
	case MothballStatusMothballed:
		preMothballTech := uuid.Nil
		if u.snapshot != nil {
			preMothballTech = u.snapshot.Tech
		}
		u.snapshot = u.takeSnapshot(preMothballTech)
		u.clearCrewRoles()
	}
	u.ResetDaysSinceMaintenance()
	u.ResetCrewAndComposite()
	return nil
}

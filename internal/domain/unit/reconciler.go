package unit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// ReconcileAction is what a reconciliation did to one part
type ReconcileAction string

const (
	ActionCreate  ReconcileAction = "CREATE"
	ActionRemove  ReconcileAction = "REMOVE"
	ActionRefresh ReconcileAction = "REFRESH"
	ActionPromote ReconcileAction = "PROMOTE"
	ActionLink    ReconcileAction = "LINK"
)

// ReconcileOp is one change made to the parts registry
type ReconcileOp struct {
	Action ReconcileAction
	Key    part.Key
	PartID uuid.UUID
	Name   string
}

func (op ReconcileOp) String() string {
	return fmt.Sprintf("%s %s %q", op.Action, op.Key, op.Name)
}

// ReconcileReport lists the registry changes made by one pass
type ReconcileReport struct {
	Ops          []ReconcileOp
	Inconsistent []*shared.InconsistentKeyError
}

// IsEmpty is true when the pass changed nothing
func (r *ReconcileReport) IsEmpty() bool {
	return len(r.Ops) == 0 && len(r.Inconsistent) == 0
}

// Count returns how many ops of one action the pass made
func (r *ReconcileReport) Count(action ReconcileAction) int {
	n := 0
	for _, op := range r.Ops {
		if op.Action == action {
			n++
		}
	}
	return n
}

func (r *ReconcileReport) add(action ReconcileAction, p *part.Part) {
	r.Ops = append(r.Ops, ReconcileOp{Action: action, Key: p.Key(), PartID: p.ID(), Name: p.Name()})
}

// reconcilePlan is everything a pass will do, worked out before the registry
// is touched
type reconcilePlan struct {
	keep     []*part.Part
	refresh  map[*part.Part]part.Spec
	remove   []*part.Part
	create   []*part.Part
	promote  map[*part.Part]uuid.UUID
	conflict []*shared.InconsistentKeyError
}

// Reconcile brings the parts registry in line with the definition.
//
// Parts whose key the definition no longer has are removed, then parts for
// uncovered keys are created. A part whose slot has been destroyed or
// restored is replaced by its missing or present counterpart. Surviving parts
// keep their identity, quality and work in progress and are refreshed from
// the definition. When two parts share a key the first registered one wins.
//
// With createMissing unset new parts are placeholders without an identity; a
// later pass with createMissing set issues them one. If the issuer fails the
// registry is left as it was.
func (u *Unit) Reconcile(createMissing bool, issue IDIssuer) (*ReconcileReport, error) {
	if issue == nil {
		issue = DefaultIDIssuer
	}

	plan, err := u.planReconcile(requirements(u.definition), createMissing, true, issue)
	if err != nil {
		return nil, err
	}
	report := u.commit(plan)
	u.rebuildPodSpaces()
	return report, nil
}

// AdjustLargeCraftAmmo creates bins for ammunition added to the weapon bays of
// large craft and refreshes the existing ones. Nothing is removed.
func (u *Unit) AdjustLargeCraftAmmo(issue IDIssuer) (*ReconcileReport, error) {
	if !u.Category().IsLargeCraft() {
		return &ReconcileReport{}, nil
	}
	if issue == nil {
		issue = DefaultIDIssuer
	}

	var specs []part.Spec
	for _, m := range u.definition.Mounts() {
		if m.Class == loadout.MountAmmo && m.BayIndex != loadout.NoBay {
			spec := mountSpec(m)
			spec.UnitTonnage = u.definition.Profile().Tonnage
			specs = append(specs, spec)
		}
	}
	plan, err := u.planReconcile(specs, true, false, issue)
	if err != nil {
		return nil, err
	}
	return u.commit(plan), nil
}

func (u *Unit) planReconcile(required []part.Spec, createMissing, removeVanished bool, issue IDIssuer) (*reconcilePlan, error) {
	specKey := func(s part.Spec) part.Key { return s.Key }
	wanted := lo.KeyBy(lo.UniqBy(required, specKey), specKey)

	plan := &reconcilePlan{
		refresh: make(map[*part.Part]part.Spec),
		promote: make(map[*part.Part]uuid.UUID),
	}
	covered := make(map[part.Key]*part.Part, len(u.parts))

	for _, p := range u.parts {
		if first, dup := covered[p.Key()]; dup {
			plan.conflict = append(plan.conflict, shared.NewInconsistentKeyError(
				u.id.String(), p.Key().String(), p.ID().String(), first.ID().String()))
			plan.remove = append(plan.remove, p)
			continue
		}

		spec, ok := wanted[p.Key()]
		if !ok {
			if removeVanished {
				plan.remove = append(plan.remove, p)
			} else {
				covered[p.Key()] = p
				plan.keep = append(plan.keep, p)
			}
			continue
		}
		if spec.Missing != p.IsMissing() && p.Kind().CanBeMissing() {
			plan.remove = append(plan.remove, p)
			continue
		}

		covered[p.Key()] = p
		plan.keep = append(plan.keep, p)
		plan.refresh[p] = spec
		if createMissing && !p.HasIdentity() {
			id, err := issue(p)
			if err != nil {
				return nil, fmt.Errorf("failed to register %s: %w", p.Key(), err)
			}
			plan.promote[p] = id
		}
	}

	for _, spec := range required {
		if _, ok := covered[spec.Key]; ok {
			continue
		}
		if !spec.Key.Kind.CanBeMissing() {
			spec.Missing = false
		}
		p := part.New(spec)
		if createMissing {
			id, err := issue(p)
			if err != nil {
				return nil, fmt.Errorf("failed to register %s: %w", spec.Key, err)
			}
			p.AssignIdentity(id)
		}
		covered[spec.Key] = p
		plan.create = append(plan.create, p)
	}

	return plan, nil
}

// commit applies a plan. Nothing in here can fail.
func (u *Unit) commit(plan *reconcilePlan) *ReconcileReport {
	report := &ReconcileReport{Inconsistent: plan.conflict}

	for _, p := range plan.remove {
		report.add(ActionRemove, p)
		if p.ParentID() != uuid.Nil {
			for _, kept := range plan.keep {
				if kept.ID() == p.ParentID() {
					kept.RemoveChild(p.ID())
				}
			}
		}
	}

	for _, p := range plan.keep {
		if id, ok := plan.promote[p]; ok {
			p.AssignIdentity(id)
			report.add(ActionPromote, p)
		}
		if spec, ok := plan.refresh[p]; ok && p.Refresh(spec) {
			report.add(ActionRefresh, p)
		}
	}

	u.parts = append(plan.keep, plan.create...)
	for _, p := range plan.create {
		report.add(ActionCreate, p)
	}

	u.linkChildren(report)
	return report
}

// linkChildren attaches doors and cubicles to their bay once both have an identity
func (u *Unit) linkChildren(report *ReconcileReport) {
	bays := make(map[int]*part.Part)
	for _, p := range u.parts {
		if p.Kind() == part.KindTransportBay {
			bays[p.Key().Index] = p
		}
	}
	for _, p := range u.parts {
		if p.Kind() != part.KindBayDoor && p.Kind() != part.KindCubicle {
			continue
		}
		bay, ok := bays[p.Key().Index]
		if !ok || !bay.HasIdentity() || !p.HasIdentity() {
			continue
		}
		p.SetParentID(bay.ID())
		if bay.AddChild(p.ID()) {
			report.add(ActionLink, p)
		}
	}
}

// ReplaceMissingPart installs a spare from stock in place of a missing part.
// The definition slot is restored and the part keeps its identity.
func (u *Unit) ReplaceMissingPart(partID uuid.UUID, stock Stock) error {
	p, ok := u.Part(partID)
	if !ok {
		return shared.NewUnitError(fmt.Sprintf("no part %s", partID), u.id.String())
	}
	if !p.IsMissing() {
		return shared.NewUnitError(fmt.Sprintf("part %s is not missing", p.Name()), u.id.String())
	}
	if !u.definition.SlotUsable(p.Slot()) {
		return shared.NewValidationError("part", fmt.Sprintf("%s sits in a destroyed location or bay, replace that first", p.Name()))
	}
	if stock == nil || !stock.Available(p, 1) {
		return shared.NewPartUnavailableError(u.id.String(), p.Name())
	}
	if err := u.definition.RestoreSlot(p.Slot()); err != nil {
		return fmt.Errorf("failed to restore %s: %w", p.Key(), err)
	}
	stock.Consume(p, 1)
	p.Replaced()
	return nil
}

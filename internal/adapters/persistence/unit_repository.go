package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/adapters/definition"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// UnitRepositoryGORM implements unit.UnitRepository using GORM.
//
// Loading is two-phase: every person is read first so that crew references,
// including the integer surrogates of older saves, can be resolved while the
// units are rebuilt.
type UnitRepositoryGORM struct {
	db      *gorm.DB
	options unit.Options
	clock   shared.Clock
}

// NewUnitRepositoryGORM creates a new GORM unit repository. Loaded units get
// the given campaign options.
func NewUnitRepositoryGORM(db *gorm.DB, options unit.Options, clock shared.Clock) *UnitRepositoryGORM {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &UnitRepositoryGORM{db: db, options: options, clock: clock}
}

// Load reads the given units, or every unit when no ids are given. Units
// that cannot be rebuilt are left out; what went wrong is in the report.
func (r *UnitRepositoryGORM) Load(ctx context.Context, ids ...uuid.UUID) (*unit.LoadReport, error) {
	db := r.db.WithContext(ctx)

	roster, legacy, err := r.loadRoster(db)
	if err != nil {
		return nil, err
	}

	var models []UnitModel
	query := db.Order("name")
	if len(ids) > 0 {
		query = query.Where("id IN ?", idStrings(ids))
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}

	partsByUnit, err := r.loadParts(db, models)
	if err != nil {
		return nil, err
	}

	report := &unit.LoadReport{}
	resolver := unit.ReferenceResolver{Legacy: legacy, Roster: roster}
	for i := range models {
		model := &models[i]
		snapshot, problems := modelToSnapshot(model, partsByUnit[model.ID])
		report.Problems = multierr.Append(report.Problems, problems)
		if snapshot == nil {
			continue
		}
		u, problems := unit.FromSnapshot(snapshot, resolver, r.options, r.clock)
		report.Problems = multierr.Append(report.Problems, problems)
		if u != nil {
			report.Units = append(report.Units, u)
		}
	}
	return report, nil
}

// FindIDsByName returns the units whose full or fluff name matches exactly
func (r *UnitRepositoryGORM) FindIDsByName(ctx context.Context, name string) ([]uuid.UUID, error) {
	var raw []string
	err := r.db.WithContext(ctx).Model(&UnitModel{}).
		Where("name = ? OR fluff_name = ?", name, name).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find units by name: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid unit id %q in database: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Save writes the unit and replaces its parts
func (r *UnitRepositoryGORM) Save(ctx context.Context, u *unit.Unit) error {
	model, parts, err := r.unitToModels(u)
	if err != nil {
		return fmt.Errorf("failed to convert unit to model: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to save unit: %w", err)
		}
		if err := tx.Where("unit_id = ?", model.ID).Delete(&PartModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear parts: %w", err)
		}
		if len(parts) > 0 {
			if err := tx.CreateInBatches(parts, 200).Error; err != nil {
				return fmt.Errorf("failed to save parts: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a unit with its parts, sheet binding and reconcile history
func (r *UnitRepositoryGORM) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&PartModel{}, &UnitSheetModel{}, &ReconcileRunModel{}} {
			if err := tx.Where("unit_id = ?", id.String()).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete unit records: %w", err)
			}
		}
		result := tx.Where("id = ?", id.String()).Delete(&UnitModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete unit: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.NewUnitError("unit not found", id.String())
		}
		return nil
	})
}

func (r *UnitRepositoryGORM) loadRoster(db *gorm.DB) (personnel.MapRoster, map[int]uuid.UUID, error) {
	var people []PersonModel
	if err := db.Find(&people).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load people: %w", err)
	}
	roster := personnel.MapRoster{}
	legacy := make(map[int]uuid.UUID)
	for i := range people {
		p, err := modelToPerson(&people[i])
		if err != nil {
			return nil, nil, err
		}
		roster.Add(p)
		if p.LegacyID() > 0 {
			legacy[p.LegacyID()] = p.ID()
		}
	}
	return roster, legacy, nil
}

func (r *UnitRepositoryGORM) loadParts(db *gorm.DB, units []UnitModel) (map[string][]PartModel, error) {
	out := make(map[string][]PartModel, len(units))
	if len(units) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(units))
	for _, m := range units {
		ids = append(ids, m.ID)
	}
	var parts []PartModel
	if err := db.Where("unit_id IN ?", ids).Order("part_key").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("failed to load parts: %w", err)
	}
	for _, p := range parts {
		out[p.UnitID] = append(out[p.UnitID], p)
	}
	return out, nil
}

// modelToSnapshot rebuilds the stored form of a unit. A nil snapshot means
// the unit cannot be loaded at all.
func modelToSnapshot(model *UnitModel, parts []PartModel) (*unit.Snapshot, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, shared.NewMalformedSnapshotError(model.ID, "id", model.ID)
	}
	def, err := definition.Decode([]byte(model.Definition))
	if err != nil {
		return nil, shared.NewSnapshotError(fmt.Sprintf("unreadable definition: %v", err), model.ID)
	}

	var errs error
	refs := func(field, raw string) []unit.PersonRef {
		if raw == "" {
			return nil
		}
		var out []unit.PersonRef
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			errs = multierr.Append(errs, shared.NewMalformedSnapshotError(model.ID, field, raw))
			return nil
		}
		return out
	}

	s := &unit.Snapshot{
		ID:                     id,
		Definition:             def,
		Site:                   unit.Site(model.Site),
		Salvage:                model.Salvage,
		ForceID:                model.ForceID,
		ScenarioID:             model.ScenarioID,
		DaysToArrival:          model.DaysToArrival,
		Drivers:                refs("drivers", model.Drivers),
		Gunners:                refs("gunners", model.Gunners),
		VesselCrew:             refs("vesselCrew", model.VesselCrew),
		Navigator:              unit.PersonRef(model.Navigator),
		TechOfficer:            unit.PersonRef(model.TechOfficer),
		Tech:                   unit.PersonRef(model.Tech),
		Mothballed:             model.Mothballed,
		MothballTime:           model.MothballTime,
		DaysSinceMaintenance:   model.DaysSinceMaintenance,
		DaysActivelyMaintained: model.DaysActivelyMaintained,
		AstechDaysMaintained:   model.AstechDaysMaintained,
		History:                model.History,
		FluffName:              model.FluffName,
		LastMaintenanceReport:  model.LastMaintenanceReport,
	}

	if model.MothballSnapshot != "" {
		var snap unit.MothballSnapshot
		if err := json.Unmarshal([]byte(model.MothballSnapshot), &snap); err != nil {
			errs = multierr.Append(errs, shared.NewMalformedSnapshotError(model.ID, "mothballSnapshot", model.MothballSnapshot))
		} else {
			s.Mothball = &snap
		}
	}

	if model.RefitDefinition != "" {
		refitDef, err := definition.Decode([]byte(model.RefitDefinition))
		if err != nil {
			errs = multierr.Append(errs, shared.NewMalformedSnapshotError(model.ID, "refit", err.Error()))
		} else {
			s.Refit = &unit.RefitSnapshot{
				Definition:  refitDef,
				MinutesLeft: model.RefitMinutesLeft,
				Tech:        unit.PersonRef(model.RefitTech),
				Cost:        shared.Money(model.RefitCost),
			}
		}
	}

	for i := range parts {
		p, err := modelToPart(&parts[i])
		if err != nil {
			errs = multierr.Append(errs, shared.NewMalformedSnapshotError(model.ID, "part", err.Error()))
			continue
		}
		s.Parts = append(s.Parts, p)
	}
	return s, errs
}

func (r *UnitRepositoryGORM) unitToModels(u *unit.Unit) (*UnitModel, []*PartModel, error) {
	s := u.ToSnapshot()

	def, err := definition.Encode(s.Definition)
	if err != nil {
		return nil, nil, err
	}
	refsJSON := func(refs []unit.PersonRef) (string, error) {
		if len(refs) == 0 {
			return "", nil
		}
		b, err := json.Marshal(refs)
		return string(b), err
	}
	drivers, err := refsJSON(s.Drivers)
	if err != nil {
		return nil, nil, err
	}
	gunners, err := refsJSON(s.Gunners)
	if err != nil {
		return nil, nil, err
	}
	vesselCrew, err := refsJSON(s.VesselCrew)
	if err != nil {
		return nil, nil, err
	}

	model := &UnitModel{
		ID:                     s.ID.String(),
		Name:                   u.Name(),
		FluffName:              s.FluffName,
		Category:               string(u.Category()),
		Definition:             string(def),
		Site:                   int(s.Site),
		Salvage:                s.Salvage,
		ForceID:                s.ForceID,
		ScenarioID:             s.ScenarioID,
		DaysToArrival:          s.DaysToArrival,
		Drivers:                drivers,
		Gunners:                gunners,
		VesselCrew:             vesselCrew,
		Navigator:              string(s.Navigator),
		TechOfficer:            string(s.TechOfficer),
		Tech:                   string(s.Tech),
		Mothballed:             s.Mothballed,
		MothballTime:           s.MothballTime,
		DaysSinceMaintenance:   s.DaysSinceMaintenance,
		DaysActivelyMaintained: s.DaysActivelyMaintained,
		AstechDaysMaintained:   s.AstechDaysMaintained,
		History:                s.History,
		LastMaintenanceReport:  s.LastMaintenanceReport,
		UpdatedAt:              r.clock.Now(),
	}
	if s.Mothball != nil {
		b, err := json.Marshal(s.Mothball)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal mothball snapshot: %w", err)
		}
		model.MothballSnapshot = string(b)
	}
	if s.Refit != nil {
		refitDef, err := definition.Encode(s.Refit.Definition)
		if err != nil {
			return nil, nil, err
		}
		model.RefitDefinition = string(refitDef)
		model.RefitMinutesLeft = s.Refit.MinutesLeft
		model.RefitTech = string(s.Refit.Tech)
		model.RefitCost = float64(s.Refit.Cost)
	}

	parts := make([]*PartModel, 0, len(s.Parts))
	for _, p := range s.Parts {
		if !p.HasIdentity() {
			return nil, nil, fmt.Errorf("part %s has no identity", p.Key())
		}
		pm, err := partToModel(model.ID, p)
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, pm)
	}
	return model, parts, nil
}

func modelToPart(model *PartModel) (*part.Part, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid part id %q", model.ID)
	}
	var spec part.Spec
	if err := json.Unmarshal([]byte(model.Spec), &spec); err != nil {
		return nil, fmt.Errorf("part %s: unreadable spec: %w", model.ID, err)
	}
	key, err := part.ParseKey(model.Key)
	if err != nil {
		return nil, fmt.Errorf("part %s: %w", model.ID, err)
	}
	spec.Key = key

	quality := part.Quality(model.Quality)
	if !quality.IsValid() {
		return nil, fmt.Errorf("part %s: invalid quality %d", model.ID, model.Quality)
	}
	state := part.State{
		Quality:     quality,
		Salvaging:   model.Salvaging,
		MinutesLeft: model.MinutesLeft,
		TechID:      parseOptionalID(model.TechID),
		ParentID:    parseOptionalID(model.ParentID),
	}
	if model.ChildIDs != "" {
		if err := json.Unmarshal([]byte(model.ChildIDs), &state.ChildIDs); err != nil {
			return nil, fmt.Errorf("part %s: unreadable children: %w", model.ID, err)
		}
	}
	return part.Rehydrate(id, spec, state), nil
}

func partToModel(unitID string, p *part.Part) (*PartModel, error) {
	spec, err := json.Marshal(p.Spec())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal part spec: %w", err)
	}
	state := p.State()
	model := &PartModel{
		ID:          p.ID().String(),
		UnitID:      unitID,
		Key:         p.Key().String(),
		Kind:        string(p.Kind()),
		Name:        p.Name(),
		Missing:     p.IsMissing(),
		Spec:        string(spec),
		Quality:     int(state.Quality),
		Salvaging:   state.Salvaging,
		MinutesLeft: state.MinutesLeft,
		TechID:      optionalID(state.TechID),
		ParentID:    optionalID(state.ParentID),
	}
	if len(state.ChildIDs) > 0 {
		children, err := json.Marshal(state.ChildIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal part children: %w", err)
		}
		model.ChildIDs = string(children)
	}
	return model, nil
}

func optionalID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func parseOptionalID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

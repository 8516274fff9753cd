package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

// ReconcileRunRepositoryGORM implements common.ReconcileRunRepository using GORM
type ReconcileRunRepositoryGORM struct {
	db *gorm.DB
}

// NewReconcileRunRepositoryGORM creates a new reconcile run repository
func NewReconcileRunRepositoryGORM(db *gorm.DB) *ReconcileRunRepositoryGORM {
	return &ReconcileRunRepositoryGORM{db: db}
}

// Record stores one run, assigning an id when it has none
func (r *ReconcileRunRepositoryGORM) Record(ctx context.Context, run *common.ReconcileRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	model := &ReconcileRunModel{
		ID:           run.ID.String(),
		UnitID:       run.UnitID.String(),
		Trigger:      run.Trigger,
		Created:      run.Created,
		Removed:      run.Removed,
		Refreshed:    run.Refreshed,
		Promoted:     run.Promoted,
		Inconsistent: run.Inconsistent,
		RanAt:        run.RanAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record reconcile run: %w", err)
	}
	return nil
}

// FindByUnit returns the latest runs of a unit, newest first
func (r *ReconcileRunRepositoryGORM) FindByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*common.ReconcileRun, error) {
	var models []ReconcileRunModel
	query := r.db.WithContext(ctx).Where("unit_id = ?", unitID.String()).Order("ran_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reconcile runs: %w", err)
	}

	runs := make([]*common.ReconcileRun, 0, len(models))
	for _, m := range models {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q in database: %w", m.ID, err)
		}
		runs = append(runs, &common.ReconcileRun{
			ID:           id,
			UnitID:       unitID,
			Trigger:      m.Trigger,
			Created:      m.Created,
			Removed:      m.Removed,
			Refreshed:    m.Refreshed,
			Promoted:     m.Promoted,
			Inconsistent: m.Inconsistent,
			RanAt:        m.RanAt,
		})
	}
	return runs, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/pkg/utils"
)

// Reconcile triggers recorded on audit runs
const (
	TriggerManual = "manual"
	TriggerImport = "import"
	TriggerRefit  = "refit"
	TriggerWatch  = "watch"
	TriggerAmmo   = "bay_ammo"
)

// ReconcileRecorder logs a reconciliation pass, counts it and keeps an audit record
type ReconcileRecorder struct {
	runRepo common.ReconcileRunRepository
	clock   shared.Clock
}

// NewReconcileRecorder creates a recorder. runRepo may be nil to skip the audit trail.
func NewReconcileRecorder(runRepo common.ReconcileRunRepository, clock shared.Clock) *ReconcileRecorder {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ReconcileRecorder{runRepo: runRepo, clock: clock}
}

// Record handles the report of one pass over u
func (r *ReconcileRecorder) Record(ctx context.Context, u *unit.Unit, trigger string, report *unit.ReconcileReport) error {
	if report == nil {
		return nil
	}
	logger := common.LoggerFromContext(ctx)

	for _, conflict := range report.Inconsistent {
		logger.Log(common.LevelWarn, "Duplicate part key discarded", map[string]interface{}{
			"action":    "reconcile",
			"unit_id":   u.ID().String(),
			"key":       conflict.Key,
			"discarded": conflict.DiscardedPart,
			"retained":  conflict.RetainedPartID,
		})
	}
	logger.Log(common.LevelInfo, "Unit reconciled", map[string]interface{}{
		"action":       "reconcile",
		"run":          utils.GenerateRunID(trigger, u.Name()),
		"unit_id":      u.ID().String(),
		"unit":         u.Name(),
		"trigger":      trigger,
		"created":      report.Count(unit.ActionCreate),
		"removed":      report.Count(unit.ActionRemove),
		"refreshed":    report.Count(unit.ActionRefresh),
		"promoted":     report.Count(unit.ActionPromote),
		"inconsistent": len(report.Inconsistent),
	})
	metrics.RecordReconcile(string(u.Category()), report)

	if r.runRepo == nil || report.IsEmpty() {
		return nil
	}
	run := &common.ReconcileRun{
		ID:           uuid.New(),
		UnitID:       u.ID(),
		Trigger:      trigger,
		Created:      report.Count(unit.ActionCreate),
		Removed:      report.Count(unit.ActionRemove),
		Refreshed:    report.Count(unit.ActionRefresh),
		Promoted:     report.Count(unit.ActionPromote),
		Inconsistent: len(report.Inconsistent),
		RanAt:        r.clock.Now(),
	}
	if err := r.runRepo.Record(ctx, run); err != nil {
		return fmt.Errorf("failed to record reconcile run: %w", err)
	}
	return nil
}

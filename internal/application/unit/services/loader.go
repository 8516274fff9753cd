package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// UnitLoader reads units for handlers. Problems found while loading are
// logged and counted, never returned.
type UnitLoader struct {
	unitRepo unit.UnitRepository
}

// NewUnitLoader creates a new unit loader
func NewUnitLoader(unitRepo unit.UnitRepository) *UnitLoader {
	return &UnitLoader{unitRepo: unitRepo}
}

// Load reads one unit
func (l *UnitLoader) Load(ctx context.Context, id uuid.UUID) (*unit.Unit, error) {
	report, err := l.unitRepo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load unit: %w", err)
	}
	l.logProblems(ctx, report)

	u, ok := report.Unit(id)
	if !ok {
		return nil, shared.NewUnitError("unit not found", id.String())
	}
	return u, nil
}

// LoadAll reads every unit
func (l *UnitLoader) LoadAll(ctx context.Context) ([]*unit.Unit, error) {
	report, err := l.unitRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	l.logProblems(ctx, report)
	return report.Units, nil
}

func (l *UnitLoader) logProblems(ctx context.Context, report *unit.LoadReport) {
	problems := report.ProblemList()
	if len(problems) == 0 {
		return
	}
	logger := common.LoggerFromContext(ctx)
	for _, problem := range problems {
		logger.Log(common.LevelWarn, "Unit load problem", map[string]interface{}{
			"action": "load_unit",
			"error":  problem.Error(),
		})
	}
	metrics.RecordLoadProblems(len(problems))
}

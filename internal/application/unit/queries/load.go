package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// loadUnits reads units and logs what the repository could not restore.
// Queries stay free of the metrics adapter, which polls them.
func loadUnits(ctx context.Context, repo unit.UnitRepository, ids ...uuid.UUID) ([]*unit.Unit, error) {
	report, err := repo.Load(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	for _, problem := range report.ProblemList() {
		common.LoggerFromContext(ctx).Log(common.LevelWarn, "Unit load problem", map[string]interface{}{
			"action": "load_unit",
			"error":  problem.Error(),
		})
	}
	return report.Units, nil
}

func loadUnit(ctx context.Context, repo unit.UnitRepository, resolver *common.UnitResolver, ref string) (*unit.Unit, error) {
	id, err := resolver.ResolveUnitID(ctx, ref)
	if err != nil {
		return nil, err
	}
	units, err := loadUnits(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, shared.NewUnitError("unit not found", id.String())
	}
	return units[0], nil
}

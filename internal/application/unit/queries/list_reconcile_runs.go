package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// DefaultRunLimit caps the reconcile history returned when no limit is given
const DefaultRunLimit = 20

// ListReconcileRunsQuery returns the most recent reconciliation passes of a unit
type ListReconcileRunsQuery struct {
	UnitRef string
	Limit   int
}

// ListReconcileRunsResponse lists runs, newest first
type ListReconcileRunsResponse struct {
	Runs []*common.ReconcileRun
}

// ListReconcileRunsHandler handles the ListReconcileRuns query
type ListReconcileRunsHandler struct {
	runRepo  common.ReconcileRunRepository
	resolver *common.UnitResolver
}

// NewListReconcileRunsHandler creates a new ListReconcileRunsHandler
func NewListReconcileRunsHandler(runRepo common.ReconcileRunRepository, unitRepo unit.UnitRepository) *ListReconcileRunsHandler {
	return &ListReconcileRunsHandler{runRepo: runRepo, resolver: common.NewUnitResolver(unitRepo)}
}

// Handle executes the ListReconcileRuns query
func (h *ListReconcileRunsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListReconcileRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListReconcileRunsQuery")
	}

	id, err := h.resolver.ResolveUnitID(ctx, query.UnitRef)
	if err != nil {
		return nil, err
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	runs, err := h.runRepo.FindByUnit(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconcile runs: %w", err)
	}
	return &ListReconcileRunsResponse{Runs: runs}, nil
}

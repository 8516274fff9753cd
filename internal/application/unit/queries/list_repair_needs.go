package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// ListRepairNeedsQuery lists what a unit needs fixed and what spare stock
// cannot cover
type ListRepairNeedsQuery struct {
	UnitRef string
}

// RepairNeedDTO is one part waiting for work
type RepairNeedDTO struct {
	PartID      string
	Name        string
	Condition   string
	ValueNeeded float64
	InStock     bool
}

// ListRepairNeedsResponse lists the unit's repair needs
type ListRepairNeedsResponse struct {
	UnitName     string
	NeedsFixing  []RepairNeedDTO
	PartsNeeded  []RepairNeedDTO // Not coverable from stock
	Salvageable  int
	MissingValue float64
	Serviceable  bool
}

// ListRepairNeedsHandler handles the ListRepairNeeds query
type ListRepairNeedsHandler struct {
	unitRepo  unit.UnitRepository
	inventory common.InventoryRepository
	resolver  *common.UnitResolver
}

// NewListRepairNeedsHandler creates a new ListRepairNeedsHandler
func NewListRepairNeedsHandler(unitRepo unit.UnitRepository, inventory common.InventoryRepository) *ListRepairNeedsHandler {
	return &ListRepairNeedsHandler{
		unitRepo:  unitRepo,
		inventory: inventory,
		resolver:  common.NewUnitResolver(unitRepo),
	}
}

// Handle executes the ListRepairNeeds query
func (h *ListRepairNeedsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListRepairNeedsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRepairNeedsQuery")
	}

	u, err := loadUnit(ctx, h.unitRepo, h.resolver, query.UnitRef)
	if err != nil {
		return nil, err
	}
	stock, err := h.inventory.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spare stock: %w", err)
	}

	need := func(p *part.Part) RepairNeedDTO {
		return RepairNeedDTO{
			PartID:      p.ID().String(),
			Name:        p.Name(),
			Condition:   string(p.Condition()),
			ValueNeeded: float64(p.ValueNeeded()),
			InStock:     stock.Available(p, 1),
		}
	}
	resp := &ListRepairNeedsResponse{
		UnitName:     u.Name(),
		Salvageable:  len(u.SalvageableParts()),
		MissingValue: float64(u.ValueOfAllMissingParts()),
		Serviceable:  u.IsServiceable(),
	}
	for _, p := range u.PartsNeedingFixing() {
		resp.NeedsFixing = append(resp.NeedsFixing, need(p))
	}
	for _, p := range u.PartsNeeded(stock) {
		resp.PartsNeeded = append(resp.PartsNeeded, need(p))
	}
	return resp, nil
}

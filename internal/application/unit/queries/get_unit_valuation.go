package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// GetUnitValuationQuery fetches the money figures of one unit
type GetUnitValuationQuery struct {
	UnitRef string
}

// GetUnitValuationResponse holds the money figures of a unit
type GetUnitValuationResponse struct {
	UnitName               string
	SellValue              float64
	BuyCost                float64
	MaintenanceCost        float64 // Per maintenance cycle
	WeeklyMaintenanceCost  float64
	SparePartsCost         float64
	AmmoCost               float64
	FuelCost               float64
	ValueOfAllMissingParts float64
	Availability           string
}

// GetUnitValuationHandler handles the GetUnitValuation query
type GetUnitValuationHandler struct {
	unitRepo unit.UnitRepository
	resolver *common.UnitResolver
}

// NewGetUnitValuationHandler creates a new GetUnitValuationHandler
func NewGetUnitValuationHandler(unitRepo unit.UnitRepository) *GetUnitValuationHandler {
	return &GetUnitValuationHandler{unitRepo: unitRepo, resolver: common.NewUnitResolver(unitRepo)}
}

// Handle executes the GetUnitValuation query
func (h *GetUnitValuationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUnitValuationQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnitValuationQuery")
	}

	u, err := loadUnit(ctx, h.unitRepo, h.resolver, query.UnitRef)
	if err != nil {
		return nil, err
	}
	return &GetUnitValuationResponse{
		UnitName:               u.Name(),
		SellValue:              float64(u.SellValue()),
		BuyCost:                float64(u.BuyCost()),
		MaintenanceCost:        float64(u.MaintenanceCost()),
		WeeklyMaintenanceCost:  float64(u.WeeklyMaintenanceCost()),
		SparePartsCost:         float64(u.SparePartsCost()),
		AmmoCost:               float64(u.AmmoCost()),
		FuelCost:               float64(u.FuelCost()),
		ValueOfAllMissingParts: float64(u.ValueOfAllMissingParts()),
		Availability:           u.Definition().Profile().Availability.String(),
	}, nil
}

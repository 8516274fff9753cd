package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// ListUnitsQuery lists every unit in the campaign
type ListUnitsQuery struct {
	Category string // Optional: only units of this category
}

// UnitSummaryDTO is one line of the unit list
type UnitSummaryDTO struct {
	ID                 string
	Name               string
	Category           string
	Status             string
	Quality            string
	MothballStatus     string
	SellValue          float64
	PartsNeedingFixing int
	Available          bool
	CrewCount          int
	FullCrewSize       int
}

// ListUnitsResponse represents the result of listing units
type ListUnitsResponse struct {
	Units []*UnitSummaryDTO
}

// ListUnitsHandler handles the ListUnits query
type ListUnitsHandler struct {
	unitRepo unit.UnitRepository
}

// NewListUnitsHandler creates a new ListUnitsHandler
func NewListUnitsHandler(unitRepo unit.UnitRepository) *ListUnitsHandler {
	return &ListUnitsHandler{unitRepo: unitRepo}
}

// Handle executes the ListUnits query
func (h *ListUnitsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListUnitsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListUnitsQuery")
	}

	units, err := loadUnits(ctx, h.unitRepo)
	if err != nil {
		return nil, err
	}

	resp := &ListUnitsResponse{Units: make([]*UnitSummaryDTO, 0, len(units))}
	for _, u := range units {
		if query.Category != "" && string(u.Category()) != query.Category {
			continue
		}
		resp.Units = append(resp.Units, summarize(u))
	}
	sort.Slice(resp.Units, func(i, j int) bool { return resp.Units[i].Name < resp.Units[j].Name })
	return resp, nil
}

func summarize(u *unit.Unit) *UnitSummaryDTO {
	return &UnitSummaryDTO{
		ID:                 u.ID().String(),
		Name:               u.Name(),
		Category:           string(u.Category()),
		Status:             u.Status(),
		Quality:            u.QualityName(),
		MothballStatus:     string(u.MothballStatus()),
		SellValue:          float64(u.SellValue()),
		PartsNeedingFixing: len(u.PartsNeedingFixing()),
		Available:          u.IsAvailable(false),
		CrewCount:          len(u.Crew()),
		FullCrewSize:       u.FullCrewSize(),
	}
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// GetUnitStatusQuery fetches the condition, crew and parts of one unit
type GetUnitStatusQuery struct {
	UnitRef string // UUID or exact unit name
}

// CrewDTO is one role held on the unit
type CrewDTO struct {
	PersonID string
	Role     string
	Title    string // Empty when the person is not on the roster
	Hits     int
}

// PartDTO is one part of the unit
type PartDTO struct {
	ID        string
	Key       string
	Name      string
	Condition string
	Quality   string
	Hits      int
	Quantity  int
	Salvaging bool
}

// UnitDetailDTO is the full view of a unit
type UnitDetailDTO struct {
	UnitSummaryDTO
	DamageState           string
	Site                  string
	DaysToArrival         int
	Deployment            string // Empty when the unit can deploy
	Commander             string
	Crew                  []CrewDTO
	Parts                 []PartDTO
	MothballMinutesLeft   int
	RefitMinutesLeft      int
	Refitting             bool
	DaysSinceMaintenance  int
	MaintenanceCoverage   float64
	LastMaintenanceReport string
	Quirks                []string
}

// GetUnitStatusResponse contains the unit
type GetUnitStatusResponse struct {
	Unit *UnitDetailDTO
}

// GetUnitStatusHandler handles the GetUnitStatus query
type GetUnitStatusHandler struct {
	unitRepo unit.UnitRepository
	resolver *common.UnitResolver
}

// NewGetUnitStatusHandler creates a new GetUnitStatusHandler
func NewGetUnitStatusHandler(unitRepo unit.UnitRepository) *GetUnitStatusHandler {
	return &GetUnitStatusHandler{unitRepo: unitRepo, resolver: common.NewUnitResolver(unitRepo)}
}

// Handle executes the GetUnitStatus query
func (h *GetUnitStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUnitStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnitStatusQuery")
	}

	u, err := loadUnit(ctx, h.unitRepo, h.resolver, query.UnitRef)
	if err != nil {
		return nil, err
	}
	return &GetUnitStatusResponse{Unit: describe(u)}, nil
}

func describe(u *unit.Unit) *UnitDetailDTO {
	dto := &UnitDetailDTO{
		UnitSummaryDTO:        *summarize(u),
		DamageState:           u.DamageState().String(),
		Site:                  u.Site().String(),
		DaysToArrival:         u.DaysToArrival(),
		Deployment:            u.CheckDeployment(),
		MothballMinutesLeft:   u.MothballTime(),
		Refitting:             u.IsRefitting(),
		DaysSinceMaintenance:  u.DaysSinceMaintenance(),
		MaintenanceCoverage:   u.MaintenanceCoverage(),
		LastMaintenanceReport: u.LastMaintenanceReport(),
		Quirks:                u.Quirks(),
	}
	if r := u.Refit(); r != nil {
		dto.RefitMinutesLeft = r.MinutesLeft()
	}
	if c := u.Commander(); c != nil {
		dto.Commander = c.FullTitle()
	}
	for _, a := range u.Assignments() {
		crew := CrewDTO{PersonID: a.PersonID.String(), Role: string(a.Role)}
		if p := u.Person(a.PersonID); p != nil {
			crew.Title = p.FullTitle()
			crew.Hits = p.Hits()
		}
		dto.Crew = append(dto.Crew, crew)
	}
	reversed := u.Options().ReverseQualityNames
	for _, p := range u.Parts() {
		dto.Parts = append(dto.Parts, PartDTO{
			ID:        p.ID().String(),
			Key:       p.Key().String(),
			Name:      p.Name(),
			Condition: string(p.Condition()),
			Quality:   p.Quality().Name(reversed),
			Hits:      p.Hits(),
			Quantity:  p.Quantity(),
			Salvaging: p.IsSalvaging(),
		})
	}
	return dto
}

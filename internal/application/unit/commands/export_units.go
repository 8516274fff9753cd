package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/application/mediator"
	"github.com/andrescamacho/unitforge-go/internal/application/unit/services"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// ExportUnitsCommand writes every unit, its parts and its crew to a workbook
type ExportUnitsCommand struct {
	Path string
}

// ExportUnitsResponse summarises the export
type ExportUnitsResponse struct {
	Path  string
	Units int
	Parts int
	Crew  int
}

// ExportUnitsHandler handles the ExportUnits command
type ExportUnitsHandler struct {
	loader   *services.UnitLoader
	exporter common.WorkbookExporter
}

// NewExportUnitsHandler creates a new ExportUnitsHandler
func NewExportUnitsHandler(unitRepo unit.UnitRepository, exporter common.WorkbookExporter) *ExportUnitsHandler {
	return &ExportUnitsHandler{loader: services.NewUnitLoader(unitRepo), exporter: exporter}
}

// Handle executes the ExportUnits command
func (h *ExportUnitsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ExportUnitsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExportUnitsCommand")
	}
	if filepath.Ext(cmd.Path) != ".xlsx" {
		return nil, shared.NewValidationError("path", "must end in .xlsx")
	}

	units, err := h.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	book := BuildWorkbook(units)
	if err := h.exporter.Export(cmd.Path, book); err != nil {
		return nil, fmt.Errorf("failed to export units: %w", err)
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Units exported", map[string]interface{}{
		"action": "export_units",
		"path":   cmd.Path,
		"units":  len(book.Units),
		"parts":  len(book.Parts),
	})
	return &ExportUnitsResponse{
		Path:  cmd.Path,
		Units: len(book.Units),
		Parts: len(book.Parts),
		Crew:  len(book.Crew),
	}, nil
}

// BuildWorkbook flattens units into export rows
func BuildWorkbook(units []*unit.Unit) *common.Workbook {
	book := &common.Workbook{}
	for _, u := range units {
		id := u.ID().String()
		reversed := u.Options().ReverseQualityNames
		book.Units = append(book.Units, common.UnitRow{
			ID:              id,
			Name:            u.Name(),
			Category:        string(u.Category()),
			Status:          u.Status(),
			Quality:         u.QualityName(),
			SellValue:       float64(u.SellValue()),
			MaintenanceCost: float64(u.MaintenanceCost()),
		})
		for _, p := range u.Parts() {
			book.Parts = append(book.Parts, common.PartRow{
				UnitID:    id,
				UnitName:  u.Name(),
				PartID:    p.ID().String(),
				Name:      p.Name(),
				Kind:      string(p.Kind()),
				Key:       p.Key().String(),
				Condition: string(p.Condition()),
				Quality:   p.Quality().Name(reversed),
				Value:     float64(p.ActualValue(u.Options().PartValues)),
				Quantity:  p.Quantity(),
			})
		}
		for _, a := range u.Assignments() {
			row := common.CrewRow{
				UnitID:   id,
				UnitName: u.Name(),
				Role:     string(a.Role),
				PersonID: a.PersonID.String(),
			}
			if p := u.Person(a.PersonID); p != nil {
				row.Person = p.FullTitle()
			}
			book.Crew = append(book.Crew, row)
		}
	}
	return book
}

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

// Sheet names of an export workbook
const (
	SheetUnits = "Units"
	SheetParts = "Parts"
	SheetCrew  = "Crew"
)

type column struct {
	header string
	width  float64
}

var (
	unitColumns = []column{
		{"Unit ID", 38}, {"Name", 30}, {"Category", 16}, {"Status", 22},
		{"Quality", 10}, {"Sell Value", 16}, {"Maintenance Cost", 18},
	}
	partColumns = []column{
		{"Unit ID", 38}, {"Unit", 30}, {"Part ID", 38}, {"Name", 30}, {"Kind", 16},
		{"Key", 26}, {"Condition", 16}, {"Quality", 10}, {"Value", 14}, {"Quantity", 10},
	}
	crewColumns = []column{
		{"Unit ID", 38}, {"Unit", 30}, {"Role", 14}, {"Person ID", 38}, {"Person", 30},
	}
)

// XLSXExporter writes export workbooks with one sheet per row kind
type XLSXExporter struct{}

// NewXLSXExporter creates a new exporter
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes book to path
func (e *XLSXExporter) Export(path string, book *common.Workbook) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}

	units := make([][]interface{}, 0, len(book.Units))
	for _, u := range book.Units {
		units = append(units, []interface{}{u.ID, u.Name, u.Category, u.Status, u.Quality, u.SellValue, u.MaintenanceCost})
	}
	parts := make([][]interface{}, 0, len(book.Parts))
	for _, p := range book.Parts {
		parts = append(parts, []interface{}{p.UnitID, p.UnitName, p.PartID, p.Name, p.Kind, p.Key, p.Condition, p.Quality, p.Value, p.Quantity})
	}
	crew := make([][]interface{}, 0, len(book.Crew))
	for _, c := range book.Crew {
		crew = append(crew, []interface{}{c.UnitID, c.UnitName, c.Role, c.PersonID, c.Person})
	}

	sheets := []struct {
		name      string
		columns   []column
		rows      [][]interface{}
		moneyCols []int
	}{
		{SheetUnits, unitColumns, units, []int{6, 7}},
		{SheetParts, partColumns, parts, []int{9}},
		{SheetCrew, crewColumns, crew, nil},
	}
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.columns, s.rows, headerStyle); err != nil {
			return err
		}
		for _, col := range s.moneyCols {
			if len(s.rows) == 0 {
				break
			}
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(s.rows)+1)
			if err := f.SetCellStyle(s.name, top, bottom, moneyStyle); err != nil {
				return fmt.Errorf("failed to style %s: %w", s.name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []column, rows [][]interface{}, headerStyle int) error {
	for i, c := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+2, err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

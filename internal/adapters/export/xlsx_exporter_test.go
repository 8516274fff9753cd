package export_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andrescamacho/unitforge-go/internal/adapters/export"
	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

func TestXLSXExporter_WritesOneSheetPerRowKind(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	book := &common.Workbook{
		Units: []common.UnitRow{
			{ID: "u-1", Name: "Hunchback HBK-4G", Category: "MECH", Status: "Undamaged", Quality: "D", SellValue: 3500000, MaintenanceCost: 1200},
			{ID: "u-2", Name: "Bulldog Medium Tank", Category: "TANK", Status: "Light Damage", Quality: "C", SellValue: 850000},
		},
		Parts: []common.PartRow{
			{UnitID: "u-1", UnitName: "Hunchback HBK-4G", PartID: "p-1", Name: "AC/20 Ammo", Kind: "AMMO_BIN", Key: "EQUIPMENT:1", Condition: "OK", Quality: "D", Value: 10000, Quantity: 20},
		},
		Crew: []common.CrewRow{
			{UnitID: "u-1", UnitName: "Hunchback HBK-4G", Role: "DRIVER", PersonID: "x-1", Person: `Kai "Yen-Lo-Wang"`},
		},
	}

	// Act
	err := export.NewXLSXExporter().Export(path, book)

	// Assert
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetUnits, export.SheetParts, export.SheetCrew}, f.GetSheetList())

	units, err := f.GetRows(export.SheetUnits)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "Unit ID", units[0][0])
	assert.Equal(t, "Maintenance Cost", units[0][6])
	assert.Equal(t, "Bulldog Medium Tank", units[2][1])

	quantity, err := f.GetCellValue(export.SheetParts, "J2")
	require.NoError(t, err)
	assert.Equal(t, "20", quantity)

	person, err := f.GetCellValue(export.SheetCrew, "E2")
	require.NoError(t, err)
	assert.Equal(t, `Kai "Yen-Lo-Wang"`, person)
}

func TestXLSXExporter_EmptyWorkbookStillHasHeaders(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	// Act
	err := export.NewXLSXExporter().Export(path, &common.Workbook{})

	// Assert
	require.NoError(t, err)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetCrew)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Unit ID", "Unit", "Role", "Person ID", "Person"}, rows[0])
}

func TestXLSXExporter_UnwritablePath(t *testing.T) {
	err := export.NewXLSXExporter().Export(filepath.Join(t.TempDir(), "no", "such", "dir", "x.xlsx"), &common.Workbook{})

	assert.ErrorContains(t, err, "failed to save workbook")
}

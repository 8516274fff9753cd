package common

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// DefinitionLoader reads a unit definition from a design sheet
type DefinitionLoader interface {
	Load(path string) (loadout.Definition, error)
}

// ReconcileRun is the audit record of one reconciliation pass
type ReconcileRun struct {
	ID           uuid.UUID
	UnitID       uuid.UUID
	Trigger      string
	Created      int
	Removed      int
	Refreshed    int
	Promoted     int
	Inconsistent int
	RanAt        time.Time
}

// ReconcileRunRepository stores reconciliation audit records
type ReconcileRunRepository interface {
	Record(ctx context.Context, run *ReconcileRun) error
	FindByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*ReconcileRun, error)
}

// InventoryRepository stores the spare parts warehouse, keyed by part name
type InventoryRepository interface {
	Load(ctx context.Context) (unit.Inventory, error)
	Save(ctx context.Context, inv unit.Inventory) error
}

// UnitRow is one line of the units sheet of an export
type UnitRow struct {
	ID              string
	Name            string
	Category        string
	Status          string
	Quality         string
	SellValue       float64
	MaintenanceCost float64
}

// PartRow is one line of the parts sheet of an export
type PartRow struct {
	UnitID    string
	UnitName  string
	PartID    string
	Name      string
	Kind      string
	Key       string
	Condition string
	Quality   string
	Value     float64
	Quantity  int
}

// CrewRow is one line of the crew sheet of an export
type CrewRow struct {
	UnitID   string
	UnitName string
	Role     string
	PersonID string
	Person   string
}

// Workbook is the content of one export
type Workbook struct {
	Units []UnitRow
	Parts []PartRow
	Crew  []CrewRow
}

// WorkbookExporter writes a workbook to a file
type WorkbookExporter interface {
	Export(path string, wb *Workbook) error
}

// SheetIndex remembers which design sheet each unit was imported from
type SheetIndex interface {
	BindSheet(ctx context.Context, unitID uuid.UUID, path string) error
	UnitsForSheet(ctx context.Context, path string) ([]uuid.UUID, error)
}

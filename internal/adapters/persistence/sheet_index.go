package persistence

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SheetIndexGORM remembers which design sheet each unit was imported from.
// Paths are stored absolute so watcher events match.
type SheetIndexGORM struct {
	db *gorm.DB
}

// NewSheetIndexGORM creates a new sheet index
func NewSheetIndexGORM(db *gorm.DB) *SheetIndexGORM {
	return &SheetIndexGORM{db: db}
}

// BindSheet records path as the sheet of a unit, replacing any earlier one
func (s *SheetIndexGORM) BindSheet(ctx context.Context, unitID uuid.UUID, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve sheet path: %w", err)
	}
	model := &UnitSheetModel{UnitID: unitID.String(), Path: abs}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"path"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to bind sheet: %w", err)
	}
	return nil
}

// UnitsForSheet lists the units imported from path
func (s *SheetIndexGORM) UnitsForSheet(ctx context.Context, path string) ([]uuid.UUID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sheet path: %w", err)
	}
	var raw []string
	if err := s.db.WithContext(ctx).Model(&UnitSheetModel{}).Where("path = ?", abs).Pluck("unit_id", &raw).Error; err != nil {
		return nil, fmt.Errorf("failed to find units for sheet: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("invalid unit id %q in database: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

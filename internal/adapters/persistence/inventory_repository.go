package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// InventoryRepositoryGORM implements common.InventoryRepository using GORM
type InventoryRepositoryGORM struct {
	db *gorm.DB
}

// NewInventoryRepositoryGORM creates a new spare parts repository
func NewInventoryRepositoryGORM(db *gorm.DB) *InventoryRepositoryGORM {
	return &InventoryRepositoryGORM{db: db}
}

// Load reads the whole warehouse
func (r *InventoryRepositoryGORM) Load(ctx context.Context) (unit.Inventory, error) {
	var models []StockModel
	if err := r.db.WithContext(ctx).Where("quantity > 0").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load spare parts: %w", err)
	}
	inv := make(unit.Inventory, len(models))
	for _, m := range models {
		inv[m.PartName] = m.Quantity
	}
	return inv, nil
}

// Save replaces the warehouse contents with inv
func (r *InventoryRepositoryGORM) Save(ctx context.Context, inv unit.Inventory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&StockModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear spare parts: %w", err)
		}
		models := make([]StockModel, 0, len(inv))
		for name, quantity := range inv {
			if quantity > 0 {
				models = append(models, StockModel{PartName: name, Quantity: quantity})
			}
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save spare parts: %w", err)
		}
		return nil
	})
}

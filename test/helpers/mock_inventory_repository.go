package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// MockInventoryRepository keeps the warehouse in memory
type MockInventoryRepository struct {
	mu    sync.RWMutex
	stock unit.Inventory
	saves int
}

// NewMockInventoryRepository creates a warehouse holding the given stock
func NewMockInventoryRepository(stock unit.Inventory) *MockInventoryRepository {
	m := &MockInventoryRepository{stock: unit.Inventory{}}
	for name, qty := range stock {
		m.stock[name] = qty
	}
	return m
}

// Load returns a copy of the stock
func (m *MockInventoryRepository) Load(ctx context.Context) (unit.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inv := make(unit.Inventory, len(m.stock))
	for name, qty := range m.stock {
		inv[name] = qty
	}
	return inv, nil
}

// Save replaces the stock
func (m *MockInventoryRepository) Save(ctx context.Context, inv unit.Inventory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stock = make(unit.Inventory, len(inv))
	for name, qty := range inv {
		m.stock[name] = qty
	}
	m.saves++
	return nil
}

// Quantity returns the stored amount of a part
func (m *MockInventoryRepository) Quantity(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stock[name]
}

var _ common.InventoryRepository = (*MockInventoryRepository)(nil)

package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

// MockSheetIndex maps units to the sheets they were imported from
type MockSheetIndex struct {
	mu     sync.RWMutex
	sheets map[uuid.UUID]string
}

// NewMockSheetIndex creates an empty sheet index
func NewMockSheetIndex() *MockSheetIndex {
	return &MockSheetIndex{sheets: make(map[uuid.UUID]string)}
}

// BindSheet remembers the sheet of a unit
func (m *MockSheetIndex) BindSheet(ctx context.Context, unitID uuid.UUID, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[unitID] = path
	return nil
}

// UnitsForSheet returns the units bound to path
func (m *MockSheetIndex) UnitsForSheet(ctx context.Context, path string) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []uuid.UUID
	for id, p := range m.sheets {
		if p == path {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// SheetOf returns the sheet bound to a unit
func (m *MockSheetIndex) SheetOf(unitID uuid.UUID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sheets[unitID]
}

var _ common.SheetIndex = (*MockSheetIndex)(nil)

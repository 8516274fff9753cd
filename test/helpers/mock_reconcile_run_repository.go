package helpers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/application/common"
)

// MockReconcileRunRepository records runs in memory
type MockReconcileRunRepository struct {
	mu   sync.RWMutex
	runs []*common.ReconcileRun
}

// NewMockReconcileRunRepository creates a new mock run repository
func NewMockReconcileRunRepository() *MockReconcileRunRepository {
	return &MockReconcileRunRepository{}
}

// Record stores the run
func (m *MockReconcileRunRepository) Record(ctx context.Context, run *common.ReconcileRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

// FindByUnit returns the newest runs of a unit first
func (m *MockReconcileRunRepository) FindByUnit(ctx context.Context, unitID uuid.UUID, limit int) ([]*common.ReconcileRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var runs []*common.ReconcileRun
	for i := len(m.runs) - 1; i >= 0; i-- {
		if m.runs[i].UnitID != unitID {
			continue
		}
		runs = append(runs, m.runs[i])
		if limit > 0 && len(runs) == limit {
			break
		}
	}
	return runs, nil
}

// Runs returns every recorded run in order
func (m *MockReconcileRunRepository) Runs() []*common.ReconcileRun {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*common.ReconcileRun{}, m.runs...)
}

var _ common.ReconcileRunRepository = (*MockReconcileRunRepository)(nil)

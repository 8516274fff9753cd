package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// MockUnitRepository is a test double for the unit.UnitRepository interface.
// Loaded units are the stored instances, not copies.
type MockUnitRepository struct {
	mu       sync.RWMutex
	units    map[uuid.UUID]*unit.Unit
	saves    int
	problems error
	loadErr  error
	saveErr  error
}

// NewMockUnitRepository creates a new mock unit repository
func NewMockUnitRepository() *MockUnitRepository {
	return &MockUnitRepository{
		units: make(map[uuid.UUID]*unit.Unit),
	}
}

// AddUnit adds units to the mock repository
func (m *MockUnitRepository) AddUnit(units ...*unit.Unit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range units {
		m.units[u.ID()] = u
	}
}

// SetLoadProblems makes every load report the given problems
func (m *MockUnitRepository) SetLoadProblems(problems ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.problems = multierr.Combine(problems...)
}

// SetLoadError makes Load fail
func (m *MockUnitRepository) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetSaveError makes Save fail
func (m *MockUnitRepository) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SaveCount returns how many times Save succeeded
func (m *MockUnitRepository) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Get returns a stored unit
func (m *MockUnitRepository) Get(id uuid.UUID) (*unit.Unit, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.units[id]
	return u, ok
}

// Load returns the requested units, sorted by name
func (m *MockUnitRepository) Load(ctx context.Context, ids ...uuid.UUID) (*unit.LoadReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	report := &unit.LoadReport{Problems: m.problems}
	if len(ids) == 0 {
		for _, u := range m.units {
			report.Units = append(report.Units, u)
		}
	} else {
		for _, id := range ids {
			if u, ok := m.units[id]; ok {
				report.Units = append(report.Units, u)
			}
		}
	}
	sort.Slice(report.Units, func(i, j int) bool {
		return report.Units[i].Name() < report.Units[j].Name()
	})
	return report, nil
}

// FindIDsByName returns the units whose full or fluff name matches
func (m *MockUnitRepository) FindIDsByName(ctx context.Context, name string) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []uuid.UUID
	for id, u := range m.units {
		if u.Name() == name || u.FluffName() == name {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Save stores the unit
func (m *MockUnitRepository) Save(ctx context.Context, u *unit.Unit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.units[u.ID()] = u
	m.saves++
	return nil
}

// Delete removes the unit
func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.units[id]; !ok {
		return shared.NewUnitError("unit not found", id.String())
	}
	delete(m.units, id)
	return nil
}

var _ unit.UnitRepository = (*MockUnitRepository)(nil)

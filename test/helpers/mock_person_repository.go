package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/personnel"
)

// MockPersonRepository is a test double for the personnel.Repository interface
type MockPersonRepository struct {
	mu     sync.RWMutex
	people map[uuid.UUID]*personnel.Person
}

// NewMockPersonRepository creates a new mock person repository
func NewMockPersonRepository(people ...*personnel.Person) *MockPersonRepository {
	m := &MockPersonRepository{people: make(map[uuid.UUID]*personnel.Person)}
	for _, p := range people {
		m.people[p.ID()] = p
	}
	return m
}

// FindAll returns every person sorted by name
func (m *MockPersonRepository) FindAll(ctx context.Context) ([]*personnel.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*personnel.Person, 0, len(m.people))
	for _, p := range m.people {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all, nil
}

// FindByID retrieves a person by id
func (m *MockPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*personnel.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.people[id]
	if !ok {
		return nil, fmt.Errorf("person not found: %s", id)
	}
	return p, nil
}

// Save stores the person
func (m *MockPersonRepository) Save(ctx context.Context, p *personnel.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID()] = p
	return nil
}

var _ personnel.Repository = (*MockPersonRepository)(nil)

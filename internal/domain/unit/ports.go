package unit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/domain/part"
)

// UnitRepository defines persistence operations for units
type UnitRepository interface {
	// Load reads the given units, or every unit when no id is given. People
	// are read first so legacy references can be resolved.
	Load(ctx context.Context, ids ...uuid.UUID) (*LoadReport, error)
	FindIDsByName(ctx context.Context, name string) ([]uuid.UUID, error)
	Save(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LoadReport holds the units read from storage and every problem met while
// reading them. Problems never stop a load.
type LoadReport struct {
	Units    []*Unit
	Problems error
}

// ProblemList splits the accumulated problems
func (r *LoadReport) ProblemList() []error {
	return multierr.Errors(r.Problems)
}

// Unit returns the loaded unit with the given id
func (r *LoadReport) Unit(id uuid.UUID) (*Unit, bool) {
	for _, u := range r.Units {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// IDIssuer gives a part its durable identity. It is the registration step of
// the parts ledger and may fail.
type IDIssuer func(p *part.Part) (uuid.UUID, error)

// DefaultIDIssuer issues random ids and never fails
func DefaultIDIssuer(*part.Part) (uuid.UUID, error) {
	return uuid.New(), nil
}

// Stock is the spare parts warehouse consulted for repairs. Amount is one for
// whole parts, armor points for armor and rounds for ammunition.
type Stock interface {
	Available(p *part.Part, amount int) bool
	Consume(p *part.Part, amount int) bool
}

// NoStock is an empty warehouse
type NoStock struct{}

func (NoStock) Available(*part.Part, int) bool { return false }
func (NoStock) Consume(*part.Part, int) bool   { return false }

// Inventory is an in-memory warehouse keyed by part name
type Inventory map[string]int

func (inv Inventory) Available(p *part.Part, amount int) bool {
	return inv[p.Name()] >= amount
}

func (inv Inventory) Consume(p *part.Part, amount int) bool {
	if !inv.Available(p, amount) {
		return false
	}
	inv[p.Name()] -= amount
	return true
}

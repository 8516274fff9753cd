package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
)

// UnitResolver turns what a user typed into a unit id.
//
// Resolution modes:
//  1. A UUID is returned as is
//  2. Anything else is looked up as a unit name and must match exactly one unit
type UnitResolver struct {
	unitRepo unit.UnitRepository
}

// NewUnitResolver creates a new unit resolver
func NewUnitResolver(unitRepo unit.UnitRepository) *UnitResolver {
	return &UnitResolver{unitRepo: unitRepo}
}

// ResolveUnitID resolves a unit id from an id or a name
func (r *UnitResolver) ResolveUnitID(ctx context.Context, ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, fmt.Errorf("unit id or name must be provided")
	}

	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	ids, err := r.unitRepo.FindIDsByName(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to find unit by name: %w", err)
	}
	switch len(ids) {
	case 0:
		return uuid.Nil, fmt.Errorf("no unit named %q", ref)
	case 1:
		return ids[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%d units are named %q, use the unit id", len(ids), ref)
	}
}

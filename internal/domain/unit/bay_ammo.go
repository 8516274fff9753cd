package unit

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

// AddBayAmmoBin gives a weapon bay a bin for the ammunition in template.
// An empty bin of that type already in the bay is reused. Otherwise a new
// mount is added to the definition and a bin created for it; if the bay's
// location is full no part is returned.
func (u *Unit) AddBayAmmoBin(template loadout.Mount, bayIndex int, issue IDIssuer) (*part.Part, error) {
	if !u.Category().IsLargeCraft() {
		return nil, shared.NewUnitError("only large craft carry bay ammunition", u.id.String())
	}

	for _, p := range u.parts {
		a := p.Ammo()
		if p.Kind() != part.KindAmmoBin || p.IsMissing() || a == nil {
			continue
		}
		if a.BayIndex == bayIndex && a.Type == template.AmmoType && a.CapacityTons == 0 {
			return p, nil
		}
	}

	mount, err := u.definition.AddAmmoMount(template, bayIndex)
	if err != nil {
		var full *shared.LocationFullError
		if errors.As(err, &full) {
			return nil, full
		}
		return nil, fmt.Errorf("failed to add %s to bay %d: %w", template.AmmoType, bayIndex, err)
	}

	if _, err := u.AdjustLargeCraftAmmo(issue); err != nil {
		return nil, err
	}
	p, ok := u.PartByKey(part.Key{Kind: part.KindAmmoBin, Location: part.NoLocation, Index: mount.Index})
	if !ok {
		return nil, shared.NewUnitError(fmt.Sprintf("no bin created for equipment %d", mount.Index), u.id.String())
	}
	return p, nil
}

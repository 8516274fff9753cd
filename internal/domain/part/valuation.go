package part

import "github.com/andrescamacho/unitforge-go/internal/domain/shared"

// ValueOptions are the campaign settings that scale part prices
type ValueOptions struct {
	UsedPartValue    [6]float64
	DamagedPartValue float64
}

// DefaultValueOptions matches the stock campaign settings
func DefaultValueOptions() ValueOptions {
	return ValueOptions{
		UsedPartValue:    [6]float64{0.1, 0.2, 0.3, 0.5, 0.7, 0.9},
		DamagedPartValue: 0.33,
	}
}

// StickerPrice is the undamaged list price of what is actually in the part
func (p *Part) StickerPrice() shared.Money {
	switch {
	case p.spec.Armor != nil:
		return shared.Money(float64(p.spec.Armor.Amount) * p.spec.Armor.PointCost)
	case p.spec.Ammo != nil && p.spec.Ammo.FullShots > 0:
		left := p.spec.Ammo.FullShots - p.spec.Ammo.ShotsNeeded
		return shared.Money(p.spec.Price * float64(left) / float64(p.spec.Ammo.FullShots))
	}
	return shared.Money(p.spec.Price)
}

// ReplacementPrice is the list price of a brand new, full part
func (p *Part) ReplacementPrice() shared.Money {
	if p.spec.Armor != nil {
		return shared.Money(float64(p.spec.Armor.Capacity) * p.spec.Armor.PointCost)
	}
	return shared.Money(p.spec.Price)
}

// ActualValue is what the part on the unit is worth. Missing parts are worth nothing.
func (p *Part) ActualValue(opts ValueOptions) shared.Money {
	if p.spec.Missing {
		return shared.Zero
	}
	value := p.StickerPrice()
	if p.state.Quality.IsValid() && opts.UsedPartValue[p.state.Quality] > 0 {
		value = value.Times(opts.UsedPartValue[p.state.Quality])
	}
	if p.spec.Armor == nil && p.spec.Ammo == nil && p.spec.Hits > 0 {
		value = value.Times(opts.DamagedPartValue)
	}
	return value
}

// ValueNeeded is the cost of bringing the part back to full: a new part for
// missing ones, the shortfall for armor and ammunition, nothing otherwise.
func (p *Part) ValueNeeded() shared.Money {
	switch {
	case p.spec.Missing:
		return p.ReplacementPrice()
	case p.spec.Armor != nil:
		short := p.spec.Armor.Capacity - p.spec.Armor.Amount
		return shared.Money(float64(short) * p.spec.Armor.PointCost)
	case p.spec.Ammo != nil && p.spec.Ammo.FullShots > 0:
		return shared.Money(p.spec.Price * float64(p.spec.Ammo.ShotsNeeded) / float64(p.spec.Ammo.FullShots))
	}
	return shared.Zero
}

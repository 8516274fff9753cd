package definition

import (
	"bytes"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
)

// Encode writes a definition as a design sheet
func Encode(def loadout.Definition) ([]byte, error) {
	data, err := toml.Marshal(toFile(def))
	if err != nil {
		return nil, fmt.Errorf("failed to encode design sheet: %w", err)
	}
	return data, nil
}

// Decode reads a design sheet. Unknown keys are rejected and every
// structural problem in the sheet is reported at once.
func Decode(data []byte) (*loadout.Sheet, error) {
	var f sheetFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse design sheet: %w", err)
	}
	if f.Format > SheetFormatVersion {
		return nil, fmt.Errorf("design sheet format %d is newer than supported format %d", f.Format, SheetFormatVersion)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return fromFile(&f), nil
}

func validate(f *sheetFile) error {
	var errs error
	if f.Profile.Chassis == "" {
		errs = multierr.Append(errs, fmt.Errorf("profile.chassis is required"))
	}
	if !loadout.Category(f.Profile.Category).IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("profile.category %q is not a unit category", f.Profile.Category))
	}

	locations := make(map[int]bool, len(f.Locations))
	for _, l := range f.Locations {
		if locations[l.Index] {
			errs = multierr.Append(errs, fmt.Errorf("location %d is defined twice", l.Index))
		}
		locations[l.Index] = true
	}
	knownLocation := func(i int) bool { return i < 0 || len(locations) == 0 || locations[i] }

	for _, c := range f.Components {
		if !knownLocation(c.Location) {
			errs = multierr.Append(errs, fmt.Errorf("component %s is in unknown location %d", c.Name, c.Location))
		}
	}

	mounts := make(map[int]string, len(f.Mounts))
	for _, m := range f.Mounts {
		if _, dup := mounts[m.Index]; dup {
			errs = multierr.Append(errs, fmt.Errorf("equipment number %d is used twice", m.Index))
		}
		mounts[m.Index] = m.Class
		if !knownLocation(m.Location) {
			errs = multierr.Append(errs, fmt.Errorf("equipment %d (%s) is in unknown location %d", m.Index, m.Name, m.Location))
		}
		if m.FullShots > 0 && m.ShotsLeft > m.FullShots {
			errs = multierr.Append(errs, fmt.Errorf("equipment %d (%s) holds %d of %d shots", m.Index, m.Name, m.ShotsLeft, m.FullShots))
		}
	}
	for _, m := range f.Mounts {
		if m.BayIndex != nil && mounts[*m.BayIndex] != string(loadout.MountWeaponBay) {
			errs = multierr.Append(errs, fmt.Errorf("equipment %d (%s) refers to missing weapon bay %d", m.Index, m.Name, *m.BayIndex))
		}
	}

	bays := make(map[int]bool, len(f.Bays))
	for _, b := range f.Bays {
		if bays[b.Index] {
			errs = multierr.Append(errs, fmt.Errorf("bay %d is defined twice", b.Index))
		}
		bays[b.Index] = true
		if b.DamagedDoors > b.Doors {
			errs = multierr.Append(errs, fmt.Errorf("bay %d has %d damaged of %d doors", b.Index, b.DamagedDoors, b.Doors))
		}
		if b.DamagedCubicles > int(b.Capacity) {
			errs = multierr.Append(errs, fmt.Errorf("bay %d has %d damaged cubicles for capacity %g", b.Index, b.DamagedCubicles, b.Capacity))
		}
	}
	return errs
}

func toFile(def loadout.Definition) *sheetFile {
	p := def.Profile()
	f := &sheetFile{
		Format:        SheetFormatVersion,
		CorrelationID: def.ExternalID(),
		Profile: profileFile{
			Chassis:          p.Chassis,
			Model:            p.Model,
			Category:         string(p.Category),
			Motive:           string(p.Motive),
			WeightClass:      string(p.WeightClass),
			Tonnage:          p.Tonnage,
			Year:             p.Year,
			Clan:             p.Clan,
			Omni:             p.Omni,
			Industrial:       p.Industrial,
			Support:          p.Support,
			Spheroid:         p.Spheroid,
			MilitaryDesign:   p.MilitaryDesign,
			CommandConsole:   p.CommandConsole,
			WalkMP:           p.WalkMP,
			JumpMP:           p.JumpMP,
			SI:               p.SI,
			OriginalSI:       p.OriginalSI,
			NavalRepair:      p.NavalRepair,
			DriveCompact:     p.DriveCompact,
			HasLF:            p.HasLF,
			HasHPG:           p.HasHPG,
			EngineType:       string(p.EngineType),
			EngineTonnage:    p.EngineTonnage,
			FuelTonnage:      p.FuelTonnage,
			Fuel:             p.Fuel,
			FuelPerTon:       p.FuelPerTon,
			HeatSinks:        p.HeatSinks,
			HeatType:         p.HeatType,
			ArmorTonnage:     p.ArmorTonnage,
			ArmorCostPerTon:  p.ArmorCostPerTon,
			LifeBoats:        p.LifeBoats,
			EscapePods:       p.EscapePods,
			FullCrewSize:     p.FullCrewSize,
			DriverNeeds:      p.DriverNeeds,
			GunnerNeeds:      p.GunnerNeeds,
			VesselNeeds:      p.VesselNeeds,
			Navigator:        p.Navigator,
			TechOfficer:      p.TechOfficer,
			Troopers:         p.Troopers,
			Squads:           p.Squads,
			Cost:             p.Cost,
			EnergyWeaponHeat: p.EnergyWeaponHeat,
			Quirks:           p.Quirks,
			Availability:     ratingName(p.Availability),
		},
	}

	if sheet, ok := def.(*loadout.Sheet); ok && sheet.DamageOverride != nil {
		level := int(*sheet.DamageOverride)
		f.Damage = &level
	}

	c := def.Crew()
	f.Crew = crewFile{
		Missing:      c.Missing,
		ExternalID:   c.ExternalID,
		Name:         c.Name,
		Callsign:     c.Callsign,
		Size:         c.Size,
		Piloting:     c.Piloting,
		Gunnery:      c.Gunnery,
		Artillery:    c.Artillery,
		Hits:         c.Hits,
		Toughness:    c.Toughness,
		CommandBonus: c.CommandBonus,
		Edge:         c.Edge,
		DriverHit:    c.DriverHit,
		CommanderHit: c.CommanderHit,
		Abilities:    c.Abilities,
	}

	for _, l := range def.Locations() {
		f.Locations = append(f.Locations, locationFile{
			Index:          l.Index,
			Name:           l.Name,
			Abbr:           l.Abbr,
			Role:           string(l.Role),
			Internal:       l.Internal,
			MaxInternal:    l.MaxInternal,
			Armor:          l.Armor,
			MaxArmor:       l.MaxArmor,
			RearArmor:      l.RearArmor,
			MaxRearArmor:   l.MaxRearArmor,
			HasRear:        l.HasRear,
			Destroyed:      l.Destroyed,
			Slots:          l.Slots,
			StructureType:  l.StructureType,
			ArmorType:      l.ArmorType,
			StructureCost:  l.StructureCost,
			ArmorPointCost: l.ArmorPointCost,
		})
	}
	for _, c := range def.Components() {
		f.Components = append(f.Components, componentFile{
			Type:         string(c.Type),
			Location:     c.Location,
			Index:        c.Index,
			Name:         c.Name,
			Hits:         c.Hits,
			MaxHits:      c.MaxHits,
			Destroyed:    c.Destroyed,
			Cost:         c.Cost,
			Tonnage:      c.Tonnage,
			Availability: ratingName(c.Availability),
		})
	}
	for _, m := range def.Mounts() {
		mf := mountFile{
			Index:        m.Index,
			Class:        string(m.Class),
			Name:         m.Name,
			Location:     m.Location,
			Rear:         m.Rear,
			Hits:         m.Hits,
			Destroyed:    m.Destroyed,
			Slots:        m.Slots,
			OmniPodded:   m.OmniPodded,
			Cost:         m.Cost,
			Tonnage:      m.Tonnage,
			Availability: ratingName(m.Availability),
			EnergyHeat:   m.EnergyHeat,
			AmmoType:     m.AmmoType,
			ShotsLeft:    m.ShotsLeft,
			FullShots:    m.FullShots,
			CapacityTons: m.CapacityTons,
		}
		if m.BayIndex != loadout.NoBay {
			bay := m.BayIndex
			mf.BayIndex = &bay
		}
		f.Mounts = append(f.Mounts, mf)
	}
	for _, b := range def.Bays() {
		f.Bays = append(f.Bays, bayFile{
			Index:           b.Index,
			Type:            string(b.Type),
			Capacity:        b.Capacity,
			Doors:           b.Doors,
			DamagedDoors:    b.DamagedDoors,
			DamagedCubicles: b.DamagedCubicles,
			Destroyed:       b.Destroyed,
			Cost:            b.Cost,
		})
	}
	for _, c := range def.DockingCollars() {
		f.Collars = append(f.Collars, collarFile{Index: c.Index, Damaged: c.Damaged, Cost: c.Cost})
	}
	for _, d := range def.GravDecks() {
		f.GravDecks = append(f.GravDecks, gravDeckFile{Index: d.Index, Diameter: d.Diameter, Damaged: d.Damaged, Cost: d.Cost})
	}
	return f
}

func fromFile(f *sheetFile) *loadout.Sheet {
	p := f.Profile
	sheet := loadout.NewSheet(loadout.Profile{
		Chassis:          p.Chassis,
		Model:            p.Model,
		Category:         loadout.Category(p.Category),
		Motive:           loadout.Motive(p.Motive),
		WeightClass:      loadout.WeightClass(p.WeightClass),
		Tonnage:          p.Tonnage,
		Year:             p.Year,
		Clan:             p.Clan,
		Omni:             p.Omni,
		Industrial:       p.Industrial,
		Support:          p.Support,
		Spheroid:         p.Spheroid,
		MilitaryDesign:   p.MilitaryDesign,
		CommandConsole:   p.CommandConsole,
		WalkMP:           p.WalkMP,
		JumpMP:           p.JumpMP,
		SI:               p.SI,
		OriginalSI:       p.OriginalSI,
		NavalRepair:      p.NavalRepair,
		DriveCompact:     p.DriveCompact,
		HasLF:            p.HasLF,
		HasHPG:           p.HasHPG,
		EngineType:       loadout.EngineType(p.EngineType),
		EngineTonnage:    p.EngineTonnage,
		FuelTonnage:      p.FuelTonnage,
		Fuel:             p.Fuel,
		FuelPerTon:       p.FuelPerTon,
		HeatSinks:        p.HeatSinks,
		HeatType:         p.HeatType,
		ArmorTonnage:     p.ArmorTonnage,
		ArmorCostPerTon:  p.ArmorCostPerTon,
		LifeBoats:        p.LifeBoats,
		EscapePods:       p.EscapePods,
		FullCrewSize:     p.FullCrewSize,
		DriverNeeds:      p.DriverNeeds,
		GunnerNeeds:      p.GunnerNeeds,
		VesselNeeds:      p.VesselNeeds,
		Navigator:        p.Navigator,
		TechOfficer:      p.TechOfficer,
		Troopers:         p.Troopers,
		Squads:           p.Squads,
		Cost:             p.Cost,
		EnergyWeaponHeat: p.EnergyWeaponHeat,
		Quirks:           p.Quirks,
		Availability:     parseRating(p.Availability),
	})
	sheet.CorrelationID = f.CorrelationID
	if f.Damage != nil {
		level := loadout.DamageLevel(*f.Damage)
		sheet.DamageOverride = &level
	}

	c := f.Crew
	abilities := c.Abilities
	if abilities == nil {
		abilities = map[string]string{}
	}
	sheet.CrewRecord = loadout.CrewRecord{
		Missing:      c.Missing,
		ExternalID:   c.ExternalID,
		Name:         c.Name,
		Callsign:     c.Callsign,
		Size:         c.Size,
		Piloting:     c.Piloting,
		Gunnery:      c.Gunnery,
		Artillery:    c.Artillery,
		Hits:         c.Hits,
		Toughness:    c.Toughness,
		CommandBonus: c.CommandBonus,
		Edge:         c.Edge,
		DriverHit:    c.DriverHit,
		CommanderHit: c.CommanderHit,
		Abilities:    abilities,
	}

	for _, l := range f.Locations {
		sheet.Locs = append(sheet.Locs, loadout.Location{
			Index:          l.Index,
			Name:           l.Name,
			Abbr:           l.Abbr,
			Role:           loadout.LocationRole(l.Role),
			Internal:       l.Internal,
			MaxInternal:    l.MaxInternal,
			Armor:          l.Armor,
			MaxArmor:       l.MaxArmor,
			RearArmor:      l.RearArmor,
			MaxRearArmor:   l.MaxRearArmor,
			HasRear:        l.HasRear,
			Destroyed:      l.Destroyed,
			Slots:          l.Slots,
			StructureType:  l.StructureType,
			ArmorType:      l.ArmorType,
			StructureCost:  l.StructureCost,
			ArmorPointCost: l.ArmorPointCost,
		})
	}
	for _, c := range f.Components {
		sheet.Comps = append(sheet.Comps, loadout.Component{
			Type:         loadout.ComponentType(c.Type),
			Location:     c.Location,
			Index:        c.Index,
			Name:         c.Name,
			Hits:         c.Hits,
			MaxHits:      c.MaxHits,
			Destroyed:    c.Destroyed,
			Cost:         c.Cost,
			Tonnage:      c.Tonnage,
			Availability: parseRating(c.Availability),
		})
	}
	for _, m := range f.Mounts {
		bay := loadout.NoBay
		if m.BayIndex != nil {
			bay = *m.BayIndex
		}
		sheet.Equipment = append(sheet.Equipment, loadout.Mount{
			Index:        m.Index,
			Class:        loadout.MountClass(m.Class),
			Name:         m.Name,
			Location:     m.Location,
			Rear:         m.Rear,
			Hits:         m.Hits,
			Destroyed:    m.Destroyed,
			Slots:        m.Slots,
			OmniPodded:   m.OmniPodded,
			Cost:         m.Cost,
			Tonnage:      m.Tonnage,
			Availability: parseRating(m.Availability),
			EnergyHeat:   m.EnergyHeat,
			AmmoType:     m.AmmoType,
			ShotsLeft:    m.ShotsLeft,
			FullShots:    m.FullShots,
			BayIndex:     bay,
			CapacityTons: m.CapacityTons,
		})
	}
	for _, b := range f.Bays {
		sheet.TransportBays = append(sheet.TransportBays, loadout.Bay{
			Index:           b.Index,
			Type:            loadout.BayType(b.Type),
			Capacity:        b.Capacity,
			Doors:           b.Doors,
			DamagedDoors:    b.DamagedDoors,
			DamagedCubicles: b.DamagedCubicles,
			Destroyed:       b.Destroyed,
			Cost:            b.Cost,
		})
	}
	for _, c := range f.Collars {
		sheet.Collars = append(sheet.Collars, loadout.DockingCollar{Index: c.Index, Damaged: c.Damaged, Cost: c.Cost})
	}
	for _, d := range f.GravDecks {
		sheet.Decks = append(sheet.Decks, loadout.GravDeck{Index: d.Index, Diameter: d.Diameter, Damaged: d.Damaged, Cost: d.Cost})
	}
	sheet.SettleDestruction()
	return sheet
}

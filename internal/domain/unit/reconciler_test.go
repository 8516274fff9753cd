package unit_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/part"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/internal/domain/unit"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func partIDs(u *unit.Unit) []uuid.UUID {
	return lo.Map(u.Parts(), func(p *part.Part, _ int) uuid.UUID { return p.ID() })
}

func keysAreUnique(t *testing.T, u *unit.Unit) {
	t.Helper()
	keys := lo.Map(u.Parts(), func(p *part.Part, _ int) part.Key { return p.Key() })
	assert.Len(t, lo.Uniq(keys), len(keys), "duplicate part keys in registry")
}

func TestReconcile_CreatesOnePartPerSlot(t *testing.T) {
	// Arrange
	u := helpers.NewTestUnit(helpers.CreateTestMechSheet(), nil)

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Len(t, u.Parts(), helpers.MechPartCount)
	assert.Equal(t, helpers.MechPartCount, report.Count(unit.ActionCreate))
	assert.Zero(t, report.Count(unit.ActionRemove))
	for _, p := range u.Parts() {
		assert.True(t, p.HasIdentity(), "part %s has no identity", p.Key())
		assert.False(t, p.IsMissing())
	}
	keysAreUnique(t, u)
}

func TestReconcile_SecondPassChangesNothing(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)
	before := partIDs(u)

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.True(t, report.IsEmpty(), "unexpected ops: %v", report.Ops)
	assert.Equal(t, before, partIDs(u))
}

func TestReconcile_DestroyedTorsoArmorLeavesOneEmptyArmorPart(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	loc, _ := sheet.Location(helpers.MechLeftTorso)
	loc.Armor = 0

	// Act
	_, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	front := lo.Filter(u.Parts(), func(p *part.Part, _ int) bool {
		return p.Key() == part.Key{Kind: part.KindArmor, Location: helpers.MechLeftTorso}
	})
	require.Len(t, front, 1)
	assert.Equal(t, 0, front[0].Armor().Amount)
	assert.True(t, front[0].NeedsFixing())
	assert.False(t, front[0].IsMissing())
}

func TestReconcile_DestroyedLocationSwapsPartsToMissing(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	ammoKey := part.Key{Kind: part.KindAmmoBin, Location: part.NoLocation, Index: helpers.MechAutocannonAmmo}
	oldBin, _ := u.PartByKey(ammoKey)
	require.NoError(t, sheet.DestroyLocation(helpers.MechLeftTorso))

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Len(t, u.Parts(), helpers.MechPartCount)
	keysAreUnique(t, u)

	bin, ok := u.PartByKey(ammoKey)
	require.True(t, ok)
	assert.True(t, bin.IsMissing())
	assert.NotEqual(t, oldBin.ID(), bin.ID())

	structure, _ := u.PartByKey(part.Key{Kind: part.KindStructure, Location: helpers.MechLeftTorso})
	assert.True(t, structure.IsMissing())

	armor, _ := u.PartByKey(part.Key{Kind: part.KindArmor, Location: helpers.MechLeftTorso})
	assert.False(t, armor.IsMissing(), "armor is never missing")
	assert.Equal(t, 0, armor.Armor().Amount)

	assert.Equal(t, report.Count(unit.ActionRemove), report.Count(unit.ActionCreate))
	assert.Equal(t, 2, report.Count(unit.ActionRemove))
}

func TestReconcile_RemovesBeforeCreating(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Comps[0].Destroyed = true

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Ops, 2)
	assert.Equal(t, unit.ActionRemove, report.Ops[0].Action)
	assert.Equal(t, unit.ActionCreate, report.Ops[1].Action)
	assert.Equal(t, report.Ops[0].Key, report.Ops[1].Key)
}

func TestReconcile_DropsPartsForVanishedSlots(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Equipment = sheet.Equipment[:len(sheet.Equipment)-1]

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Len(t, u.Parts(), helpers.MechPartCount-1)
	assert.Equal(t, 1, report.Count(unit.ActionRemove))
	_, ok := u.PartByKey(part.Key{Kind: part.KindEquipment, Location: part.NoLocation, Index: helpers.MechMediumLaser})
	assert.False(t, ok)
}

func TestReconcile_KeepsWorkInProgressThroughDamage(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	engineKey := part.Key{Kind: part.KindEngine, Location: helpers.MechCenterTorso}
	engine, _ := u.PartByKey(engineKey)
	tech := uuid.New()
	engine.SetQuality(part.QualityB)
	engine.AssignTech(tech, 120)
	sheet.Comps[0].Hits = 1

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(unit.ActionRefresh))
	refreshed, _ := u.PartByKey(engineKey)
	assert.Equal(t, engine.ID(), refreshed.ID())
	assert.Equal(t, 1, refreshed.Hits())
	assert.Equal(t, tech, refreshed.TechID())
	assert.Equal(t, 120, refreshed.MinutesLeft())
	assert.Equal(t, part.QualityB, refreshed.Quality())
	assert.False(t, refreshed.NeedsFixing())
	assert.NotContains(t, u.PartsNeedingFixing(), refreshed)
}

func TestReconcile_PreservesPartialAmmo(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	sheet.Equipment[helpers.MechAutocannonAmmo].ShotsLeft = 7

	// Act
	u := helpers.NewReconciledTestUnit(sheet, nil)

	// Assert
	bin, ok := u.PartByKey(part.Key{Kind: part.KindAmmoBin, Location: part.NoLocation, Index: helpers.MechAutocannonAmmo})
	require.True(t, ok)
	assert.Equal(t, 7, bin.ShotsLeft())
	assert.Equal(t, 13, bin.Ammo().ShotsNeeded)
	assert.True(t, bin.NeedsFixing())
}

func TestReconcile_FirstRegisteredPartWinsDuplicateKey(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)
	snap := u.ToSnapshot()
	first := snap.Parts[0]
	dup := part.Rehydrate(uuid.New(), first.Spec(), part.State{Quality: part.QualityA})
	snap.Parts = append(snap.Parts, dup)
	loaded, err := unit.FromSnapshot(snap, unit.ReferenceResolver{}, unit.DefaultOptions(), shared.NewMockClock(helpers.DefaultTestTime()))
	require.NoError(t, err)

	// Act
	report, err := loaded.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Inconsistent, 1)
	assert.Equal(t, first.ID().String(), report.Inconsistent[0].RetainedPartID)
	assert.Len(t, loaded.Parts(), helpers.MechPartCount)
	kept, _ := loaded.PartByKey(first.Key())
	assert.Equal(t, first.ID(), kept.ID())
	keysAreUnique(t, loaded)
}

func TestReconcile_PlaceholdersGetIdentityOnLaterPass(t *testing.T) {
	// Arrange
	u := helpers.NewTestUnit(helpers.CreateTestDropshipSheet(), nil)

	// Act
	first, err := u.Reconcile(false, nil)
	require.NoError(t, err)

	// Assert
	for _, p := range u.Parts() {
		assert.False(t, p.HasIdentity())
	}
	assert.Zero(t, first.Count(unit.ActionLink))
	bay, ok := u.PartByKey(part.Key{Kind: part.KindTransportBay, Location: part.NoLocation, Index: 0})
	require.True(t, ok)
	assert.Empty(t, bay.ChildIDs())

	// Act
	second, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, len(u.Parts()), second.Count(unit.ActionPromote))
	assert.Zero(t, second.Count(unit.ActionCreate))
	// two doors and two cubicles
	assert.Len(t, bay.ChildIDs(), 4)
	assert.Equal(t, 4, second.Count(unit.ActionLink))
	for _, id := range bay.ChildIDs() {
		child, ok := u.Part(id)
		require.True(t, ok)
		assert.Equal(t, bay.ID(), child.ParentID())
	}
}

func TestReconcile_FewerDoorsUnlinksTheRemovedDoor(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestDropshipSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	bay, ok := u.PartByKey(part.Key{Kind: part.KindTransportBay, Location: part.NoLocation, Index: 0})
	require.True(t, ok)
	door, ok := u.PartByKey(part.Key{Kind: part.KindBayDoor, Location: 1, Index: 0})
	require.True(t, ok)
	require.Contains(t, bay.ChildIDs(), door.ID())
	sheet.TransportBays[0].Doors = 1

	// Act
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(unit.ActionRemove))
	_, ok = u.Part(door.ID())
	assert.False(t, ok)
	assert.NotContains(t, bay.ChildIDs(), door.ID())
	assert.Len(t, bay.ChildIDs(), 3)
	keysAreUnique(t, u)
}

func TestReconcile_IssuerFailureLeavesRegistryUnchanged(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	before := partIDs(u)
	sheet.Comps[1].Destroyed = true
	sheet.Equipment = sheet.Equipment[:len(sheet.Equipment)-1]
	failing := func(*part.Part) (uuid.UUID, error) { return uuid.Nil, errors.New("ledger offline") }

	// Act
	report, err := u.Reconcile(true, failing)

	// Assert
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Equal(t, before, partIDs(u))
	gyro, _ := u.PartByKey(part.Key{Kind: part.KindGyro, Location: helpers.MechCenterTorso})
	assert.False(t, gyro.IsMissing())
}

func TestReplaceMissingPart_WithoutStockIsUnavailable(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Comps[3].Destroyed = true
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)
	sensor, _ := u.PartByKey(part.Key{Kind: part.KindSensor, Location: helpers.MechHead})

	// Act
	err = u.ReplaceMissingPart(sensor.ID(), unit.NoStock{})

	// Assert
	var unavailable *shared.PartUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Mech Sensors", unavailable.PartName)
	assert.True(t, sensor.IsMissing())
}

func TestReplaceMissingPart_FromStockRestoresSlot(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Comps[3].Destroyed = true
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)
	sensor, _ := u.PartByKey(part.Key{Kind: part.KindSensor, Location: helpers.MechHead})
	stock := unit.Inventory{"Mech Sensors": 2}

	// Act
	err = u.ReplaceMissingPart(sensor.ID(), stock)
	require.NoError(t, err)
	report, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, stock["Mech Sensors"])
	assert.False(t, sheet.Comps[3].Destroyed)
	assert.Zero(t, report.Count(unit.ActionCreate))
	replaced, _ := u.PartByKey(part.Key{Kind: part.KindSensor, Location: helpers.MechHead})
	assert.Equal(t, sensor.ID(), replaced.ID())
	assert.False(t, replaced.IsMissing())
}

func missingCount(u *unit.Unit) int {
	return lo.CountBy(u.Parts(), func(p *part.Part) bool { return p.IsMissing() })
}

func TestReplaceMissingPart_StructureLeavesMountsInLocationMissing(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	require.NoError(t, sheet.DestroyLocation(helpers.MechRightTorso))
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)
	structureKey := part.Key{Kind: part.KindStructure, Location: helpers.MechRightTorso}
	cannonKey := part.Key{Kind: part.KindEquipment, Location: part.NoLocation, Index: helpers.MechAutocannon}
	require.Equal(t, 2, missingCount(u))
	structure, _ := u.PartByKey(structureKey)
	stock := unit.Inventory{structure.Name(): 1, "AC/20": 1}

	// Act
	err = u.ReplaceMissingPart(structure.ID(), stock)
	require.NoError(t, err)
	_, err = u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	structure, _ = u.PartByKey(structureKey)
	assert.False(t, structure.IsMissing())
	cannon, _ := u.PartByKey(cannonKey)
	assert.True(t, cannon.IsMissing(), "the autocannon has to be replaced on its own")
	assert.Equal(t, 1, missingCount(u))
	assert.Equal(t, 1, stock["AC/20"])

	// Act
	err = u.ReplaceMissingPart(cannon.ID(), stock)
	require.NoError(t, err)
	_, err = u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Zero(t, missingCount(u))
	assert.Zero(t, stock["AC/20"])
}

func TestReplaceMissingPart_RefusesPartsInsideDestroyedLocation(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestMechSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	require.NoError(t, sheet.DestroyLocation(helpers.MechRightTorso))
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)
	cannon, _ := u.PartByKey(part.Key{Kind: part.KindEquipment, Location: part.NoLocation, Index: helpers.MechAutocannon})
	stock := unit.Inventory{"AC/20": 1}

	// Act
	err = u.ReplaceMissingPart(cannon.ID(), stock)

	// Assert
	var invalid *shared.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, stock["AC/20"])
	assert.True(t, cannon.IsMissing())
}

func TestReplaceMissingPart_OneCubicleLeavesRestOfBayMissing(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestDropshipSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	require.NoError(t, sheet.DestroyBay(0))
	_, err := u.Reconcile(true, nil)
	require.NoError(t, err)
	// bay, two doors, two cubicles
	require.Equal(t, 5, missingCount(u))
	bay, _ := u.PartByKey(part.Key{Kind: part.KindTransportBay, Location: part.NoLocation, Index: 0})
	cubicleKey := part.Key{Kind: part.KindCubicle, Location: 0, Index: 0}
	cubicle, _ := u.PartByKey(cubicleKey)
	stock := unit.Inventory{bay.Name(): 1, cubicle.Name(): 1}

	// Act
	cubicleErr := u.ReplaceMissingPart(cubicle.ID(), stock)
	require.NoError(t, u.ReplaceMissingPart(bay.ID(), stock))
	_, err = u.Reconcile(true, nil)
	require.NoError(t, err)

	// Assert
	var invalid *shared.ValidationError
	require.ErrorAs(t, cubicleErr, &invalid, "cubicles wait for the bay")
	assert.Equal(t, 4, missingCount(u))

	// Act
	cubicle, _ = u.PartByKey(cubicleKey)
	require.NoError(t, u.ReplaceMissingPart(cubicle.ID(), stock))
	_, err = u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, missingCount(u))
	assert.Zero(t, stock[cubicle.Name()])
	assert.Equal(t, 1, sheet.Bays()[0].DamagedCubicles)
	assert.Equal(t, 2, sheet.Bays()[0].DamagedDoors)
}

func TestReconcile_OmniUnitsGetPodSpaces(t *testing.T) {
	// Arrange
	u := helpers.NewTestUnit(helpers.CreateTestOmniMechSheet(), nil)

	// Act
	_, err := u.Reconcile(true, nil)

	// Assert
	require.NoError(t, err)
	spaces := u.PodSpaces()
	require.Len(t, spaces, 8)
	podded := lo.SumBy(spaces, func(s *unit.PodSpace) int { return s.PodCount() })
	assert.Equal(t, 2, podded)
	assert.True(t, lo.EveryBy(spaces, func(s *unit.PodSpace) bool { return s.IsFunctional() }))
}

func TestReconcile_FixedUnitsHaveNoPodSpaces(t *testing.T) {
	// Arrange & Act
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)

	// Assert
	assert.Empty(t, u.PodSpaces())
}

func TestAdjustLargeCraftAmmo_CreatesBinsForNewBayAmmo(t *testing.T) {
	// Arrange
	sheet := helpers.CreateTestDropshipSheet()
	u := helpers.NewReconciledTestUnit(sheet, nil)
	sheet.Equipment = append(sheet.Equipment, loadout.Mount{
		Index: 5, Class: loadout.MountAmmo, Name: "LRM 20 Ammo", Location: 0, Slots: 1,
		AmmoType: "LRM20", FullShots: 12, ShotsLeft: 6, BayIndex: helpers.DropshipWeaponBay, CapacityTons: 2,
	})
	count := len(u.Parts())

	// Act
	report, err := u.AdjustLargeCraftAmmo(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(unit.ActionCreate))
	assert.Zero(t, report.Count(unit.ActionRemove))
	assert.Len(t, u.Parts(), count+1)
	bin, ok := u.PartByKey(part.Key{Kind: part.KindAmmoBin, Location: part.NoLocation, Index: 5})
	require.True(t, ok)
	assert.Equal(t, 6, bin.ShotsLeft())
}

package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/unitforge-go/internal/domain/loadout"
	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
	"github.com/andrescamacho/unitforge-go/test/helpers"
)

func ammoTemplate(ammoType string) loadout.Mount {
	return loadout.Mount{Name: ammoType + " Ammo", AmmoType: ammoType, FullShots: 6, Cost: 30000, Tonnage: 1}
}

func TestAddBayAmmoBin_CreatesEmptyBinInBayLocation(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)
	count := len(u.Parts())

	// Act
	bin, err := u.AddBayAmmoBin(ammoTemplate("LRM20"), helpers.DropshipWeaponBay, nil)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, bin)
	assert.True(t, bin.HasIdentity())
	assert.Zero(t, bin.ShotsLeft())
	assert.Equal(t, 6, bin.Ammo().ShotsNeeded)
	assert.Equal(t, helpers.DropshipWeaponBay, bin.Ammo().BayIndex)
	assert.Equal(t, 0, bin.Slot().Location)
	assert.Len(t, u.Parts(), count+1)
}

func TestAddBayAmmoBin_ReusesEmptyBinOfSameType(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)
	first, err := u.AddBayAmmoBin(ammoTemplate("LRM20"), helpers.DropshipWeaponBay, nil)
	require.NoError(t, err)

	// Act
	second, err := u.AddBayAmmoBin(ammoTemplate("LRM20"), helpers.DropshipWeaponBay, nil)

	// Assert
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestAddBayAmmoBin_FullLocationReturnsNoPart(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestDropshipSheet(), nil)
	_, err := u.AddBayAmmoBin(ammoTemplate("LRM20"), helpers.DropshipWeaponBay, nil)
	require.NoError(t, err)
	count := len(u.Parts())

	// Act
	bin, err := u.AddBayAmmoBin(ammoTemplate("SRM6"), helpers.DropshipWeaponBay, nil)

	// Assert
	var full *shared.LocationFullError
	require.ErrorAs(t, err, &full)
	assert.Nil(t, bin)
	assert.Len(t, u.Parts(), count)
}

func TestAddBayAmmoBin_OnlyLargeCraft(t *testing.T) {
	// Arrange
	u := helpers.NewReconciledTestUnit(helpers.CreateTestMechSheet(), nil)

	// Act
	bin, err := u.AddBayAmmoBin(ammoTemplate("AC20"), 0, nil)

	// Assert
	var unitErr *shared.UnitError
	assert.ErrorAs(t, err, &unitErr)
	assert.Nil(t, bin)
}

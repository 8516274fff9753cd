package part_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/unitforge-go/internal/domain/part"
)

func TestPart_NeedsFixing(t *testing.T) {
	tests := []struct {
		name string
		spec part.Spec
		want bool
	}{
		{"intact", part.Spec{Key: part.Key{Kind: part.KindEquipment, Location: part.NoLocation}, MaxHits: 4}, false},
		{"damaged", part.Spec{Key: part.Key{Kind: part.KindEquipment, Location: part.NoLocation}, Hits: 1, MaxHits: 4}, true},
		{"missing", part.Spec{Key: part.Key{Kind: part.KindEquipment, Location: part.NoLocation}, Missing: true}, true},
		{"armor short", part.Spec{Key: part.Key{Kind: part.KindArmor, Location: 0}, Armor: &part.ArmorState{Amount: 3, Capacity: 9}}, true},
		{"ammo short", part.Spec{Key: part.Key{Kind: part.KindAmmoBin, Location: part.NoLocation}, Ammo: &part.AmmoState{FullShots: 10, ShotsNeeded: 4}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			p := part.New(tt.spec)

			// Act
			got := p.NeedsFixing()

			// Assert
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPart_WorkInProgressDoesNotNeedFixing(t *testing.T) {
	// Arrange
	p := part.New(part.Spec{Key: part.Key{Kind: part.KindEquipment, Location: part.NoLocation}, Missing: true})
	p.AssignTech(uuid.New(), 120)

	// Act
	working, condition := p.NeedsFixing(), p.Condition()
	p.CancelAssignment()
	idle := p.NeedsFixing()

	// Assert
	assert.False(t, working)
	assert.Equal(t, part.ConditionBeingWorkedOn, condition)
	assert.True(t, idle)
}

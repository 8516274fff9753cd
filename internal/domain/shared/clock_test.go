package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/unitforge-go/internal/domain/shared"
)

func TestMockClock_AdvanceDaysCrossesMonths(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(3025, time.June, 29, 8, 0, 0, 0, time.UTC))

	// Act
	clock.AdvanceDays(3)

	// Assert
	assert.Equal(t, "3025-07-02", shared.CampaignDate(clock))
}

func TestMockClock_ZeroStartUsesCurrentTime(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})

	assert.WithinDuration(t, time.Now(), clock.Now(), time.Minute)
}

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, shared.NewRealClock().Now().Location())
}

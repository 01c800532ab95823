package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func summerPeakWindow() PeakWindow {
	return PeakWindow{
		HourStart:    14,
		HourEnd:      19,
		Weekdays:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Months:       []time.Month{time.June, time.July, time.August, time.September},
		SkipHolidays: true,
	}
}

func TestPeakWindowContains(t *testing.T) {
	w := summerPeakWindow()

	// June 2, 2025 is a Monday
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	t.Run("InWindow", func(t *testing.T) {
		assert.True(t, w.Contains(monday.Add(14*time.Hour)))
		assert.True(t, w.Contains(monday.Add(18*time.Hour)))
	})

	t.Run("HourBounds", func(t *testing.T) {
		assert.False(t, w.Contains(monday.Add(13*time.Hour)))
		// end hour is exclusive
		assert.False(t, w.Contains(monday.Add(19*time.Hour)))
	})

	t.Run("Weekend", func(t *testing.T) {
		saturday := time.Date(2025, time.June, 7, 15, 0, 0, 0, time.UTC)
		assert.False(t, w.Contains(saturday))
	})

	t.Run("WinterMonth", func(t *testing.T) {
		january := time.Date(2025, time.January, 6, 15, 0, 0, 0, time.UTC)
		assert.False(t, w.Contains(january))
	})

	t.Run("IndependenceDay", func(t *testing.T) {
		// July 4, 2025 is a Friday
		assert.False(t, w.Contains(time.Date(2025, time.July, 4, 15, 0, 0, 0, time.UTC)))
		assert.True(t, w.Contains(time.Date(2025, time.July, 3, 15, 0, 0, 0, time.UTC)))
	})

	t.Run("LaborDay", func(t *testing.T) {
		// September 1, 2025 is the first Monday
		assert.False(t, w.Contains(time.Date(2025, time.September, 1, 15, 0, 0, 0, time.UTC)))
		// the following Monday is a normal peak day
		assert.True(t, w.Contains(time.Date(2025, time.September, 8, 15, 0, 0, 0, time.UTC)))
	})

	t.Run("HolidaysCountWhenNotSkipped", func(t *testing.T) {
		noSkip := summerPeakWindow()
		noSkip.SkipHolidays = false
		assert.True(t, noSkip.Contains(time.Date(2025, time.July, 4, 15, 0, 0, 0, time.UTC)))
	})
}

func TestScenarioValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		sc := LoadShiftScenario{PeakReductionPct: 30, EnergyShiftPct: 25}
		assert.NoError(t, sc.Validate())
		assert.Equal(t, RedistributeProportional, sc.Policy())
	})

	t.Run("PeakReductionOutOfRange", func(t *testing.T) {
		sc := LoadShiftScenario{PeakReductionPct: 95, EnergyShiftPct: 25}
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScenario)

		sc.PeakReductionPct = 5
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScenario)
	})

	t.Run("EnergyShiftOutOfRange", func(t *testing.T) {
		sc := LoadShiftScenario{PeakReductionPct: 30, EnergyShiftPct: 61}
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScenario)
	})

	t.Run("UnknownPolicy", func(t *testing.T) {
		sc := LoadShiftScenario{PeakReductionPct: 30, EnergyShiftPct: 25, Redistribution: "random"}
		assert.ErrorIs(t, sc.Validate(), ErrInvalidScenario)
	})

	t.Run("EvenPolicy", func(t *testing.T) {
		sc := LoadShiftScenario{PeakReductionPct: 30, EnergyShiftPct: 25, Redistribution: RedistributeEven}
		assert.NoError(t, sc.Validate())
		assert.Equal(t, RedistributeEven, sc.Policy())
	})
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourly(start time.Time, kwhs ...float64) UsageSeries {
	s := make(UsageSeries, len(kwhs))
	for i, k := range kwhs {
		s[i] = UsageSample{Timestamp: start.Add(time.Duration(i) * time.Hour), KWH: k}
	}
	return s
}

func TestUsageSeriesValidate(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, hourly(start, 1, 2, 3).Validate())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.ErrorIs(t, UsageSeries{}.Validate(), ErrInsufficientData)
	})

	t.Run("NegativeEnergy", func(t *testing.T) {
		assert.ErrorIs(t, hourly(start, 1, -0.5).Validate(), ErrInvalidUsage)
	})

	t.Run("OffHourBoundary", func(t *testing.T) {
		s := UsageSeries{{Timestamp: start.Add(30 * time.Minute), KWH: 1}}
		assert.ErrorIs(t, s.Validate(), ErrInvalidUsage)
	})

	t.Run("NotIncreasing", func(t *testing.T) {
		s := UsageSeries{
			{Timestamp: start, KWH: 1},
			{Timestamp: start, KWH: 2},
		}
		assert.ErrorIs(t, s.Validate(), ErrInvalidUsage)
	})
}

func TestUsageSeriesGaps(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("NoGaps", func(t *testing.T) {
		assert.Empty(t, hourly(start, 1, 1, 1).Gaps())
	})

	t.Run("SingleGap", func(t *testing.T) {
		s := UsageSeries{
			{Timestamp: start, KWH: 1},
			{Timestamp: start.Add(4 * time.Hour), KWH: 1},
		}
		gaps := s.Gaps()
		require.Len(t, gaps, 1)
		assert.Equal(t, start, gaps[0].After)
		assert.Equal(t, start.Add(4*time.Hour), gaps[0].Before)
		assert.Equal(t, 3, gaps[0].MissingHours)
	})
}

func TestUsageSeriesMonths(t *testing.T) {
	// span the June/July boundary
	start := time.Date(2025, time.June, 30, 22, 0, 0, 0, time.UTC)
	s := hourly(start, 1, 2, 3, 4)

	months := s.Months()
	require.Len(t, months, 2)
	assert.Equal(t, time.June, months[0].Month)
	assert.Equal(t, 2025, months[0].Year)
	require.Len(t, months[0].Samples, 2)
	assert.Equal(t, time.July, months[1].Month)
	require.Len(t, months[1].Samples, 2)
	assert.InDelta(t, 7.0, months[1].Samples.TotalKWH(), 0.0001)
}

func TestUsageSeriesTotalKWH(t *testing.T) {
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 6.5, hourly(start, 1, 2.5, 3).TotalKWH(), 0.0001)
}

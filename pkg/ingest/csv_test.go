package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattbill/wattbill/pkg/types"
)

func TestReadCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("FullExport", func(t *testing.T) {
		// BOM, disclaimer lines, a blank kWh, and an unparsable value
		csv := "\uFEFFYour energy usage data\n" +
			"Data is provided for informational purposes only, \"as-is\"\n" +
			"Hour,kWh,Temp\n" +
			"2025-06-01 00:00,1.25,78\n" +
			"2025-06-01 01:00,0.75,77\n" +
			"2025-06-01 02:00,,76\n" +
			"2025-06-01 03:00,n/a,76\n" +
			"2025-06-01 04:00,2.00,75\n"

		series, err := ReadCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, series, 3)

		assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local), series[0].Timestamp)
		assert.InDelta(t, 1.25, series[0].KWH, 0.0001)
		require.NotNil(t, series[0].TempF)
		assert.InDelta(t, 78, *series[0].TempF, 0.0001)
		assert.InDelta(t, 2.0, series[2].KWH, 0.0001)

		gaps := series.Gaps()
		require.Len(t, gaps, 1)
		assert.Equal(t, 2, gaps[0].MissingHours)
	})

	t.Run("NoTempColumn", func(t *testing.T) {
		csv := "Hour,kWh\n2025-06-01 00:00,1.5\n"
		series, err := ReadCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Nil(t, series[0].TempF)
	})

	t.Run("SlashDateLayout", func(t *testing.T) {
		csv := "Hour,kWh\n06/01/2025 00:00,1.5\n06/01/2025 01:00,2.5\n"
		series, err := ReadCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, time.Date(2025, time.June, 1, 1, 0, 0, 0, time.Local), series[1].Timestamp)
	})

	t.Run("UnorderedRowsSorted", func(t *testing.T) {
		csv := "Hour,kWh\n" +
			"2025-06-01 02:00,3\n" +
			"2025-06-01 00:00,1\n" +
			"2025-06-01 01:00,2\n"
		series, err := ReadCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, series, 3)
		assert.InDelta(t, 1, series[0].KWH, 0.0001)
		assert.InDelta(t, 3, series[2].KWH, 0.0001)
	})

	t.Run("DuplicateTimestamp", func(t *testing.T) {
		csv := "Hour,kWh\n" +
			"2025-06-01 00:00,1\n" +
			"2025-06-01 00:00,2\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInvalidUsage)
	})

	t.Run("NegativeEnergy", func(t *testing.T) {
		csv := "Hour,kWh\n2025-06-01 00:00,-1\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInvalidUsage)
	})

	t.Run("BadTimestamp", func(t *testing.T) {
		csv := "Hour,kWh\nyesterday,1\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInvalidUsage)
	})

	t.Run("MissingKWHColumn", func(t *testing.T) {
		csv := "Hour,Usage\n2025-06-01 00:00,1\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInvalidUsage)
	})

	t.Run("NoHeader", func(t *testing.T) {
		csv := "2025-06-01 00:00,1\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInvalidUsage)
	})

	t.Run("NoUsableRows", func(t *testing.T) {
		csv := "Hour,kWh\n2025-06-01 00:00,\n"
		_, err := ReadCSV(ctx, strings.NewReader(csv))
		assert.ErrorIs(t, err, types.ErrInsufficientData)
	})
}

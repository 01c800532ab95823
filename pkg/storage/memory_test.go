package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattbill/wattbill/pkg/types"
)

func sampleDataset(id string, uploaded time.Time) types.Dataset {
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return types.Dataset{
		ID:         id,
		Name:       id + ".csv",
		UploadedAt: uploaded,
		Samples: types.UsageSeries{
			{Timestamp: base, KWH: 1.5},
			{Timestamp: base.Add(time.Hour), KWH: 2.5},
		},
	}
}

func TestMemoryProvider(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryProvider()
	defer m.Close()

	t.Run("Datasets", func(t *testing.T) {
		older := sampleDataset("older", time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
		newer := sampleDataset("newer", time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, m.PutDataset(ctx, older))
		require.NoError(t, m.PutDataset(ctx, newer))

		got, err := m.GetDataset(ctx, "older")
		require.NoError(t, err)
		assert.Equal(t, older.Name, got.Name)
		assert.Len(t, got.Samples, 2)

		infos, err := m.ListDatasets(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "newer", infos[0].ID)
		assert.Equal(t, 2, infos[0].Hours)
		assert.InDelta(t, 4.0, infos[0].TotalKWH, 0.0001)
	})

	t.Run("DatasetNotFound", func(t *testing.T) {
		_, err := m.GetDataset(ctx, "missing")
		assert.ErrorIs(t, err, ErrDatasetNotFound)
	})

	t.Run("EmptyDatasetID", func(t *testing.T) {
		err := m.PutDataset(ctx, types.Dataset{})
		assert.ErrorContains(t, err, "dataset ID cannot be empty")
	})

	t.Run("Reports", func(t *testing.T) {
		first := types.SavedReport{
			ID:        "r1",
			DatasetID: "older",
			CreatedAt: time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC),
		}
		second := types.SavedReport{
			ID:        "r2",
			DatasetID: "newer",
			CreatedAt: time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, m.SaveReport(ctx, second))
		require.NoError(t, m.SaveReport(ctx, first))

		all, err := m.ListReports(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "r1", all[0].ID)

		filtered, err := m.ListReports(ctx, "newer")
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, "r2", filtered[0].ID)
	})

	t.Run("ScenarioDefaults", func(t *testing.T) {
		_, ok, err := m.GetScenarioDefaults(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		sc := types.LoadShiftScenario{
			PeakReductionPct: 30,
			EnergyShiftPct:   25,
		}
		require.NoError(t, m.SetScenarioDefaults(ctx, sc))

		got, ok, err := m.GetScenarioDefaults(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, sc.PeakReductionPct, got.PeakReductionPct)
		assert.Equal(t, sc.EnergyShiftPct, got.EnergyShiftPct)
	})
}

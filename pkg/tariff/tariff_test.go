package tariff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattbill/wattbill/pkg/types"
)

func TestCatalogValid(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)
	for _, p := range plans {
		t.Run(string(p.ID), func(t *testing.T) {
			assert.NoError(t, p.Validate())
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.CalibrationVersion)
			assert.Greater(t, p.BasicDailyCharge, 0.0)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		p, err := Lookup(types.PlanTOURD)
		require.NoError(t, err)
		assert.Equal(t, types.PlanTOURD, p.ID)
		assert.True(t, p.HasDemandCharge())
		assert.True(t, p.HasPeakWindow())
		assert.False(t, p.Tiered())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Lookup(types.PlanID("flat_rate"))
		assert.ErrorIs(t, err, types.ErrConfiguration)
	})
}

func TestPlanCapabilities(t *testing.T) {
	trad, err := Lookup(types.PlanTraditional)
	require.NoError(t, err)
	assert.True(t, trad.Tiered())
	assert.False(t, trad.HasDemandCharge())
	assert.False(t, trad.HasPeakWindow())

	reo, err := Lookup(types.PlanTOUREO)
	require.NoError(t, err)
	assert.False(t, reo.HasDemandCharge())
	assert.True(t, reo.HasPeakWindow())
}

func TestPlanValidate(t *testing.T) {
	base := Plan{
		ID:                "test",
		BasicDailyCharge:  0.5,
		BasicUpliftFactor: 1,
		SubtotalFeeFactor: 1,
	}

	t.Run("NeitherPricingMode", func(t *testing.T) {
		assert.ErrorIs(t, base.Validate(), types.ErrConfiguration)
	})

	t.Run("BothPricingModes", func(t *testing.T) {
		p := base
		p.Tiers = &TierSchedule{WinterRatePerKWH: 0.1, SummerTiers: []Tier{{RatePerKWH: 0.1}}}
		p.TOU = &TOURates{OnPeakPerKWH: 0.2, OffPeakPerKWH: 0.05}
		assert.ErrorIs(t, p.Validate(), types.ErrConfiguration)
	})

	t.Run("BoundedLastTier", func(t *testing.T) {
		p := base
		p.Tiers = &TierSchedule{
			SummerTiers: []Tier{
				{UpperKWH: 500, RatePerKWH: 0.1},
				{UpperKWH: 1000, RatePerKWH: 0.2},
			},
		}
		assert.ErrorIs(t, p.Validate(), types.ErrConfiguration)
	})

	t.Run("NonIncreasingTiers", func(t *testing.T) {
		p := base
		p.Tiers = &TierSchedule{
			SummerTiers: []Tier{
				{UpperKWH: 500, RatePerKWH: 0.1},
				{UpperKWH: 400, RatePerKWH: 0.2},
				{RatePerKWH: 0.3},
			},
		}
		assert.ErrorIs(t, p.Validate(), types.ErrConfiguration)
	})

	t.Run("FeeFactorBelowOne", func(t *testing.T) {
		p := base
		p.TOU = &TOURates{OnPeakPerKWH: 0.2, OffPeakPerKWH: 0.05}
		p.SubtotalFeeFactor = 0.9
		assert.ErrorIs(t, p.Validate(), types.ErrConfiguration)
	})
}

func TestTierScheduleInSummer(t *testing.T) {
	ts := TierSchedule{SummerMonths: []time.Month{time.June, time.July}}
	assert.True(t, ts.InSummer(time.June))
	assert.False(t, ts.InSummer(time.May))
}

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wattbill/wattbill/pkg/types"
)

func bills(totals map[time.Month]float64) []types.BillResult {
	var out []types.BillResult
	for m := time.January; m <= time.December; m++ {
		if total, ok := totals[m]; ok {
			out = append(out, types.BillResult{Year: 2025, Month: m, Total: total})
		}
	}
	return out
}

func TestBuild(t *testing.T) {
	results := map[string][]types.BillResult{
		"traditional": bills(map[time.Month]float64{time.June: 200, time.July: 220}),
		"tou_rd":      bills(map[time.Month]float64{time.June: 150, time.July: 170}),
		"tou_reo":     bills(map[time.Month]float64{time.June: 180, time.July: 260}),
	}

	c := Build(results, "traditional")

	assert.Equal(t, "traditional", c.Baseline)
	assert.Equal(t, "tou_rd", c.Best)
	require.Len(t, c.Plans, 3)

	// ranked ascending by annual total
	assert.Equal(t, "tou_rd", c.Plans[0].Label)
	assert.InDelta(t, 320, c.Plans[0].AnnualTotal, 0.001)
	assert.InDelta(t, 100, c.Plans[0].SavingsVsBaseline, 0.001)
	assert.InDelta(t, 100.0/420*100, c.Plans[0].SavingsPercent, 0.001)

	assert.Equal(t, "traditional", c.Plans[1].Label)
	assert.InDelta(t, 0, c.Plans[1].SavingsVsBaseline, 0.001)

	assert.Equal(t, "tou_reo", c.Plans[2].Label)
	assert.InDelta(t, 440, c.Plans[2].AnnualTotal, 0.001)
	assert.InDelta(t, -20, c.Plans[2].SavingsVsBaseline, 0.001)

	require.Len(t, c.Monthly, 2)
	assert.Equal(t, time.June, c.Monthly[0].Month)
	assert.InDelta(t, 150, c.Monthly[0].Totals["tou_rd"], 0.001)
	assert.Equal(t, time.July, c.Monthly[1].Month)
}

func TestBuildFallbackBaseline(t *testing.T) {
	results := map[string][]types.BillResult{
		"b": bills(map[time.Month]float64{time.June: 100}),
		"a": bills(map[time.Month]float64{time.June: 120}),
	}

	c := Build(results, "missing")
	assert.Equal(t, "a", c.Baseline)
	assert.Equal(t, "b", c.Best)
}

func TestBuildEmpty(t *testing.T) {
	c := Build(nil, "")
	assert.Empty(t, c.Plans)
	assert.Empty(t, c.Best)
	assert.Empty(t, c.Monthly)
}

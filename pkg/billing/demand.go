package billing

import "github.com/wattbill/wattbill/pkg/types"

// PeakDemandKW returns the maximum single-hour kWh among samples inside
// the on-peak window, as the month's billed demand. Hour-resolution data
// approximates instantaneous demand as that hour's energy draw; true
// demand billing uses sub-hourly interval peaks the utility measures
// separately, so this is a documented approximation, not an exact
// reproduction.
//
// Returns 0 when no sample falls in the window; an off-peak-only month
// is valid and never an error.
func PeakDemandKW(samples types.UsageSeries, window types.PeakWindow) float64 {
	var peak float64
	for _, sample := range samples {
		if !window.Contains(sample.Timestamp) {
			continue
		}
		if sample.KWH > peak {
			peak = sample.KWH
		}
	}
	return peak
}

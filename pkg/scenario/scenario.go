// Package scenario simulates load-shifting behavior by transforming a
// usage series day by day. Transformations are deterministic and
// conserve each day's total energy; the input series is never mutated.
package scenario

import (
	"github.com/wattbill/wattbill/pkg/types"
)

// Simulator applies load-shift scenarios against a fixed on-peak window
// (the window of the plan being evaluated).
type Simulator struct {
	Window types.PeakWindow
}

// NewSimulator returns a Simulator for the given on-peak window.
func NewSimulator(window types.PeakWindow) *Simulator {
	return &Simulator{Window: window}
}

// ApplyShift returns a new series with the scenario applied:
//
//  1. Peak clipping: each day's highest on-peak hour is reduced by
//     PeakReductionPct, the removed energy redistributed to that day's
//     off-peak hours.
//  2. Energy shifting: EnergyShiftPct of each day's remaining on-peak
//     energy is moved to the day's off-peak hours, drawn from every
//     on-peak hour in proportion to its share.
//
// Both steps act per calendar day; no energy crosses a day boundary, and
// a day with no off-peak hours (or no on-peak hours) is left untouched,
// so the series total is conserved. The scenario is validated before any
// work; out-of-range parameters fail with ErrInvalidScenario.
func (s *Simulator) ApplyShift(series types.UsageSeries, sc types.LoadShiftScenario) (types.UsageSeries, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	out := make(types.UsageSeries, len(series))
	copy(out, series)

	for _, day := range dayRanges(out) {
		s.shiftDay(out[day.start:day.end], sc)
	}
	return out, nil
}

type dayRange struct{ start, end int }

// dayRanges splits the (ordered) series into runs sharing a civil date.
func dayRanges(series types.UsageSeries) []dayRange {
	var days []dayRange
	for i := range series {
		y1, m1, d1 := series[i].Timestamp.Date()
		if i > 0 {
			y0, m0, d0 := series[i-1].Timestamp.Date()
			if y0 == y1 && m0 == m1 && d0 == d1 {
				days[len(days)-1].end = i + 1
				continue
			}
		}
		days = append(days, dayRange{start: i, end: i + 1})
	}
	return days
}

func (s *Simulator) shiftDay(day types.UsageSeries, sc types.LoadShiftScenario) {
	var onPeak, offPeak []int
	for i := range day {
		if s.Window.Contains(day[i].Timestamp) {
			onPeak = append(onPeak, i)
		} else {
			offPeak = append(offPeak, i)
		}
	}
	if len(onPeak) == 0 || len(offPeak) == 0 {
		return
	}

	// clip the day's demand peak
	maxIdx := onPeak[0]
	for _, i := range onPeak[1:] {
		if day[i].KWH > day[maxIdx].KWH {
			maxIdx = i
		}
	}
	clipped := day[maxIdx].KWH * sc.PeakReductionPct / 100
	day[maxIdx].KWH -= clipped

	// move a share of the remaining on-peak energy off-peak
	var onPeakKWH float64
	for _, i := range onPeak {
		onPeakKWH += day[i].KWH
	}
	shifted := onPeakKWH * sc.EnergyShiftPct / 100
	if onPeakKWH > 0 {
		for _, i := range onPeak {
			day[i].KWH -= day[i].KWH / onPeakKWH * shifted
		}
	}

	redistribute(day, offPeak, clipped+shifted, sc.Policy())
}

// redistribute spreads moved energy across the day's off-peak hours,
// proportionally to their existing consumption or evenly. Proportional
// falls back to even when the off-peak hours carry no energy to scale.
func redistribute(day types.UsageSeries, offPeak []int, energy float64, policy types.Redistribution) {
	if energy <= 0 || len(offPeak) == 0 {
		return
	}
	var offPeakKWH float64
	for _, i := range offPeak {
		offPeakKWH += day[i].KWH
	}
	if policy == types.RedistributeProportional && offPeakKWH > 1e-9 {
		for _, i := range offPeak {
			day[i].KWH += day[i].KWH / offPeakKWH * energy
		}
		return
	}
	per := energy / float64(len(offPeak))
	for _, i := range offPeak {
		day[i].KWH += per
	}
}

package types

import "fmt"

// Redistribution selects how clipped/shifted energy is spread across a
// day's off-peak hours.
type Redistribution string

const (
	// RedistributeProportional spreads moved energy in proportion to each
	// off-peak hour's existing consumption.
	RedistributeProportional Redistribution = "proportional"

	// RedistributeEven spreads moved energy evenly across off-peak hours.
	RedistributeEven Redistribution = "even"
)

// LoadShiftScenario is a deterministic usage transformation: clip the
// daily on-peak maximum by PeakReductionPct and move EnergyShiftPct of
// daily on-peak energy off-peak, conserving each day's total energy.
type LoadShiftScenario struct {
	// PeakReductionPct is the percent reduction of each day's highest
	// on-peak hour. Valid range [10, 80].
	PeakReductionPct float64 `json:"peakReductionPct"`

	// EnergyShiftPct is the percent of daily on-peak energy moved to
	// off-peak hours. Valid range [5, 60].
	EnergyShiftPct float64 `json:"energyShiftPct"`

	// Redistribution defaults to RedistributeProportional when empty.
	Redistribution Redistribution `json:"redistribution,omitempty"`
}

// Validate rejects out-of-range parameters before any transformation.
func (s LoadShiftScenario) Validate() error {
	if s.PeakReductionPct < 10 || s.PeakReductionPct > 80 {
		return fmt.Errorf("%w: peakReductionPct %.1f outside [10, 80]", ErrInvalidScenario, s.PeakReductionPct)
	}
	if s.EnergyShiftPct < 5 || s.EnergyShiftPct > 60 {
		return fmt.Errorf("%w: energyShiftPct %.1f outside [5, 60]", ErrInvalidScenario, s.EnergyShiftPct)
	}
	switch s.Redistribution {
	case "", RedistributeProportional, RedistributeEven:
	default:
		return fmt.Errorf("%w: unknown redistribution policy %q", ErrInvalidScenario, s.Redistribution)
	}
	return nil
}

// Policy returns the effective redistribution policy.
func (s LoadShiftScenario) Policy() Redistribution {
	if s.Redistribution == "" {
		return RedistributeProportional
	}
	return s.Redistribution
}

package types

import "time"

// PlanID identifies one of the modeled rate plans.
type PlanID string

const (
	// PlanTraditional is the traditional residential rate: seasonal, with
	// tiered marginal pricing in summer months.
	PlanTraditional PlanID = "traditional"

	// PlanTOURD is time-of-use with a demand charge.
	PlanTOURD PlanID = "tou_rd"

	// PlanTOUREO is time-of-use, energy only (no demand charge).
	PlanTOUREO PlanID = "tou_reo"
)

// PeakWindow defines which hours count as on-peak: a clock-hour range
// (inclusive start, exclusive end) on listed weekdays during listed
// months. Every hour outside the predicate, on any day, is off-peak.
type PeakWindow struct {
	HourStart int            `json:"hourStart"`
	HourEnd   int            `json:"hourEnd"`
	Weekdays  []time.Weekday `json:"weekdays"`
	Months    []time.Month   `json:"months"`

	// SkipHolidays treats Independence Day and Labor Day as off-peak, per
	// the tariff's holiday exception.
	SkipHolidays bool `json:"skipHolidays"`
}

// Contains reports whether t falls inside the on-peak window. The time
// is evaluated as-is; series timestamps are local civil time already.
func (w PeakWindow) Contains(t time.Time) bool {
	if h := t.Hour(); h < w.HourStart || h >= w.HourEnd {
		return false
	}
	if len(w.Months) > 0 {
		var found bool
		for _, m := range w.Months {
			if m == t.Month() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(w.Weekdays) > 0 {
		var found bool
		dow := t.Weekday()
		for _, d := range w.Weekdays {
			if d == dow {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if w.SkipHolidays && isSummerHoliday(t) {
		return false
	}
	return true
}

// isSummerHoliday reports Independence Day (July 4) and Labor Day (the
// first Monday in September), the two holidays the tariff bills off-peak.
func isSummerHoliday(t time.Time) bool {
	switch t.Month() {
	case time.July:
		return t.Day() == 4
	case time.September:
		if t.Weekday() != time.Monday {
			return false
		}
		return t.Day() <= 7
	}
	return false
}

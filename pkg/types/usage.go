package types

import (
	"fmt"
	"time"
)

// UsageSample is one hour of metered consumption. Timestamps are local
// civil time at hour resolution; no timezone conversion is performed on
// them anywhere in the core.
type UsageSample struct {
	Timestamp time.Time `json:"timestamp"`
	KWH       float64   `json:"kwh"`

	// TempF is the outdoor temperature reported alongside the reading, when
	// the utility export includes one.
	TempF *float64 `json:"tempF,omitempty"`
}

// UsageSeries is an ordered sequence of hourly samples covering one or
// more calendar months. A series is treated as immutable once built:
// every derivation (month slices, shifted series) allocates a new one.
type UsageSeries []UsageSample

// Validate checks the series invariants: non-empty, energy non-negative,
// timestamps on hour boundaries and strictly increasing. Gaps are legal;
// they are reported by Gaps, not rejected here.
func (s UsageSeries) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	var prev time.Time
	for i, sample := range s {
		if sample.KWH < 0 {
			return fmt.Errorf("%w: negative energy %.4f at %s", ErrInvalidUsage, sample.KWH, sample.Timestamp)
		}
		if sample.Timestamp.Minute() != 0 || sample.Timestamp.Second() != 0 || sample.Timestamp.Nanosecond() != 0 {
			return fmt.Errorf("%w: timestamp %s is not on an hour boundary", ErrInvalidUsage, sample.Timestamp)
		}
		if i > 0 && !sample.Timestamp.After(prev) {
			return fmt.Errorf("%w: timestamps not strictly increasing at %s", ErrInvalidUsage, sample.Timestamp)
		}
		prev = sample.Timestamp
	}
	return nil
}

// TotalKWH sums the energy over the whole series.
func (s UsageSeries) TotalKWH() float64 {
	var total float64
	for _, sample := range s {
		total += sample.KWH
	}
	return total
}

// Gap is a run of missing hours between two recorded samples.
type Gap struct {
	After        time.Time `json:"after"`
	Before       time.Time `json:"before"`
	MissingHours int       `json:"missingHours"`
}

// Gaps reports every run of missing hours in the series. Missing hours
// are surfaced to the caller rather than interpolated.
func (s UsageSeries) Gaps() []Gap {
	var gaps []Gap
	for i := 1; i < len(s); i++ {
		expected := s[i-1].Timestamp.Add(time.Hour)
		if s[i].Timestamp.After(expected) {
			missing := int(s[i].Timestamp.Sub(expected) / time.Hour)
			gaps = append(gaps, Gap{
				After:        s[i-1].Timestamp,
				Before:       s[i].Timestamp,
				MissingHours: missing,
			})
		}
	}
	return gaps
}

// MonthSlice is the portion of a series falling in one calendar month.
type MonthSlice struct {
	Year    int
	Month   time.Month
	Samples UsageSeries
}

// Months partitions the series by calendar month, preserving order. The
// returned slices share no backing array with the input.
func (s UsageSeries) Months() []MonthSlice {
	var months []MonthSlice
	for _, sample := range s {
		y, m := sample.Timestamp.Year(), sample.Timestamp.Month()
		if n := len(months); n == 0 || months[n-1].Year != y || months[n-1].Month != m {
			months = append(months, MonthSlice{Year: y, Month: m})
		}
		last := &months[len(months)-1]
		last.Samples = append(last.Samples, sample)
	}
	return months
}

// Package tariff is the versioned rate catalog for the three modeled
// plans. Rates are calibrated constants: the published tariff numbers
// plus correction factors tuned against observed bills. Updating a rate
// means editing the catalog, never the billing logic.
package tariff

import (
	"fmt"
	"time"

	"github.com/wattbill/wattbill/pkg/types"
)

// Tier is one band of a marginal tiered rate. UpperKWH 0 means the band
// is unbounded; usage above the last bounded band is charged at the last
// band's rate.
type Tier struct {
	UpperKWH   float64 `json:"upperKWH,omitempty"`
	RatePerKWH float64 `json:"ratePerKWH"`
}

// TierSchedule is seasonal tiered pricing: marginal tiers during the
// listed summer months, a flat rate the rest of the year.
type TierSchedule struct {
	SummerMonths     []time.Month `json:"summerMonths"`
	SummerTiers      []Tier       `json:"summerTiers"`
	WinterRatePerKWH float64      `json:"winterRatePerKWH"`
}

// InSummer reports whether the month is billed on the summer tiers.
func (ts TierSchedule) InSummer(m time.Month) bool {
	for _, sm := range ts.SummerMonths {
		if sm == m {
			return true
		}
	}
	return false
}

// TOURates is flat per-period pricing for time-of-use plans.
type TOURates struct {
	OnPeakPerKWH  float64 `json:"onPeakPerKWH"`
	OffPeakPerKWH float64 `json:"offPeakPerKWH"`
}

// Plan is the immutable configuration for one rate plan. Exactly one of
// Tiers or TOU is set.
type Plan struct {
	ID   types.PlanID `json:"id"`
	Name string       `json:"name"`

	// CalibrationVersion records when the hidden-fee factors were last
	// tuned against real bills.
	CalibrationVersion string `json:"calibrationVersion"`

	// BasicDailyCharge is the published fixed service charge per day.
	BasicDailyCharge float64 `json:"basicDailyCharge"`

	// BasicUpliftFactor is the calibrated multiplier on the basic charge
	// covering fees the published tariff omits. 1 means none.
	BasicUpliftFactor float64 `json:"basicUpliftFactor"`

	Tiers *TierSchedule `json:"tiers,omitempty"`
	TOU   *TOURates     `json:"tou,omitempty"`

	PeakWindow types.PeakWindow `json:"peakWindow"`

	// DemandRatePerKW is the monthly charge per kW of peak demand. 0 means
	// the plan has no demand charge.
	DemandRatePerKW float64 `json:"demandRatePerKW"`

	// SubtotalFeeFactor is the calibrated surcharge multiplier applied to
	// the whole subtotal. 1 means none.
	SubtotalFeeFactor float64 `json:"subtotalFeeFactor"`
}

// HasDemandCharge reports whether the plan bills peak demand.
func (p Plan) HasDemandCharge() bool { return p.DemandRatePerKW > 0 }

// HasPeakWindow reports whether on-peak classification matters for the
// plan's energy pricing.
func (p Plan) HasPeakWindow() bool { return p.TOU != nil }

// Tiered reports whether energy is priced with marginal tiers.
func (p Plan) Tiered() bool { return p.Tiers != nil }

// Validate checks the catalog invariants: exactly one pricing mode and
// strictly increasing tier bounds.
func (p Plan) Validate() error {
	if (p.Tiers == nil) == (p.TOU == nil) {
		return fmt.Errorf("%w: plan %s must have exactly one of tiered or TOU pricing", types.ErrConfiguration, p.ID)
	}
	if p.Tiers != nil {
		var prev float64
		for i, t := range p.Tiers.SummerTiers {
			last := i == len(p.Tiers.SummerTiers)-1
			if last && t.UpperKWH != 0 {
				return fmt.Errorf("%w: plan %s last tier must be unbounded", types.ErrConfiguration, p.ID)
			}
			if !last && t.UpperKWH <= prev {
				return fmt.Errorf("%w: plan %s tier bounds not strictly increasing", types.ErrConfiguration, p.ID)
			}
			prev = t.UpperKWH
		}
	}
	if p.BasicUpliftFactor < 1 || p.SubtotalFeeFactor < 1 {
		return fmt.Errorf("%w: plan %s fee factors must be >= 1", types.ErrConfiguration, p.ID)
	}
	return nil
}

// Lookup returns the catalog entry for the given plan.
func Lookup(id types.PlanID) (Plan, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("%w: unknown plan %q", types.ErrConfiguration, id)
}

// Plans returns the full catalog in a fixed order.
func Plans() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

package types

import "time"

// TierCharge is one band of a tiered energy charge.
type TierCharge struct {
	UpperKWH   float64 `json:"upperKWH,omitempty"` // 0 means unbounded
	RatePerKWH float64 `json:"ratePerKWH"`
	KWH        float64 `json:"kwh"`
	Charge     float64 `json:"charge"`
}

// BillResult is the estimated bill for one plan over one calendar month.
// Invariant: Total = BasicCharge + EnergyCharge + DemandCharge +
// HiddenFeeAdjustment, every component non-negative.
type BillResult struct {
	Plan        PlanID     `json:"plan"`
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	DaysInMonth int        `json:"daysInMonth"`

	// BasicCharge is the published fixed service charge for the month.
	BasicCharge float64 `json:"basicCharge"`

	// EnergyCharge is the total energy charge. For tiered plans the
	// per-band breakdown is in Tiers; for TOU plans the per-period split is
	// in PeakEnergyCharge/OffPeakEnergyCharge.
	EnergyCharge        float64      `json:"energyCharge"`
	Tiers               []TierCharge `json:"tiers,omitempty"`
	PeakEnergyCharge    float64      `json:"peakEnergyCharge,omitempty"`
	OffPeakEnergyCharge float64      `json:"offPeakEnergyCharge,omitempty"`

	// DemandCharge is zero for every plan without a demand rate.
	DemandCharge float64 `json:"demandCharge"`

	Subtotal float64 `json:"subtotal"`

	// HiddenFeeAdjustment is the calibrated correction covering fees the
	// published tariff omits.
	HiddenFeeAdjustment float64 `json:"hiddenFeeAdjustment"`

	Total float64 `json:"total"`

	PeakKWH      float64 `json:"peakKWH"`
	OffPeakKWH   float64 `json:"offPeakKWH"`
	TotalKWH     float64 `json:"totalKWH"`
	PeakDemandKW float64 `json:"peakDemandKW"`
}

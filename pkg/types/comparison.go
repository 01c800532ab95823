package types

import "time"

// PlanTotal is one labeled result in a comparison, ranked by AnnualTotal.
type PlanTotal struct {
	Label       string  `json:"label"`
	AnnualTotal float64 `json:"annualTotal"`

	// SavingsVsBaseline is baseline total minus this plan's total; positive
	// means this plan is cheaper than the baseline.
	SavingsVsBaseline float64 `json:"savingsVsBaseline"`
	SavingsPercent    float64 `json:"savingsPercent"`
}

// MonthlyCost is one month's cost under every compared label.
type MonthlyCost struct {
	Year   int                `json:"year"`
	Month  time.Month         `json:"month"`
	Totals map[string]float64 `json:"totals"`
}

// PlanComparison aggregates BillResults across plans and scenarios into
// a ranked summary. Pure data; formatting belongs to the caller.
type PlanComparison struct {
	Baseline string      `json:"baseline"`
	Plans    []PlanTotal `json:"plans"` // ascending by AnnualTotal

	// Best is the label of the cheapest plan.
	Best string `json:"best"`

	Monthly []MonthlyCost `json:"monthly"`
}

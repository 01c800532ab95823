// Package billing turns one calendar month of hourly usage into an
// estimated bill under a catalog plan. Every function here is a pure
// function of its inputs: no state, no I/O, identical inputs produce
// bit-identical results, so callers may fan out across plans and months
// with no synchronization.
package billing

import (
	"fmt"
	"time"

	"github.com/wattbill/wattbill/pkg/tariff"
	"github.com/wattbill/wattbill/pkg/types"
)

// ComputeBill estimates the bill for exactly one calendar month of
// samples under the given plan. Callers partition multi-month series
// with UsageSeries.Months before invoking.
func ComputeBill(month types.UsageSeries, plan tariff.Plan) (types.BillResult, error) {
	if err := plan.Validate(); err != nil {
		return types.BillResult{}, err
	}
	if len(month) == 0 {
		return types.BillResult{}, fmt.Errorf("%w: no samples for month", types.ErrInsufficientData)
	}

	year, m := month[0].Timestamp.Year(), month[0].Timestamp.Month()
	for _, sample := range month {
		if sample.KWH < 0 {
			return types.BillResult{}, fmt.Errorf("%w: negative energy %.4f at %s", types.ErrInvalidUsage, sample.KWH, sample.Timestamp)
		}
		if sample.Timestamp.Year() != year || sample.Timestamp.Month() != m {
			return types.BillResult{}, fmt.Errorf("%w: sample at %s outside month %d-%02d", types.ErrInvalidUsage, sample.Timestamp, year, m)
		}
	}

	days := daysInMonth(year, m)
	bill := types.BillResult{
		Plan:        plan.ID,
		Year:        year,
		Month:       m,
		DaysInMonth: days,
		BasicCharge: plan.BasicDailyCharge * float64(days),
	}

	switch {
	case plan.Tiered():
		total := month.TotalKWH()
		bill.TotalKWH = total
		bill.OffPeakKWH = total
		if plan.Tiers.InSummer(m) {
			bill.Tiers = tieredCharge(total, plan.Tiers.SummerTiers)
			for _, t := range bill.Tiers {
				bill.EnergyCharge += t.Charge
			}
		} else {
			bill.EnergyCharge = total * plan.Tiers.WinterRatePerKWH
		}
	case plan.HasPeakWindow():
		for _, sample := range month {
			if plan.PeakWindow.Contains(sample.Timestamp) {
				bill.PeakKWH += sample.KWH
			} else {
				bill.OffPeakKWH += sample.KWH
			}
		}
		bill.TotalKWH = bill.PeakKWH + bill.OffPeakKWH
		bill.PeakEnergyCharge = bill.PeakKWH * plan.TOU.OnPeakPerKWH
		bill.OffPeakEnergyCharge = bill.OffPeakKWH * plan.TOU.OffPeakPerKWH
		bill.EnergyCharge = bill.PeakEnergyCharge + bill.OffPeakEnergyCharge
	}

	if plan.HasDemandCharge() {
		bill.PeakDemandKW = PeakDemandKW(month, plan.PeakWindow)
		bill.DemandCharge = bill.PeakDemandKW * plan.DemandRatePerKW
	}

	bill.Subtotal = bill.BasicCharge + bill.EnergyCharge + bill.DemandCharge
	bill.HiddenFeeAdjustment = bill.BasicCharge*(plan.BasicUpliftFactor-1) +
		bill.Subtotal*(plan.SubtotalFeeFactor-1)
	bill.Total = bill.Subtotal + bill.HiddenFeeAdjustment

	return bill, nil
}

// tieredCharge fills bands in ascending order at each band's marginal
// rate. The last band is unbounded.
func tieredCharge(totalKWH float64, tiers []tariff.Tier) []types.TierCharge {
	charges := make([]types.TierCharge, 0, len(tiers))
	var lower float64
	remaining := totalKWH
	for i, tier := range tiers {
		var inBand float64
		if i == len(tiers)-1 || tier.UpperKWH == 0 {
			inBand = remaining
		} else {
			inBand = min(remaining, tier.UpperKWH-lower)
			lower = tier.UpperKWH
		}
		if inBand < 0 {
			inBand = 0
		}
		remaining -= inBand
		charges = append(charges, types.TierCharge{
			UpperKWH:   tier.UpperKWH,
			RatePerKWH: tier.RatePerKWH,
			KWH:        inBand,
			Charge:     inBand * tier.RatePerKWH,
		})
	}
	return charges
}

func daysInMonth(year int, m time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Package report aggregates per-month bill results across plans and
// scenarios into a ranked comparison. Pure arithmetic and sorting; the
// presentation layer owns all formatting.
package report

import (
	"sort"
	"time"

	"github.com/wattbill/wattbill/pkg/types"
)

// Build collapses labeled monthly bill runs into a PlanComparison.
// Savings are computed against the baseline label; when baseline is
// empty or unknown, the first label in sorted order is used.
func Build(results map[string][]types.BillResult, baseline string) types.PlanComparison {
	labels := make([]string, 0, len(results))
	for label := range results {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if _, ok := results[baseline]; !ok && len(labels) > 0 {
		baseline = labels[0]
	}

	var baselineTotal float64
	for _, b := range results[baseline] {
		baselineTotal += b.Total
	}

	comparison := types.PlanComparison{Baseline: baseline}
	for _, label := range labels {
		var total float64
		for _, b := range results[label] {
			total += b.Total
		}
		pt := types.PlanTotal{
			Label:             label,
			AnnualTotal:       total,
			SavingsVsBaseline: baselineTotal - total,
		}
		if baselineTotal > 0 {
			pt.SavingsPercent = (baselineTotal - total) / baselineTotal * 100
		}
		comparison.Plans = append(comparison.Plans, pt)
	}

	sort.SliceStable(comparison.Plans, func(i, j int) bool {
		return comparison.Plans[i].AnnualTotal < comparison.Plans[j].AnnualTotal
	})
	if len(comparison.Plans) > 0 {
		comparison.Best = comparison.Plans[0].Label
	}

	comparison.Monthly = monthlyTrend(results, labels)
	return comparison
}

// monthlyTrend lines up every label's total per (year, month), in
// chronological order.
func monthlyTrend(results map[string][]types.BillResult, labels []string) []types.MonthlyCost {
	type ym struct {
		year  int
		month int
	}
	byMonth := make(map[ym]map[string]float64)
	for _, label := range labels {
		for _, b := range results[label] {
			k := ym{b.Year, int(b.Month)}
			if byMonth[k] == nil {
				byMonth[k] = make(map[string]float64)
			}
			byMonth[k][label] = b.Total
		}
	}

	keys := make([]ym, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	trend := make([]types.MonthlyCost, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, types.MonthlyCost{
			Year:   k.year,
			Month:  time.Month(k.month),
			Totals: byMonth[k],
		})
	}
	return trend
}

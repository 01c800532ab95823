// Package analysis orchestrates the billing core: it partitions a usage
// series by calendar month, prices every month under all three plans,
// applies an optional load-shift scenario, and assembles the comparison
// the presentation layer renders.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wattbill/wattbill/pkg/billing"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/report"
	"github.com/wattbill/wattbill/pkg/scenario"
	"github.com/wattbill/wattbill/pkg/tariff"
	"github.com/wattbill/wattbill/pkg/types"
)

// Labels used in comparisons and saved reports.
const (
	LabelTraditional = string(types.PlanTraditional)
	LabelTOURD       = string(types.PlanTOURD)
	LabelTOUREO      = string(types.PlanTOUREO)
	LabelShifted     = "tou_rd_shifted"
)

// MonthRow is one month of the analysis, all plans side by side.
type MonthRow struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	TotalKWH   float64 `json:"totalKWH"`
	PeakKWH    float64 `json:"peakKWH"`
	OffPeakKWH float64 `json:"offPeakKWH"`

	Traditional types.BillResult `json:"traditional"`
	TOURD       types.BillResult `json:"touRD"`
	TOUREO      types.BillResult `json:"touREO"`

	// Shifted is the TOU-RD bill under the scenario, when one was given.
	Shifted        *types.BillResult `json:"shifted,omitempty"`
	ShiftedSavings float64           `json:"shiftedSavings,omitempty"`
}

// Summary is the annual rollup across all analyzed months.
type Summary struct {
	AnnualTraditional float64 `json:"annualTraditional"`
	AnnualTOURD       float64 `json:"annualTOURD"`
	AnnualTOUREO      float64 `json:"annualTOUREO"`
	AnnualShifted     float64 `json:"annualShifted,omitempty"`

	TOURDSavings  float64 `json:"touRDSavings"`
	TOUREOSavings float64 `json:"touREOSavings"`
	ShiftSavings  float64 `json:"shiftSavings,omitempty"`

	TotalKWH           float64 `json:"totalKWH"`
	TotalPeakKWH       float64 `json:"totalPeakKWH"`
	TotalDemandCharges float64 `json:"totalDemandCharges"`
	EnergyShiftedKWH   float64 `json:"energyShiftedKWH,omitempty"`
}

// Result is the full analysis output.
type Result struct {
	Monthly       []MonthRow           `json:"monthly"`
	Summary       Summary              `json:"summary"`
	Comparison    types.PlanComparison `json:"comparison"`
	SkippedMonths []string             `json:"skippedMonths,omitempty"`
	Gaps          []types.Gap          `json:"gaps,omitempty"`
}

// Run analyzes the series under all three catalog plans and, when sc is
// non-nil, under the load-shift scenario applied to TOU-RD. Months with
// no usable data are skipped and reported, not fatal; scenario and
// configuration errors fail the whole run.
func Run(ctx context.Context, series types.UsageSeries, sc *types.LoadShiftScenario) (Result, error) {
	if err := series.Validate(); err != nil {
		return Result{}, err
	}

	plans := make(map[types.PlanID]tariff.Plan, 3)
	for _, id := range []types.PlanID{types.PlanTraditional, types.PlanTOURD, types.PlanTOUREO} {
		p, err := tariff.Lookup(id)
		if err != nil {
			return Result{}, err
		}
		plans[id] = p
	}

	var shifted types.UsageSeries
	if sc != nil {
		sim := scenario.NewSimulator(plans[types.PlanTOURD].PeakWindow)
		var err error
		shifted, err = sim.ApplyShift(series, *sc)
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{Gaps: series.Gaps()}
	months := series.Months()
	var shiftedMonths []types.MonthSlice
	if shifted != nil {
		shiftedMonths = shifted.Months()
	}

	labeled := map[string][]types.BillResult{
		LabelTraditional: nil,
		LabelTOURD:       nil,
		LabelTOUREO:      nil,
	}
	if sc != nil {
		labeled[LabelShifted] = nil
	}

	for i, month := range months {
		row, err := priceMonth(month, plans)
		if err != nil {
			if errors.Is(err, types.ErrInsufficientData) {
				name := fmt.Sprintf("%d-%02d", month.Year, month.Month)
				log.Ctx(ctx).WarnContext(ctx, "skipping month with insufficient data", slog.String("month", name))
				res.SkippedMonths = append(res.SkippedMonths, name)
				continue
			}
			return Result{}, err
		}

		if sc != nil {
			sb, err := billing.ComputeBill(shiftedMonths[i].Samples, plans[types.PlanTOURD])
			if err != nil {
				return Result{}, err
			}
			row.Shifted = &sb
			row.ShiftedSavings = row.TOURD.Total - sb.Total
			labeled[LabelShifted] = append(labeled[LabelShifted], sb)
		}

		labeled[LabelTraditional] = append(labeled[LabelTraditional], row.Traditional)
		labeled[LabelTOURD] = append(labeled[LabelTOURD], row.TOURD)
		labeled[LabelTOUREO] = append(labeled[LabelTOUREO], row.TOUREO)
		res.Monthly = append(res.Monthly, row)
	}

	if len(res.Monthly) == 0 {
		return Result{}, fmt.Errorf("%w: no analyzable months", types.ErrInsufficientData)
	}

	res.Summary = summarize(res.Monthly, sc != nil)
	res.Comparison = report.Build(labeled, LabelTraditional)
	return res, nil
}

// priceMonth computes the three plan bills for one month concurrently.
// ComputeBill is pure, so the fan-out needs no synchronization beyond
// the WaitGroup.
func priceMonth(month types.MonthSlice, plans map[types.PlanID]tariff.Plan) (MonthRow, error) {
	row := MonthRow{Year: month.Year, Month: month.Month}

	bills := make(map[types.PlanID]types.BillResult, len(plans))
	errs := make(map[types.PlanID]error, len(plans))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for id, plan := range plans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := billing.ComputeBill(month.Samples, plan)
			mu.Lock()
			bills[id], errs[id] = b, err
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return MonthRow{}, err
		}
	}

	row.Traditional = bills[types.PlanTraditional]
	row.TOURD = bills[types.PlanTOURD]
	row.TOUREO = bills[types.PlanTOUREO]
	row.TotalKWH = row.Traditional.TotalKWH
	row.PeakKWH = row.TOURD.PeakKWH
	row.OffPeakKWH = row.TOURD.OffPeakKWH
	return row, nil
}

func summarize(months []MonthRow, withScenario bool) Summary {
	var s Summary
	for _, m := range months {
		s.AnnualTraditional += m.Traditional.Total
		s.AnnualTOURD += m.TOURD.Total
		s.AnnualTOUREO += m.TOUREO.Total
		s.TotalKWH += m.TotalKWH
		s.TotalPeakKWH += m.PeakKWH
		s.TotalDemandCharges += m.TOURD.DemandCharge
		if m.Shifted != nil {
			s.AnnualShifted += m.Shifted.Total
			// energy moved off-peak this month
			s.EnergyShiftedKWH += m.PeakKWH - m.Shifted.PeakKWH
		}
	}
	s.TOURDSavings = s.AnnualTraditional - s.AnnualTOURD
	s.TOUREOSavings = s.AnnualTraditional - s.AnnualTOUREO
	if withScenario {
		s.ShiftSavings = s.AnnualTOURD - s.AnnualShifted
	}
	return s
}

// billcheck analyzes a usage CSV offline and prints the plan comparison.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/levenlabs/go-lflag"
	"github.com/wattbill/wattbill/pkg/analysis"
	"github.com/wattbill/wattbill/pkg/ingest"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/types"
)

func main() {
	csvPath := lflag.RequiredString("csv", "Path to the hourly usage CSV export")
	peakReduction := lflag.String("peak-reduction", "", "Percent reduction of each day's highest on-peak hour (empty disables the scenario)")
	energyShift := lflag.String("energy-shift", "", "Percent of daily on-peak energy moved off-peak")
	redistribution := lflag.String("redistribution", "", "Redistribution policy: proportional or even")
	lflag.Configure()

	level, err := log.LevelFromLlog()
	if err != nil {
		panic(err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	ctx := context.Background()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to open csv", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	series, err := ingest.ReadCSV(ctx, f)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to read csv", "error", err)
		os.Exit(1)
	}

	var sc *types.LoadShiftScenario
	if *peakReduction != "" || *energyShift != "" {
		peak, err := strconv.ParseFloat(*peakReduction, 64)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "invalid peak-reduction", "error", err)
			os.Exit(1)
		}
		shift, err := strconv.ParseFloat(*energyShift, 64)
		if err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "invalid energy-shift", "error", err)
			os.Exit(1)
		}
		sc = &types.LoadShiftScenario{
			PeakReductionPct: peak,
			EnergyShiftPct:   shift,
			Redistribution:   types.Redistribution(*redistribution),
		}
	}

	res, err := analysis.Run(ctx, series, sc)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "analysis failed", "error", err)
		os.Exit(1)
	}

	printResult(res)
}

func printResult(res analysis.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "Month\tkWh\tTraditional\tTOU-RD\tTOU-REO\tShifted TOU-RD")
	for _, m := range res.Monthly {
		shifted := "-"
		if m.Shifted != nil {
			shifted = fmt.Sprintf("$%.2f", m.Shifted.Total)
		}
		fmt.Fprintf(w, "%d-%02d\t%.0f\t$%.2f\t$%.2f\t$%.2f\t%s\n",
			m.Year, m.Month, m.TotalKWH,
			m.Traditional.Total, m.TOURD.Total, m.TOUREO.Total, shifted)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Plan\tAnnual\tSavings\tSavings %")
	for _, p := range res.Comparison.Plans {
		fmt.Fprintf(w, "%s\t$%.2f\t$%.2f\t%.1f%%\n",
			p.Label, p.AnnualTotal, p.SavingsVsBaseline, p.SavingsPercent)
	}
	fmt.Fprintf(w, "\nBest plan: %s\n", res.Comparison.Best)
	if res.Summary.ShiftSavings != 0 {
		fmt.Fprintf(w, "Load shifting saves $%.2f/yr on TOU-RD (%.0f kWh moved off-peak)\n",
			res.Summary.ShiftSavings, res.Summary.EnergyShiftedKWH)
	}
	for _, m := range res.SkippedMonths {
		fmt.Fprintf(w, "Skipped %s: insufficient data\n", m)
	}
	w.Flush()
}

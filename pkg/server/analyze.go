package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wattbill/wattbill/pkg/analysis"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/storage"
	"github.com/wattbill/wattbill/pkg/types"
)

// handleAnalyze runs the plan comparison for a stored dataset, with an
// optional load-shift scenario from query parameters.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	datasetID := r.URL.Query().Get("dataset")
	if datasetID == "" {
		writeJSONError(w, "missing dataset parameter", http.StatusBadRequest)
		return
	}

	sc, err := scenarioFromQuery(r)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds, err := s.storage.GetDataset(ctx, datasetID)
	if err != nil {
		if errors.Is(err, storage.ErrDatasetNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to get dataset", slog.Any("error", err))
		writeJSONError(w, "failed to get dataset", http.StatusInternalServerError)
		return
	}

	res, err := analysis.Run(ctx, ds.Samples, sc)
	if err != nil {
		writeAnalysisError(ctx, w, err)
		return
	}
	writeJSON(w, res)
}

// scenarioFromQuery builds the optional scenario. Both percentages are
// required to form one; a lone parameter is rejected so a typo never
// silently drops half the scenario.
func scenarioFromQuery(r *http.Request) (*types.LoadShiftScenario, error) {
	q := r.URL.Query()
	peakStr := q.Get("peakReduction")
	shiftStr := q.Get("energyShift")
	if peakStr == "" && shiftStr == "" {
		return nil, nil
	}
	if peakStr == "" || shiftStr == "" {
		return nil, fmt.Errorf("peakReduction and energyShift must be given together")
	}

	peak, err := strconv.ParseFloat(peakStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid peakReduction: %v", err)
	}
	shift, err := strconv.ParseFloat(shiftStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid energyShift: %v", err)
	}

	sc := &types.LoadShiftScenario{
		PeakReductionPct: peak,
		EnergyShiftPct:   shift,
		Redistribution:   types.Redistribution(q.Get("redistribution")),
	}
	return sc, nil
}

// writeAnalysisError maps analysis failures onto HTTP statuses: bad
// scenarios are the caller's fault, bad usage data is the upload's
// fault, and configuration defects are ours.
func writeAnalysisError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidScenario):
		writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, types.ErrInvalidUsage), errors.Is(err, types.ErrInsufficientData):
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Ctx(ctx).ErrorContext(ctx, "analysis failed", slog.Any("error", err))
		writeJSONError(w, "analysis failed", http.StatusInternalServerError)
	}
}

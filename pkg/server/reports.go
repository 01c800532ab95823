package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wattbill/wattbill/pkg/analysis"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/storage"
	"github.com/wattbill/wattbill/pkg/types"
)

type saveReportRequest struct {
	DatasetID string                   `json:"datasetID"`
	Scenario  *types.LoadShiftScenario `json:"scenario,omitempty"`
}

// handleSaveReport re-runs the analysis for the named dataset and
// persists the resulting comparison. The stored report never contains
// historical bills, only our estimates.
func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req saveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.DatasetID == "" {
		writeJSONError(w, "missing datasetID", http.StatusBadRequest)
		return
	}

	ds, err := s.storage.GetDataset(ctx, req.DatasetID)
	if err != nil {
		if errors.Is(err, storage.ErrDatasetNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to get dataset", slog.Any("error", err))
		writeJSONError(w, "failed to get dataset", http.StatusInternalServerError)
		return
	}

	res, err := analysis.Run(ctx, ds.Samples, req.Scenario)
	if err != nil {
		writeAnalysisError(ctx, w, err)
		return
	}

	saved := types.SavedReport{
		ID:         uuid.NewString(),
		DatasetID:  req.DatasetID,
		CreatedAt:  time.Now().UTC(),
		Scenario:   req.Scenario,
		Comparison: res.Comparison,
	}
	if err := s.storage.SaveReport(ctx, saved); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to save report", slog.Any("error", err))
		writeJSONError(w, "failed to save report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, saved)
}

// handleListReports lists saved reports, optionally filtered by the
// dataset query parameter.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reports, err := s.storage.ListReports(ctx, r.URL.Query().Get("dataset"))
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list reports", slog.Any("error", err))
		writeJSONError(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []types.SavedReport{}
	}
	writeJSON(w, reports)
}

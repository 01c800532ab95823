package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/types"
)

type scenarioDefaultsResponse struct {
	Defaults *types.LoadShiftScenario `json:"defaults"`
}

// handleGetScenarioDefaults returns the stored default scenario, or a
// null payload when none has been set yet.
func (s *Server) handleGetScenarioDefaults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sc, ok, err := s.storage.GetScenarioDefaults(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get scenario defaults", slog.Any("error", err))
		writeJSONError(w, "failed to get scenario defaults", http.StatusInternalServerError)
		return
	}
	resp := scenarioDefaultsResponse{}
	if ok {
		resp.Defaults = &sc
	}
	writeJSON(w, resp)
}

// handleSetScenarioDefaults validates and stores the default scenario.
func (s *Server) handleSetScenarioDefaults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var sc types.LoadShiftScenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := sc.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.storage.SetScenarioDefaults(ctx, sc); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to set scenario defaults", slog.Any("error", err))
		writeJSONError(w, "failed to set scenario defaults", http.StatusInternalServerError)
		return
	}
	writeJSON(w, scenarioDefaultsResponse{Defaults: &sc})
}

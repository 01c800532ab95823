package server

import (
	"net/http"

	"github.com/wattbill/wattbill/pkg/tariff"
)

// handleListPlans returns the rate catalog.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, tariff.Plans())
}

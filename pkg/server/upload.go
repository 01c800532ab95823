package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wattbill/wattbill/pkg/ingest"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/types"
)

type uploadResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Hours    int     `json:"hours"`
	TotalKWH float64 `json:"totalKWH"`
}

// handleUpload ingests a multipart CSV export and stores the validated
// series as a new dataset.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, fmt.Sprintf("invalid upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	series, err := ingest.ReadCSV(ctx, file)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidUsage):
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, types.ErrInsufficientData):
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			log.Ctx(ctx).ErrorContext(ctx, "failed to read upload", slog.Any("error", err))
			writeJSONError(w, "failed to read upload", http.StatusInternalServerError)
		}
		return
	}

	ds := types.Dataset{
		ID:         uuid.NewString(),
		Name:       name,
		UploadedAt: time.Now().UTC(),
		Samples:    series,
	}
	if err := s.storage.PutDataset(ctx, ds); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to store dataset", slog.Any("error", err))
		writeJSONError(w, "failed to store dataset", http.StatusInternalServerError)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "stored dataset",
		slog.String("datasetID", ds.ID),
		slog.Int("hours", len(series)))

	writeJSON(w, uploadResponse{
		ID:       ds.ID,
		Name:     ds.Name,
		Hours:    len(series),
		TotalKWH: series.TotalKWH(),
	})
}

// handleListDatasets lists stored dataset summaries.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	infos, err := s.storage.ListDatasets(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to list datasets", slog.Any("error", err))
		writeJSONError(w, "failed to list datasets", http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []types.DatasetInfo{}
	}
	writeJSON(w, infos)
}

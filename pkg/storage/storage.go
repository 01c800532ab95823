// Package storage persists uploaded usage datasets and saved comparison
// reports. Historical utility bills are never stored.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"
	"github.com/wattbill/wattbill/pkg/types"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrReportNotFound  = errors.New("report not found")
)

// Database defines the interface for persisting datasets and reports.
type Database interface {
	// Datasets
	PutDataset(ctx context.Context, ds types.Dataset) error
	GetDataset(ctx context.Context, id string) (types.Dataset, error)
	ListDatasets(ctx context.Context) ([]types.DatasetInfo, error)

	// Reports
	SaveReport(ctx context.Context, r types.SavedReport) error
	ListReports(ctx context.Context, datasetID string) ([]types.SavedReport, error)

	// Scenario defaults shown by the UI before the first analysis.
	GetScenarioDefaults(ctx context.Context) (types.LoadShiftScenario, bool, error)
	SetScenarioDefaults(ctx context.Context, sc types.LoadShiftScenario) error

	// Lifecycle
	Close() error
}

// Configured sets up the Storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "memory", "Storage provider to use (available: memory, firestore)")

	var p struct{ Database }

	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "memory":
			p.Database = NewMemoryProvider()
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}

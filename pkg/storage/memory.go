package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wattbill/wattbill/pkg/types"
)

// MemoryProvider implements the Database interface in process memory.
// It is the default provider for local use and the double for tests.
type MemoryProvider struct {
	mu          sync.RWMutex
	datasets    map[string]types.Dataset
	reports     []types.SavedReport
	defaults    types.LoadShiftScenario
	defaultsSet bool
}

var _ Database = (*MemoryProvider)(nil)

// NewMemoryProvider returns an empty in-memory database.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		datasets: make(map[string]types.Dataset),
	}
}

// PutDataset adds or replaces a dataset.
func (m *MemoryProvider) PutDataset(ctx context.Context, ds types.Dataset) error {
	if ds.ID == "" {
		return fmt.Errorf("dataset ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[ds.ID] = ds
	return nil
}

// GetDataset retrieves a dataset by ID.
func (m *MemoryProvider) GetDataset(ctx context.Context, id string) (types.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.datasets[id]
	if !ok {
		return types.Dataset{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}
	return ds, nil
}

// ListDatasets retrieves summaries of all stored datasets, newest first.
func (m *MemoryProvider) ListDatasets(ctx context.Context) ([]types.DatasetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]types.DatasetInfo, 0, len(m.datasets))
	for _, ds := range m.datasets {
		infos = append(infos, ds.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UploadedAt.After(infos[j].UploadedAt)
	})
	return infos, nil
}

// SaveReport appends a saved comparison report.
func (m *MemoryProvider) SaveReport(ctx context.Context, r types.SavedReport) error {
	if r.ID == "" {
		return fmt.Errorf("report ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)
	return nil
}

// ListReports retrieves saved reports in creation order, optionally
// filtered by dataset.
func (m *MemoryProvider) ListReports(ctx context.Context, datasetID string) ([]types.SavedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reports []types.SavedReport
	for _, r := range m.reports {
		if datasetID != "" && r.DatasetID != datasetID {
			continue
		}
		reports = append(reports, r)
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.Before(reports[j].CreatedAt)
	})
	return reports, nil
}

// GetScenarioDefaults retrieves the stored default scenario, if any.
func (m *MemoryProvider) GetScenarioDefaults(ctx context.Context) (types.LoadShiftScenario, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaults, m.defaultsSet, nil
}

// SetScenarioDefaults stores the default scenario.
func (m *MemoryProvider) SetScenarioDefaults(ctx context.Context, sc types.LoadShiftScenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults = sc
	m.defaultsSet = true
	return nil
}

// Close is a no-op for the in-memory provider.
func (m *MemoryProvider) Close() error {
	return nil
}

package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/wattbill/wattbill/pkg/storage"
	"github.com/wattbill/wattbill/pkg/types"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) PutDataset(ctx context.Context, ds types.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockDatabase) GetDataset(ctx context.Context, id string) (types.Dataset, error) {
	args := m.Called(ctx, id)
	if len(args) > 0 {
		return args.Get(0).(types.Dataset), args.Error(1)
	}
	return types.Dataset{}, nil
}

func (m *MockDatabase) ListDatasets(ctx context.Context) ([]types.DatasetInfo, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		return args.Get(0).([]types.DatasetInfo), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) SaveReport(ctx context.Context, r types.SavedReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDatabase) ListReports(ctx context.Context, datasetID string) ([]types.SavedReport, error) {
	args := m.Called(ctx, datasetID)
	if len(args) > 0 {
		return args.Get(0).([]types.SavedReport), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) GetScenarioDefaults(ctx context.Context) (types.LoadShiftScenario, bool, error) {
	args := m.Called(ctx)
	if len(args) > 0 {
		return args.Get(0).(types.LoadShiftScenario), args.Bool(1), args.Error(2)
	}
	return types.LoadShiftScenario{}, false, nil
}

func (m *MockDatabase) SetScenarioDefaults(ctx context.Context, sc types.LoadShiftScenario) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}

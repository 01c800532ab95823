package types

import "time"

// Dataset is an uploaded usage export held by storage for repeated
// analysis. The Samples are the validated series, not the raw file.
type Dataset struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	UploadedAt time.Time   `json:"uploadedAt"`
	Samples    UsageSeries `json:"samples"`
}

// Info returns the listing view of the dataset.
func (d Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:         d.ID,
		Name:       d.Name,
		UploadedAt: d.UploadedAt,
		Hours:      len(d.Samples),
		TotalKWH:   d.Samples.TotalKWH(),
	}
}

// DatasetInfo is the listing view of a dataset, without its samples.
type DatasetInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploadedAt"`
	Hours      int       `json:"hours"`
	TotalKWH   float64   `json:"totalKWH"`
}

// SavedReport is a persisted comparison summary for a dataset/scenario
// pair. Historical utility bills are never stored, only our estimates.
type SavedReport struct {
	ID         string             `json:"id"`
	DatasetID  string             `json:"datasetID"`
	CreatedAt  time.Time          `json:"createdAt"`
	Scenario   *LoadShiftScenario `json:"scenario,omitempty"`
	Comparison PlanComparison     `json:"comparison"`
}

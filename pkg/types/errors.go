package types

import "errors"

// Sentinel errors for the billing core. Callers branch with errors.Is; the
// core never retries and never masks one class as another.
var (
	// ErrConfiguration indicates an unknown plan or a malformed rate table.
	// This is a defect in the catalog, not in user input.
	ErrConfiguration = errors.New("tariff configuration error")

	// ErrInvalidUsage indicates malformed sample data reached the engine
	// (negative energy, duplicate or multi-month timestamps). The ingestion
	// layer should have rejected it already.
	ErrInvalidUsage = errors.New("invalid usage data")

	// ErrInsufficientData indicates an empty month slice. Billing skips the
	// month; the batch continues.
	ErrInsufficientData = errors.New("insufficient usage data")

	// ErrInvalidScenario indicates load-shift parameters outside their valid
	// ranges. Rejected before any transformation is attempted.
	ErrInvalidScenario = errors.New("invalid scenario parameters")
)

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"github.com/wattbill/wattbill/pkg/log"
	"github.com/wattbill/wattbill/pkg/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Datasets and reports are stored as JSON blobs so the schema
// can evolve without document migrations.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// PutDataset adds or replaces a dataset document in the "datasets"
// collection as a JSON blob keyed by the dataset ID.
func (f *FirestoreProvider) PutDataset(ctx context.Context, ds types.Dataset) error {
	if ds.ID == "" {
		return fmt.Errorf("dataset ID cannot be empty")
	}
	jsonBytes, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	_, err = f.client.Collection("datasets").Doc(ds.ID).Set(ctx, map[string]interface{}{
		"json":       string(jsonBytes),
		"name":       ds.Name,
		"uploadedAt": ds.UploadedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to put dataset %s: %w", ds.ID, err)
	}
	return nil
}

// GetDataset retrieves a dataset from the "datasets" collection.
func (f *FirestoreProvider) GetDataset(ctx context.Context, id string) (types.Dataset, error) {
	doc, err := f.client.Collection("datasets").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Dataset{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
		}
		return types.Dataset{}, fmt.Errorf("failed to get dataset %s: %w", id, err)
	}

	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "dataset doc missing json", slog.String("datasetID", id), slog.Any("err", err))
		return types.Dataset{}, fmt.Errorf("dataset %s missing json: %w", id, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "dataset doc json not string", slog.String("datasetID", id))
		return types.Dataset{}, fmt.Errorf("dataset %s json not string", id)
	}

	var ds types.Dataset
	if err := json.Unmarshal([]byte(jsonStr), &ds); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal dataset", slog.String("datasetID", id), slog.Any("err", err))
		return types.Dataset{}, fmt.Errorf("failed to unmarshal dataset %s: %w", id, err)
	}
	return ds, nil
}

// ListDatasets retrieves summaries of all stored datasets, newest first.
// Malformed documents are skipped rather than failing the listing.
func (f *FirestoreProvider) ListDatasets(ctx context.Context) ([]types.DatasetInfo, error) {
	iter := f.client.Collection("datasets").
		OrderBy("uploadedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var infos []types.DatasetInfo
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating datasets: %w", err)
		}

		val, err := doc.DataAt("json")
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "dataset doc missing json", slog.String("datasetID", doc.Ref.ID))
			continue
		}
		jsonStr, ok := val.(string)
		if !ok {
			log.Ctx(ctx).WarnContext(ctx, "dataset doc json not string", slog.String("datasetID", doc.Ref.ID))
			continue
		}

		var ds types.Dataset
		if err := json.Unmarshal([]byte(jsonStr), &ds); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal dataset", slog.String("datasetID", doc.Ref.ID), slog.Any("err", err))
			continue
		}
		infos = append(infos, ds.Info())
	}
	return infos, nil
}

// SaveReport adds a saved comparison report to the "reports" collection.
// The document ID combines the creation time and report ID so listings
// order chronologically without a composite index.
func (f *FirestoreProvider) SaveReport(ctx context.Context, r types.SavedReport) error {
	if r.ID == "" {
		return fmt.Errorf("report ID cannot be empty")
	}
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	docID := r.CreatedAt.UTC().Format(time.RFC3339) + "_" + r.ID
	_, err = f.client.Collection("reports").Doc(docID).Set(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"datasetID": r.DatasetID,
		"createdAt": r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", r.ID, err)
	}
	return nil
}

// ListReports retrieves saved reports, optionally filtered by dataset.
func (f *FirestoreProvider) ListReports(ctx context.Context, datasetID string) ([]types.SavedReport, error) {
	q := f.client.Collection("reports").Query
	if datasetID != "" {
		q = q.Where("datasetID", "==", datasetID)
	}
	iter := q.OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var reports []types.SavedReport
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating reports: %w", err)
		}

		val, err := doc.DataAt("json")
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "report doc missing json", slog.String("docID", doc.Ref.ID), slog.Any("err", err))
			return nil, fmt.Errorf("report document %s missing 'json' field: %w", doc.Ref.ID, err)
		}
		jsonStr, ok := val.(string)
		if !ok {
			log.Ctx(ctx).WarnContext(ctx, "report doc json not string", slog.String("docID", doc.Ref.ID))
			return nil, fmt.Errorf("report document %s 'json' field is not string", doc.Ref.ID)
		}

		var r types.SavedReport
		if err := json.Unmarshal([]byte(jsonStr), &r); err != nil {
			log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal report", slog.String("docID", doc.Ref.ID), slog.Any("err", err))
			return nil, fmt.Errorf("failed to unmarshal report (id=%s): %w", doc.Ref.ID, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// GetScenarioDefaults retrieves the stored default load-shift scenario
// from the "config/scenario_defaults" document. The bool reports whether
// defaults have ever been set.
func (f *FirestoreProvider) GetScenarioDefaults(ctx context.Context) (types.LoadShiftScenario, bool, error) {
	doc, err := f.client.Collection("config").Doc("scenario_defaults").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.LoadShiftScenario{}, false, nil
		}
		return types.LoadShiftScenario{}, false, fmt.Errorf("failed to fetch scenario defaults doc: %w", err)
	}

	val, err := doc.DataAt("json")
	if err != nil {
		return types.LoadShiftScenario{}, false, fmt.Errorf("scenario defaults document missing 'json' field: %w", err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		return types.LoadShiftScenario{}, false, fmt.Errorf("scenario defaults 'json' field is not a string")
	}

	var sc types.LoadShiftScenario
	if err := json.Unmarshal([]byte(jsonStr), &sc); err != nil {
		return types.LoadShiftScenario{}, false, fmt.Errorf("failed to unmarshal scenario defaults: %w", err)
	}
	return sc, true, nil
}

// SetScenarioDefaults saves the default load-shift scenario to the
// "config/scenario_defaults" document as a JSON string for portability.
func (f *FirestoreProvider) SetScenarioDefaults(ctx context.Context, sc types.LoadShiftScenario) error {
	jsonBytes, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario defaults: %w", err)
	}
	_, err = f.client.Collection("config").Doc("scenario_defaults").Set(ctx, map[string]interface{}{
		"json": string(jsonBytes),
	})
	if err != nil {
		return fmt.Errorf("failed to save scenario defaults: %w", err)
	}
	return nil
}

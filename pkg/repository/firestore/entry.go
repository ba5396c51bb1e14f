package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
)

// AnalysisStatusComplete is written to meta.analysis_status after an analysis run
const AnalysisStatusComplete = "complete"

type entryRepository struct {
	client     *firestore.Client
	collection string
}

func newEntryRepository(client *firestore.Client) *entryRepository {
	return &entryRepository{client: client, collection: CollectionEntries}
}

func (r *entryRepository) MarkAnalyzed(ctx context.Context, entryID string, version string) error {
	data := map[string]any{
		"meta": map[string]any{
			"analysis_status":     AnalysisStatusComplete,
			"analysis_version":    version,
			"analysis_updated_at": time.Now().UTC(),
		},
	}

	if _, err := r.client.Collection(r.collection).Doc(entryID).Set(ctx, data, firestore.MergeAll); err != nil {
		return goerr.Wrap(err, "failed to update entry metadata", goerr.V("entryID", entryID))
	}
	return nil
}

package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
)

// Collection names
const (
	CollectionAnalysis   = "diary_analysis"
	CollectionEmbeddings = "diary_embeddings"
	CollectionEntries    = "diary_entries"
)

type Firestore struct {
	client    *firestore.Client
	analysis  *analysisRepository
	embedding *embeddingRepository
	entry     *entryRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prepends prefix to every collection name. Used to
// isolate test data in a shared database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.analysis.collection = prefix + CollectionAnalysis
		f.embedding.collection = prefix + CollectionEmbeddings
		f.entry.collection = prefix + CollectionEntries
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:    client,
		analysis:  newAnalysisRepository(client),
		embedding: newEmbeddingRepository(client),
		entry:     newEntryRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Analysis() interfaces.AnalysisRepository {
	return f.analysis
}

func (f *Firestore) Embedding() interfaces.EmbeddingRepository {
	return f.embedding
}

func (f *Firestore) Entry() interfaces.EntryRepository {
	return f.entry
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

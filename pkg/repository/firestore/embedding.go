package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// embeddingDoc is the write representation of model.Embedding. The vector is
// stored as a plain numeric array so that records written by other clients
// stay readable.
type embeddingDoc struct {
	EntryID   string    `firestore:"entry_id"`
	UserID    string    `firestore:"user_id"`
	Embedding []float64 `firestore:"embedding"`
	CreatedAt time.Time `firestore:"created_at"`
}

// fromEmbeddingSnapshot decodes fields by hand: the embedding field may hold
// anything, and a malformed value must yield a nil vector instead of an error.
func fromEmbeddingSnapshot(doc *firestore.DocumentSnapshot) *model.Embedding {
	data := doc.Data()
	e := &model.Embedding{
		EntryID: doc.Ref.ID,
		Vector:  toVector(data["embedding"]),
	}
	if v, ok := data["user_id"].(string); ok {
		e.UserID = v
	}
	switch v := data["created_at"].(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			e.CreatedAt = t
		}
	}
	return e
}

func toVector(raw any) []float64 {
	switch v := raw.(type) {
	case []any:
		out := make([]float64, len(v))
		for i, x := range v {
			switch n := x.(type) {
			case float64:
				out[i] = n
			case int64:
				out[i] = float64(n)
			default:
				return nil
			}
		}
		return out
	case firestore.Vector64:
		return []float64(v)
	case firestore.Vector32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out
	}
	return nil
}

type embeddingRepository struct {
	client     *firestore.Client
	collection string
}

func newEmbeddingRepository(client *firestore.Client) *embeddingRepository {
	return &embeddingRepository{client: client, collection: CollectionEmbeddings}
}

func (r *embeddingRepository) Put(ctx context.Context, embedding *model.Embedding) error {
	if embedding.EntryID == "" {
		return goerr.New("entry ID is required for embedding")
	}

	createdAt := embedding.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := &embeddingDoc{
		EntryID:   embedding.EntryID,
		UserID:    embedding.UserID,
		Embedding: embedding.Vector,
		CreatedAt: createdAt,
	}
	if _, err := r.client.Collection(r.collection).Doc(embedding.EntryID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save embedding", goerr.V("entryID", embedding.EntryID))
	}
	return nil
}

func (r *embeddingRepository) Get(ctx context.Context, entryID string) (*model.Embedding, error) {
	doc, err := r.client.Collection(r.collection).Doc(entryID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "embedding not found", goerr.V("entryID", entryID))
		}
		return nil, goerr.Wrap(err, "failed to get embedding", goerr.V("entryID", entryID))
	}
	return fromEmbeddingSnapshot(doc), nil
}

func (r *embeddingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Embedding, error) {
	iter := r.client.Collection(r.collection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	embeddings := make([]*model.Embedding, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate embeddings", goerr.V("userID", userID))
		}
		embeddings = append(embeddings, fromEmbeddingSnapshot(doc))
	}

	return embeddings, nil
}

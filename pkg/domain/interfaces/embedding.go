package interfaces

import (
	"context"

	"github.com/soos-lab/reflectd/pkg/domain/model"
)

// EmbeddingRepository persists entry vectors
type EmbeddingRepository interface {
	// Put upserts the embedding keyed by its EntryID
	Put(ctx context.Context, embedding *model.Embedding) error

	// Get retrieves the embedding of an entry. Returns ErrNotFound when absent.
	Get(ctx context.Context, entryID string) (*model.Embedding, error)

	// ListByUser returns every embedding owned by the user in retrieval order.
	// Records whose stored vector is not a numeric array have a nil Vector.
	ListByUser(ctx context.Context, userID string) ([]*model.Embedding, error)
}

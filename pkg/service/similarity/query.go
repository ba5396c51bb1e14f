package similarity

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/utils/timeout"
)

// DefaultTimeout bounds the retrieval of a user's embedding corpus
const DefaultTimeout = 1500 * time.Millisecond

// Query ranks a user's stored embeddings against a query vector. The corpus
// is read without locking.
type Query struct {
	repo    interfaces.EmbeddingRepository
	timeout time.Duration
}

type Option func(*Query)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(q *Query) {
		q.timeout = d
	}
}

func New(repo interfaces.EmbeddingRepository, opts ...Option) *Query {
	q := &Query{
		repo:    repo,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Find returns up to limit entries of userID most similar to vector,
// excluding entryID. Retrieval failure, including timeout, is returned to the
// caller, which is expected to substitute an empty list. A non-positive limit
// uses model.DefaultSimilarLimit.
func (q *Query) Find(ctx context.Context, userID, entryID string, vector []float64, limit int) ([]model.SimilarEntry, error) {
	if limit <= 0 {
		limit = model.DefaultSimilarLimit
	}

	candidates, err := timeout.Run(ctx, q.timeout, "similar_query_timeout", func(ctx context.Context) ([]*model.Embedding, error) {
		return q.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to retrieve embeddings",
			goerr.V("userID", userID),
			goerr.V("entryID", entryID),
		)
	}

	return Rank(vector, candidates, entryID, limit), nil
}

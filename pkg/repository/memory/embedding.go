package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
)

type embeddingRepository struct {
	mu         sync.RWMutex
	embeddings map[string]*model.Embedding
	order      []string // insertion order, kept stable across upserts
}

func newEmbeddingRepository() *embeddingRepository {
	return &embeddingRepository{
		embeddings: make(map[string]*model.Embedding),
	}
}

func copyEmbedding(e *model.Embedding) *model.Embedding {
	copied := *e
	if e.Vector != nil {
		copied.Vector = make([]float64, len(e.Vector))
		copy(copied.Vector, e.Vector)
	}
	return &copied
}

func (r *embeddingRepository) Put(ctx context.Context, embedding *model.Embedding) error {
	if embedding.EntryID == "" {
		return goerr.New("entry ID is required for embedding")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyEmbedding(embedding)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if _, exists := r.embeddings[stored.EntryID]; !exists {
		r.order = append(r.order, stored.EntryID)
	}
	r.embeddings[stored.EntryID] = stored
	return nil
}

func (r *embeddingRepository) Get(ctx context.Context, entryID string) (*model.Embedding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.embeddings[entryID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "embedding not found", goerr.V("entryID", entryID))
	}
	return copyEmbedding(e), nil
}

func (r *embeddingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Embedding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Embedding, 0)
	for _, id := range r.order {
		if e := r.embeddings[id]; e.UserID == userID {
			result = append(result, copyEmbedding(e))
		}
	}
	return result, nil
}

package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/repository/memory"
)

// mockRepository wraps the memory repository with call counters and
// injectable failures
type mockRepository struct {
	*memory.Memory

	analysisPuts  atomic.Int32
	embeddingPuts atomic.Int32
	embeddingGets atomic.Int32
	listCalls     atomic.Int32
	metaCalls     atomic.Int32

	analysisPutErr  error
	embeddingPutErr error
	listErr         error
	metaErr         error
	analysisDelay   time.Duration

	metaDone chan struct{}
	metaOnce sync.Once
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		Memory:   memory.New(),
		metaDone: make(chan struct{}),
	}
}

func (r *mockRepository) totalCalls() int32 {
	return r.analysisPuts.Load() + r.embeddingPuts.Load() + r.embeddingGets.Load() + r.listCalls.Load() + r.metaCalls.Load()
}

func (r *mockRepository) Analysis() interfaces.AnalysisRepository {
	return &mockAnalysisRepository{parent: r, base: r.Memory.Analysis()}
}

func (r *mockRepository) Embedding() interfaces.EmbeddingRepository {
	return &mockEmbeddingRepository{parent: r, base: r.Memory.Embedding()}
}

func (r *mockRepository) Entry() interfaces.EntryRepository {
	return &mockEntryRepository{parent: r, base: r.Memory.Entry()}
}

type mockAnalysisRepository struct {
	parent *mockRepository
	base   interfaces.AnalysisRepository
}

func (m *mockAnalysisRepository) Put(ctx context.Context, analysis *model.Analysis) error {
	m.parent.analysisPuts.Add(1)
	if d := m.parent.analysisDelay; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.parent.analysisPutErr != nil {
		return m.parent.analysisPutErr
	}
	return m.base.Put(ctx, analysis)
}

func (m *mockAnalysisRepository) Get(ctx context.Context, entryID string) (*model.Analysis, error) {
	return m.base.Get(ctx, entryID)
}

type mockEmbeddingRepository struct {
	parent *mockRepository
	base   interfaces.EmbeddingRepository
}

func (m *mockEmbeddingRepository) Put(ctx context.Context, embedding *model.Embedding) error {
	m.parent.embeddingPuts.Add(1)
	if m.parent.embeddingPutErr != nil {
		return m.parent.embeddingPutErr
	}
	return m.base.Put(ctx, embedding)
}

func (m *mockEmbeddingRepository) Get(ctx context.Context, entryID string) (*model.Embedding, error) {
	m.parent.embeddingGets.Add(1)
	return m.base.Get(ctx, entryID)
}

func (m *mockEmbeddingRepository) ListByUser(ctx context.Context, userID string) ([]*model.Embedding, error) {
	m.parent.listCalls.Add(1)
	if m.parent.listErr != nil {
		return nil, m.parent.listErr
	}
	return m.base.ListByUser(ctx, userID)
}

type mockEntryRepository struct {
	parent *mockRepository
	base   interfaces.EntryRepository
}

func (m *mockEntryRepository) MarkAnalyzed(ctx context.Context, entryID string, version string) error {
	m.parent.metaCalls.Add(1)
	defer m.parent.metaOnce.Do(func() { close(m.parent.metaDone) })
	if m.parent.metaErr != nil {
		return m.parent.metaErr
	}
	return m.base.MarkAnalyzed(ctx, entryID, version)
}

type mockGenerator struct {
	calls      atomic.Int32
	generateFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls.Add(1)
	return m.generateFn(ctx, systemPrompt, userPrompt)
}

type mockEmbedder struct {
	calls   atomic.Int32
	embedFn func(ctx context.Context, text string) ([]float64, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.calls.Add(1)
	return m.embedFn(ctx, text)
}

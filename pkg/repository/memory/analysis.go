package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
	"github.com/soos-lab/reflectd/pkg/domain/model"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[string]*model.Analysis
}

func newAnalysisRepository() *analysisRepository {
	return &analysisRepository{
		analyses: make(map[string]*model.Analysis),
	}
}

// copyAnalysis creates a deep copy of an analysis record
func copyAnalysis(a *model.Analysis) *model.Analysis {
	copied := *a
	copied.Facts = append([]string{}, a.Facts...)
	copied.Story = append([]string{}, a.Story...)
	copied.Triggers = append([]string{}, a.Triggers...)
	copied.Emotions = append([]model.EmotionObservation{}, a.Emotions...)
	copied.Patterns = make([]model.PatternObservation, len(a.Patterns))
	for i, p := range a.Patterns {
		p.EvidenceQuotes = append([]string{}, p.EvidenceQuotes...)
		copied.Patterns[i] = p
	}
	return &copied
}

func (r *analysisRepository) Put(ctx context.Context, analysis *model.Analysis) error {
	if analysis.EntryID == "" {
		return goerr.New("entry ID is required for analysis")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.analyses[analysis.EntryID] = copyAnalysis(analysis)
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, entryID string) (*model.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.analyses[entryID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "analysis not found", goerr.V("entryID", entryID))
	}
	return copyAnalysis(a), nil
}

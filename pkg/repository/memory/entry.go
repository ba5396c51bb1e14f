package memory

import (
	"context"
	"sync"
	"time"
)

// EntryMeta is the analysis metadata merged into an entry
type EntryMeta struct {
	AnalysisStatus  string
	AnalysisVersion string
	UpdatedAt       time.Time
}

type entryRepository struct {
	mu    sync.RWMutex
	metas map[string]EntryMeta
}

func newEntryRepository() *entryRepository {
	return &entryRepository{
		metas: make(map[string]EntryMeta),
	}
}

func (r *entryRepository) MarkAnalyzed(ctx context.Context, entryID string, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metas[entryID] = EntryMeta{
		AnalysisStatus:  "complete",
		AnalysisVersion: version,
		UpdatedAt:       time.Now().UTC(),
	}
	return nil
}

func (r *entryRepository) meta(entryID string) (EntryMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.metas[entryID]
	return m, ok
}

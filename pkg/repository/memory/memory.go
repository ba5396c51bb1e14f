package memory

import (
	"github.com/soos-lab/reflectd/pkg/domain/interfaces"
)

// Memory is an in-process repository for development and tests
type Memory struct {
	analysis  *analysisRepository
	embedding *embeddingRepository
	entry     *entryRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		analysis:  newAnalysisRepository(),
		embedding: newEmbeddingRepository(),
		entry:     newEntryRepository(),
	}
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}

func (m *Memory) Embedding() interfaces.EmbeddingRepository {
	return m.embedding
}

func (m *Memory) Entry() interfaces.EntryRepository {
	return m.entry
}

// EntryMeta returns the metadata written by MarkAnalyzed. Exposed for tests
// and the development server.
func (m *Memory) EntryMeta(entryID string) (EntryMeta, bool) {
	return m.entry.meta(entryID)
}

func (m *Memory) Close() error {
	return nil
}

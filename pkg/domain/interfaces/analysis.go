package interfaces

import (
	"context"

	"github.com/soos-lab/reflectd/pkg/domain/model"
)

// AnalysisRepository persists observation records
type AnalysisRepository interface {
	// Put upserts the analysis keyed by its EntryID
	Put(ctx context.Context, analysis *model.Analysis) error

	// Get retrieves the analysis of an entry
	Get(ctx context.Context, entryID string) (*model.Analysis, error)
}

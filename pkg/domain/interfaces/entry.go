package interfaces

import "context"

// EntryRepository updates metadata of entries owned by the storage layer.
// Entry text is never written.
type EntryRepository interface {
	// MarkAnalyzed merges analysis status and version into the entry metadata
	MarkAnalyzed(ctx context.Context, entryID string, version string) error
}

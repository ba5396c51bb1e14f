package interfaces

import "errors"

// ErrNotFound is wrapped by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// Repository is the storage collaborator. It is the only source of truth for
// whether a record exists; callers never assume a write succeeded.
type Repository interface {
	Analysis() AnalysisRepository
	Embedding() EmbeddingRepository
	Entry() EntryRepository

	Close() error
}

package model

import "time"

// DefaultEmbeddingDimension is the vector length of the deterministic embedding
const DefaultEmbeddingDimension = 64

// Embedding is the vector representation of one entry
type Embedding struct {
	EntryID   string
	UserID    string
	Vector    []float64 // nil when the stored value was not a numeric array
	CreatedAt time.Time
}

// SimilarEntry is one ranked neighbor of a query entry
type SimilarEntry struct {
	EntryID string  `json:"entry_id"`
	Score   float64 `json:"score"`
}

// DefaultSimilarLimit is used when the caller does not give a positive limit
const DefaultSimilarLimit = 3

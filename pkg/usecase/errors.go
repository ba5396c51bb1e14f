package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrInvalidRequest wraps validation failures that map to a client error
	ErrInvalidRequest = errors.New("invalid request")
)

// Context keys for error values
const (
	EntryIDKey = "entry_id"
	UserIDKey  = "user_id"
)

package model

import (
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Entry is a journal entry owned by the storage layer. Text is read only.
type Entry struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}

// ErrMissingField is returned by Validate when a required field is empty
var ErrMissingField = errors.New("missing required fields")

// Validate checks that ID, UserID and Text are non-empty. Values are taken
// as given: whitespace-only text is analyzed and IDs are never trimmed.
func (x *Entry) Validate() error {
	if x == nil {
		return goerr.Wrap(ErrMissingField, "entry is nil")
	}
	if x.ID == "" {
		return goerr.Wrap(ErrMissingField, "entry_id is required")
	}
	if x.UserID == "" {
		return goerr.Wrap(ErrMissingField, "user_id is required", goerr.V("entry_id", x.ID))
	}
	if x.Text == "" {
		return goerr.Wrap(ErrMissingField, "text is required", goerr.V("entry_id", x.ID))
	}
	return nil
}

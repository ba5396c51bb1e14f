package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
)

// Handle logs the error with its goerr context and forwards it to Sentry when a
// Sentry client has been initialized.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if hub := sentry.CurrentHub(); hub != nil && hub.Client() != nil {
		hub.CaptureException(err)
	}
}

// HandleHTTP logs the error and writes a JSON error body {"error": code}.
// The internal error message is never exposed to the caller.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, code string) {
	if err == nil {
		return
	}

	Handle(ctx, goerr.Wrap(err, "HTTP error", goerr.V("status", statusCode)), "HTTP error")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

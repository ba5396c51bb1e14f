package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// The handler receives a background context that keeps the caller's logger but
// not its cancellation, so it survives the end of the originating request.
// Errors and panics are logged and otherwise swallowed.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Warn("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}

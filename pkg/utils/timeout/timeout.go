package timeout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ErrTimeout is returned by Run when fn did not return within the deadline
var ErrTimeout = errors.New("operation timed out")

// ErrPanic is returned by Run when fn panicked
var ErrPanic = errors.New("operation panicked")

type result[T any] struct {
	value T
	err   error
}

// Run calls fn with a context bounded by d and waits for either its result or
// the deadline, whichever comes first. fn runs in its own goroutine: if it
// ignores ctx and returns late, its result is dropped. A panic in fn is
// recovered and returned as ErrPanic. A non-positive d disables the bound.
func Run[T any](ctx context.Context, d time.Duration, label string, fn func(ctx context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return call(ctx, label, fn)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	// buffered so a straggler never blocks after we stop listening
	ch := make(chan result[T], 1)
	go func() {
		v, err := call(ctx, label, fn)
		ch <- result[T]{value: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, goerr.Wrap(ErrTimeout, label, goerr.V("timeout", d.String()), goerr.V("cause", ctx.Err().Error()))
	}
}

func call[T any](ctx context.Context, label string, fn func(ctx context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = goerr.Wrap(ErrPanic, label, goerr.V("panic", fmt.Sprint(r)))
		}
	}()
	return fn(ctx)
}

// Do is Run for functions that only return an error
func Do(ctx context.Context, d time.Duration, label string, fn func(ctx context.Context) error) error {
	_, err := Run(ctx, d, label, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

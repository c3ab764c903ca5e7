package httpadapter

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Single is a deferred computation producing exactly one value or an error.
// The context is cancelled when the result is no longer wanted.
type Single[T any] func(ctx context.Context) (T, error)

// Just returns a Single that yields v.
func Just[T any](v T) Single[T] {
	return func(context.Context) (T, error) { return v, nil }
}

// Fail returns a Single that yields err.
func Fail[T any](err error) Single[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// FromFunc adapts a function that ignores cancellation.
func FromFunc[T any](fn func() (T, error)) Single[T] {
	return func(context.Context) (T, error) { return fn() }
}

// Any erases the value type of s.
func Any[T any](s Single[T]) Single[any] {
	return func(ctx context.Context) (any, error) {
		v, err := s(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// SubscribeSingle runs single on its own goroutine and delivers its outcome
// to d. Once d completes or times out the subscription is disposed: the
// single's context is cancelled and its outcome is dropped.
func SubscribeSingle[T any](ctx context.Context, single Single[T], d *DeferredResult) {
	ctx, cancel := context.WithCancel(ctx)
	var disposed atomic.Bool
	dispose := func() {
		disposed.Store(true)
		cancel()
	}
	d.OnTimeout(dispose)
	d.OnCompletion(dispose)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.SetErrorResult(errors.Errorf("panic: %v", r))
			}
		}()
		v, err := single(ctx)
		if disposed.Load() {
			return
		}
		if err != nil {
			d.SetErrorResult(err)
			return
		}
		d.SetResult(v)
	}()
}

package httpadapter

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec/i18n"
)

// ErrAsyncTimeout resolves a DeferredResult that timed out without a
// timeout result.
var ErrAsyncTimeout = errors.New(i18n.T(i18n.CodeAsyncTimeout, nil))

// DeferredResult is a one-shot latch resolved by whichever of a value, an
// error or the timeout arrives first.
type DeferredResult struct {
	timeoutResult any

	mu           sync.Mutex
	resolved     bool
	value        any
	err          error
	timer        *time.Timer
	onTimeout    []func()
	onCompletion []func()
	done         chan struct{}
}

// NewDeferredResult returns a result that times out after timeout; zero or
// less disables the timeout. On timeout the result resolves to
// timeoutResult, or to ErrAsyncTimeout when timeoutResult is nil.
func NewDeferredResult(timeout time.Duration, timeoutResult any) *DeferredResult {
	d := &DeferredResult{timeoutResult: timeoutResult, done: make(chan struct{})}
	if timeout > 0 {
		d.mu.Lock()
		d.timer = time.AfterFunc(timeout, d.expire)
		d.mu.Unlock()
	}
	return d
}

// SetResult resolves d with v. It returns false if d was already resolved.
func (d *DeferredResult) SetResult(v any) bool { return d.resolve(v, nil) }

// SetErrorResult resolves d with err. It returns false if d was already
// resolved.
func (d *DeferredResult) SetErrorResult(err error) bool { return d.resolve(nil, err) }

// OnTimeout registers fn to run when the timeout fires, before d resolves.
func (d *DeferredResult) OnTimeout(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onTimeout = append(d.onTimeout, fn)
}

// OnCompletion registers fn to run once d resolves. If d is already resolved
// fn runs immediately.
func (d *DeferredResult) OnCompletion(fn func()) {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		fn()
		return
	}
	d.onCompletion = append(d.onCompletion, fn)
	d.mu.Unlock()
}

// IsSet reports whether d has been resolved.
func (d *DeferredResult) IsSet() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolved
}

// Done is closed once d resolves.
func (d *DeferredResult) Done() <-chan struct{} { return d.done }

// Result returns the resolved value and error. Before resolution both are nil.
func (d *DeferredResult) Result() (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.err
}

// Wait blocks until d resolves or ctx is done. A done ctx resolves d with
// ctx.Err() unless something else got there first.
func (d *DeferredResult) Wait(ctx context.Context) (any, error) {
	select {
	case <-d.done:
	case <-ctx.Done():
		d.SetErrorResult(ctx.Err())
	}
	return d.Result()
}

func (d *DeferredResult) expire() {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		return
	}
	callbacks := append([]func(){}, d.onTimeout...)
	d.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	if d.timeoutResult != nil {
		d.SetResult(d.timeoutResult)
		return
	}
	d.SetErrorResult(ErrAsyncTimeout)
}

func (d *DeferredResult) resolve(v any, err error) bool {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		return false
	}
	d.resolved = true
	d.value, d.err = v, err
	if d.timer != nil {
		d.timer.Stop()
	}
	callbacks := d.onCompletion
	d.onCompletion = nil
	close(d.done)
	d.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return true
}

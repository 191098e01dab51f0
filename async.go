package dispose

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/QuangTung97/dispose/gate"
)

// Policy ...
type Policy int

const (
	// Serial runs delegates one at a time in LIFO order. A delegate added
	// after disposal has started runs once that disposal has completed.
	Serial Policy = iota
	// Concurrent runs all delegates at the same time. A delegate added
	// after disposal has started runs immediately.
	Concurrent
)

// Async runs a list of AsyncFunc delegates exactly once.
type Async struct {
	gate   *gate.Gate[[]AsyncFunc]
	policy Policy
}

var _ Properties = &Async{}

// NewAsync creates an Async with a single delegate, fn may be nil.
func NewAsync(fn AsyncFunc, options ...Option) *Async {
	var fns []AsyncFunc
	if fn != nil {
		fns = []AsyncFunc{fn}
	}
	return newAsync(fns, computeDisposeOptions(options...))
}

func newAsync(fns []AsyncFunc, opts disposeOptions) *Async {
	a := &Async{
		policy: opts.policy,
	}
	if a.policy == Concurrent {
		a.gate = gate.NewContext(fns, runConcurrently, opts.gateOptions()...)
	} else {
		a.gate = gate.NewContext(fns, runSerially, opts.gateOptions()...)
	}
	return a
}

func runSerially(ctx context.Context, fns []AsyncFunc) error {
	var err error
	for i := len(fns) - 1; i >= 0; i-- {
		err = multierr.Append(err, fns[i](ctx))
	}
	return err
}

func runConcurrently(ctx context.Context, fns []AsyncFunc) error {
	errs := make([]error, len(fns))

	var g errgroup.Group
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			errs[i] = fn(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return multierr.Combine(errs...)
}

// Add registers fn. If disposal has already started, fn runs right away
// under the Concurrent policy, or after the in-flight disposal under Serial.
// Under Serial, if ctx is done before the in-flight disposal completes,
// Add returns ctx.Err() and fn never runs.
func (a *Async) Add(ctx context.Context, fn AsyncFunc) error {
	if fn == nil {
		return nil
	}
	if a.gate.TryUpdateContext(func(fns []AsyncFunc) []AsyncFunc {
		return appendCopy(fns, fn)
	}) {
		return nil
	}

	if a.policy == Serial {
		if err := a.waitDisposed(ctx); err != nil {
			return err
		}
	}
	return fn(ctx)
}

func (a *Async) waitDisposed(ctx context.Context) error {
	select {
	case <-a.gate.Done():
		return nil
	default:
	}

	select {
	case <-a.gate.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Async) abandon() []AsyncFunc {
	var result []AsyncFunc
	ok := a.gate.TryUpdateContext(func(fns []AsyncFunc) []AsyncFunc {
		result = fns
		return nil
	})
	if !ok {
		return nil
	}
	return result
}

// Dispose runs the delegates with ctx. A call that finds the disposal already
// in flight waits for it until ctx is done.
func (a *Async) Dispose(ctx context.Context) error {
	return a.gate.DisposeContext(ctx)
}

// IsDisposeStarted ...
func (a *Async) IsDisposeStarted() bool {
	return a.gate.IsDisposeStarted()
}

// IsDisposed ...
func (a *Async) IsDisposed() bool {
	return a.gate.IsDisposed()
}

// IsDisposing ...
func (a *Async) IsDisposing() bool {
	return a.gate.IsDisposing()
}

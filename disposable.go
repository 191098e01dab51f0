package dispose

import (
	"go.uber.org/multierr"

	"github.com/QuangTung97/dispose/gate"
)

// Disposable runs a list of delegates exactly once, in LIFO order.
type Disposable struct {
	gate *gate.Gate[[]func() error]
}

var _ Disposer = &Disposable{}
var _ Properties = &Disposable{}

// New creates a Disposable with a single delegate, fn may be nil.
func New(fn func() error, options ...Option) *Disposable {
	opts := computeDisposeOptions(options...)

	var fns []func() error
	if fn != nil {
		fns = []func() error{fn}
	}
	return &Disposable{
		gate: gate.New(fns, runFuncs, opts.gateOptions()...),
	}
}

func runFuncs(fns []func() error) error {
	var err error
	for i := len(fns) - 1; i >= 0; i-- {
		err = multierr.Append(err, fns[i]())
	}
	return err
}

func appendCopy[T any](list []T, fn T) []T {
	result := make([]T, 0, len(list)+1)
	result = append(result, list...)
	return append(result, fn)
}

// Add registers fn to run before the delegates already added.
// If disposal has already started, Add waits for it to finish and then runs fn, returning its error.
func (d *Disposable) Add(fn func() error) error {
	if fn == nil {
		return nil
	}
	if d.gate.TryUpdateContext(func(fns []func() error) []func() error {
		return appendCopy(fns, fn)
	}) {
		return nil
	}

	_ = d.gate.Dispose()
	return fn()
}

// Dispose runs every delegate, even if some of them fail, and combines their errors.
func (d *Disposable) Dispose() error {
	return d.gate.Dispose()
}

// IsDisposeStarted ...
func (d *Disposable) IsDisposeStarted() bool {
	return d.gate.IsDisposeStarted()
}

// IsDisposed ...
func (d *Disposable) IsDisposed() bool {
	return d.gate.IsDisposed()
}

// IsDisposing ...
func (d *Disposable) IsDisposing() bool {
	return d.gate.IsDisposing()
}

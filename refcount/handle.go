package refcount

import (
	"context"
	"runtime"
	"weak"

	"go.uber.org/zap"

	"github.com/QuangTung97/dispose/gate"
)

// sharedCounter is what every handle over the same target points to.
// The target is stored untyped so handles of different views can share it.
type sharedCounter struct {
	counter *Counter[any]
	release func(ctx context.Context, target any) error
	logger  *zap.Logger
}

func releaseReference(ctx context.Context, s *sharedCounter) error {
	target, ok := s.counter.TryDecrementCount()
	if !ok {
		return nil
	}

	s.logger.Debug("Reference count reached zero")
	if s.release == nil {
		return nil
	}
	return s.release(ctx, target)
}

func asTarget[T any](v any) (T, bool) {
	if v == nil {
		var empty T
		return empty, true
	}
	t, ok := v.(T)
	return t, ok
}

// Handle is a strong reference: the target is released when the last Handle is disposed.
// All methods are safe for concurrent use.
type Handle[T any] struct {
	gate *gate.Gate[*sharedCounter]
}

// New creates a Handle with a new counter. release is called with the target
// when the last reference is disposed, it may be nil.
func New[T any](target T, release func(target T) error, options ...Option) *Handle[T] {
	return NewContext(target, withoutContext(release), options...)
}

// NewContext is like New for targets whose teardown is itself a blocking operation.
// release receives the context of the Dispose or DisposeContext call that drops the count to zero.
func NewContext[T any](target T, release func(ctx context.Context, target T) error, options ...Option) *Handle[T] {
	opts := computeRefcountOptions(options...)

	s := &sharedCounter{
		counter: NewCounter[any](target),
		logger:  opts.logger,
	}
	if release != nil {
		s.release = func(ctx context.Context, v any) error {
			t, _ := asTarget[T](v)
			return release(ctx, t)
		}
	}
	return newHandle[T](s)
}

func withoutContext[T any](release func(target T) error) func(ctx context.Context, target T) error {
	if release == nil {
		return nil
	}
	return func(_ context.Context, target T) error {
		return release(target)
	}
}

// newHandle must be called only after the count has been incremented for the new handle.
func newHandle[T any](s *sharedCounter) *Handle[T] {
	h := &Handle[T]{
		gate: gate.NewContext(s, releaseReference, gate.WithLogger(s.logger)),
	}
	runtime.AddCleanup(h, warnDropped, droppedHandle{gate: h.gate, logger: s.logger})
	return h
}

type droppedHandle struct {
	gate   *gate.Gate[*sharedCounter]
	logger *zap.Logger
}

func warnDropped(d droppedHandle) {
	if d.gate.IsDisposeStarted() {
		return
	}
	d.logger.Warn("Handle dropped without Dispose, its reference is never released")
}

func (h *Handle[T]) shared() (*sharedCounter, bool) {
	return h.gate.Context()
}

// Dispose decrements the shared count once, however many times it is called.
// The call that drops the count to zero runs the release function and returns its error.
// Every Handle must be disposed: release never runs for a target whose last Handle was dropped.
func (h *Handle[T]) Dispose() error {
	return h.gate.Dispose()
}

// DisposeContext is like Dispose, but ctx is passed to the release function,
// and a concurrent call on the same handle stops waiting for it when ctx is done.
func (h *Handle[T]) DisposeContext(ctx context.Context) error {
	return h.gate.DisposeContext(ctx)
}

// Target returns ErrAlreadyDisposed once Dispose has been called.
func (h *Handle[T]) Target() (T, error) {
	t, ok := h.TryGetTarget()
	if !ok {
		return t, ErrAlreadyDisposed
	}
	return t, nil
}

// TryGetTarget ...
func (h *Handle[T]) TryGetTarget() (T, bool) {
	var empty T

	s, ok := h.shared()
	if !ok {
		return empty, false
	}
	v, ok := s.counter.TryGetTarget()
	if !ok {
		return empty, false
	}
	return asTarget[T](v)
}

// TryAddReference returns a new Handle sharing the same count.
func (h *Handle[T]) TryAddReference() (*Handle[T], bool) {
	s, ok := h.shared()
	if !ok {
		return nil, false
	}

	if !s.counter.TryIncrementCount() {
		if !h.gate.IsDisposeStarted() {
			s.logger.DPanic("Reference count reached zero while a handle is still alive")
		}
		return nil, false
	}
	return newHandle[T](s), true
}

// AddReference ...
func (h *Handle[T]) AddReference() (*Handle[T], error) {
	result, ok := h.TryAddReference()
	if !ok {
		return nil, ErrAlreadyDisposed
	}
	return result, nil
}

// TryAddWeakReference returns a WeakHandle that does not take part in the count.
// It fails once Dispose has been called on h.
func (h *Handle[T]) TryAddWeakReference() (*WeakHandle[T], bool) {
	s, ok := h.shared()
	if !ok {
		return nil, false
	}
	return &WeakHandle[T]{ptr: weak.Make(s)}, true
}

// AddWeakReference ...
func (h *Handle[T]) AddWeakReference() (*WeakHandle[T], error) {
	result, ok := h.TryAddWeakReference()
	if !ok {
		return nil, ErrAlreadyDisposed
	}
	return result, nil
}

// IsDisposeStarted ...
func (h *Handle[T]) IsDisposeStarted() bool {
	return h.gate.IsDisposeStarted()
}

// IsDisposed ...
func (h *Handle[T]) IsDisposed() bool {
	return h.gate.IsDisposed()
}

// IsDisposing ...
func (h *Handle[T]) IsDisposing() bool {
	return h.gate.IsDisposing()
}

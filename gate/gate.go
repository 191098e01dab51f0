package gate

import (
	"context"

	"go.uber.org/zap"
)

// Gate runs a teardown action exactly once over a context.
// Every call to Dispose returns only after the action has completed,
// whichever goroutine actually executed it.
type Gate[T any] struct {
	cell   Cell[T]
	action func(context.Context, T) error
	logger *zap.Logger

	done chan struct{}
	err  error // written before done is closed
}

// New ...
func New[T any](value T, action func(value T) error, options ...Option) *Gate[T] {
	if action == nil {
		return NewContext[T](value, nil, options...)
	}
	return NewContext(value, func(_ context.Context, v T) error {
		return action(v)
	}, options...)
}

// NewContext creates a Gate whose action receives the context of the Dispose call that runs it.
func NewContext[T any](value T, action func(ctx context.Context, value T) error, options ...Option) *Gate[T] {
	g := &Gate[T]{
		action: action,
		logger: newLogger(computeGateOptions(options...)),
		done:   make(chan struct{}),
	}
	g.cell.box.Store(&cellBox[T]{value: value})
	return g
}

// NewFunc creates a Gate without a context, a nil action does nothing on Dispose.
func NewFunc(action func() error, options ...Option) *Gate[func() error] {
	return New(action, invokeFunc, options...)
}

func invokeFunc(fn func() error) error {
	if fn == nil {
		return nil
	}
	return fn()
}

func newLogger(opts gateOptions) *zap.Logger {
	if opts.name == "" {
		return opts.logger
	}
	return opts.logger.With(zap.String("gate", opts.name))
}

// Dispose runs the action if no other call got there first, otherwise waits for it.
// Every caller receives the error of the action, wrapped in *TeardownError.
func (g *Gate[T]) Dispose() error {
	value, ok := g.cell.TakeAndClear()
	if !ok {
		<-g.done
		return g.err
	}
	return g.run(context.Background(), value)
}

// DisposeContext is like Dispose, but ctx is passed to the action when this call runs it,
// and a call waiting for another goroutine's action stops waiting when ctx is done.
// Once started, the action is never abandoned by the gate.
func (g *Gate[T]) DisposeContext(ctx context.Context) error {
	value, ok := g.cell.TakeAndClear()
	if ok {
		return g.run(ctx, value)
	}

	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gate[T]) run(ctx context.Context, value T) error {
	g.logger.Debug("Dispose started")

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r == nil {
			// runtime.Goexit, let it unwind the goroutine
			g.err = &TeardownError{Err: ErrTeardownExited}
			close(g.done)
			g.logger.Error("Teardown action exited its goroutine")
			return
		}
		g.err = panicError(r)
		close(g.done)
		g.logger.Error("Teardown action panicked", zap.Any("panic", r))
		panic(r)
	}()

	var err error
	if g.action != nil {
		err = newTeardownError(g.action(ctx, value))
	}
	completed = true

	g.err = err
	close(g.done)

	if err != nil {
		g.logger.Error("Teardown action failed", zap.Error(err))
		return err
	}
	g.logger.Debug("Dispose finished")
	return nil
}

// Done is closed once the action has completed.
func (g *Gate[T]) Done() <-chan struct{} {
	return g.done
}

// TryUpdateContext returns false once Dispose has claimed the context.
// fn may be called more than once under contention.
func (g *Gate[T]) TryUpdateContext(fn func(value T) T) bool {
	return g.cell.TryUpdate(fn)
}

// Context ...
func (g *Gate[T]) Context() (T, bool) {
	return g.cell.Load()
}

// IsDisposeStarted ...
func (g *Gate[T]) IsDisposeStarted() bool {
	return g.cell.IsEmpty()
}

// IsDisposed reports whether the action has completed.
func (g *Gate[T]) IsDisposed() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// IsDisposing ...
func (g *Gate[T]) IsDisposing() bool {
	return g.IsDisposeStarted() && !g.IsDisposed()
}

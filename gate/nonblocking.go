package gate

import (
	"go.uber.org/zap"
)

// Nonblocking runs a teardown action exactly once over a context.
// Unlike Gate, calls that lose the race return immediately without waiting for the action.
type Nonblocking[T any] struct {
	cell   Cell[T]
	action func(T) error
	logger *zap.Logger
}

// NewNonblocking ...
func NewNonblocking[T any](value T, action func(value T) error, options ...Option) *Nonblocking[T] {
	g := &Nonblocking[T]{
		action: action,
		logger: newLogger(computeGateOptions(options...)),
	}
	g.cell.box.Store(&cellBox[T]{value: value})
	return g
}

// Dispose returns the action's error to the caller that ran it and nil to everyone else.
func (g *Nonblocking[T]) Dispose() error {
	value, ok := g.cell.TakeAndClear()
	if !ok {
		return nil
	}

	g.logger.Debug("Dispose started")

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r == nil {
			g.logger.Error("Teardown action exited its goroutine")
			return
		}
		g.logger.Error("Teardown action panicked", zap.Any("panic", r))
		panic(r)
	}()

	var err error
	if g.action != nil {
		err = newTeardownError(g.action(value))
	}
	completed = true

	if err != nil {
		g.logger.Error("Teardown action failed", zap.Error(err))
		return err
	}
	g.logger.Debug("Dispose finished")
	return nil
}

// TryUpdateContext ...
func (g *Nonblocking[T]) TryUpdateContext(fn func(value T) T) bool {
	return g.cell.TryUpdate(fn)
}

// Context ...
func (g *Nonblocking[T]) Context() (T, bool) {
	return g.cell.Load()
}

// IsDisposeStarted ...
func (g *Nonblocking[T]) IsDisposeStarted() bool {
	return g.cell.IsEmpty()
}

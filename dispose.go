// Package dispose provides thread-safe, exactly-once teardown helpers
// built on package gate. Multicast teardowns run their members in LIFO order,
// the reverse of the order in which they were added.
package dispose

import (
	"context"
)

//go:generate moq -out disposer_mocks_test.go . Disposer

// Disposer ...
type Disposer interface {
	Dispose() error
}

// Properties reports where a disposable is in its lifecycle.
type Properties interface {
	IsDisposeStarted() bool
	IsDisposed() bool
	IsDisposing() bool
}

// AsyncFunc is a teardown delegate that may block until ctx is done.
type AsyncFunc func(ctx context.Context) error

type noop struct{}

func (noop) Dispose() error { return nil }

// Noop is a Disposer that does nothing.
var Noop Disposer = noop{}

// ToAsync ...
func ToAsync(d Disposer) AsyncFunc {
	return func(context.Context) error {
		return d.Dispose()
	}
}

package dispose

import (
	"context"
)

// AsyncCollection disposes a set of AsyncFunc items exactly once.
// Unlike Async, its default policy is Concurrent.
type AsyncCollection struct {
	async *Async
}

var _ Properties = &AsyncCollection{}

// NewAsyncCollection ignores nil items. Pass WithPolicy(Serial) to dispose
// the items one at a time in LIFO order.
func NewAsyncCollection(items []AsyncFunc, options ...Option) *AsyncCollection {
	opts := computeDisposeOptions(append([]Option{WithPolicy(Concurrent)}, options...)...)

	list := make([]AsyncFunc, 0, len(items))
	for _, item := range items {
		if item != nil {
			list = append(list, item)
		}
	}
	return &AsyncCollection{
		async: newAsync(list, opts),
	}
}

// Add has the same semantics as Async.Add.
func (c *AsyncCollection) Add(ctx context.Context, item AsyncFunc) error {
	return c.async.Add(ctx, item)
}

// Abandon removes every item from the collection without disposing them and returns them in the order they were added.
// It returns nil if the collection has already started disposing.
func (c *AsyncCollection) Abandon() []AsyncFunc {
	return c.async.abandon()
}

// Dispose ...
func (c *AsyncCollection) Dispose(ctx context.Context) error {
	return c.async.Dispose(ctx)
}

// IsDisposeStarted ...
func (c *AsyncCollection) IsDisposeStarted() bool {
	return c.async.IsDisposeStarted()
}

// IsDisposed ...
func (c *AsyncCollection) IsDisposed() bool {
	return c.async.IsDisposed()
}

// IsDisposing ...
func (c *AsyncCollection) IsDisposing() bool {
	return c.async.IsDisposing()
}

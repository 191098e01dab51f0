package dispose

import (
	"go.uber.org/multierr"

	"github.com/QuangTung97/dispose/gate"
)

// Collection disposes a set of Disposers exactly once, in LIFO order.
type Collection struct {
	gate *gate.Gate[[]Disposer]
}

var _ Disposer = &Collection{}
var _ Properties = &Collection{}

// NewCollection ignores nil items.
func NewCollection(items []Disposer, options ...Option) *Collection {
	opts := computeDisposeOptions(options...)

	list := make([]Disposer, 0, len(items))
	for _, item := range items {
		if item != nil {
			list = append(list, item)
		}
	}
	return &Collection{
		gate: gate.New(list, disposeAll, opts.gateOptions()...),
	}
}

func disposeAll(items []Disposer) error {
	var err error
	for i := len(items) - 1; i >= 0; i-- {
		err = multierr.Append(err, items[i].Dispose())
	}
	return err
}

// Add disposes item immediately, after waiting for the collection's disposal, if the collection has already started disposing.
func (c *Collection) Add(item Disposer) error {
	if item == nil {
		return nil
	}
	if c.gate.TryUpdateContext(func(items []Disposer) []Disposer {
		return appendCopy(items, item)
	}) {
		return nil
	}

	_ = c.gate.Dispose()
	return item.Dispose()
}

// Abandon removes every item from the collection without disposing them and returns them in the order they were added.
// It returns nil if the collection has already started disposing.
func (c *Collection) Abandon() []Disposer {
	var result []Disposer
	ok := c.gate.TryUpdateContext(func(items []Disposer) []Disposer {
		result = items
		return nil
	})
	if !ok {
		return nil
	}
	return result
}

// Dispose ...
func (c *Collection) Dispose() error {
	return c.gate.Dispose()
}

// IsDisposeStarted ...
func (c *Collection) IsDisposeStarted() bool {
	return c.gate.IsDisposeStarted()
}

// IsDisposed ...
func (c *Collection) IsDisposed() bool {
	return c.gate.IsDisposed()
}

// IsDisposing ...
func (c *Collection) IsDisposing() bool {
	return c.gate.IsDisposing()
}

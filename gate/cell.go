package gate

import (
	"go.uber.org/atomic"
)

type cellBox[T any] struct {
	value T
}

// Cell is a single atomic slot. It starts Present and, once taken, stays Empty forever.
type Cell[T any] struct {
	box atomic.Pointer[cellBox[T]]
}

// NewCell ...
func NewCell[T any](v T) *Cell[T] {
	c := &Cell[T]{}
	c.box.Store(&cellBox[T]{value: v})
	return c
}

// TakeAndClear atomically empties the cell and returns the previous value.
// Only one caller ever receives ok == true.
func (c *Cell[T]) TakeAndClear() (v T, ok bool) {
	b := c.box.Swap(nil)
	if b == nil {
		return v, false
	}
	return b.value, true
}

// TryUpdate replaces the value with fn(value) if the cell is not yet empty.
// fn may be called more than once when several goroutines update concurrently,
// only the result of the last call is stored.
func (c *Cell[T]) TryUpdate(fn func(v T) T) bool {
	for {
		prev := c.box.Load()
		if prev == nil {
			return false
		}

		next := &cellBox[T]{value: fn(prev.value)}
		if c.box.CompareAndSwap(prev, next) {
			return true
		}
	}
}

// Load ...
func (c *Cell[T]) Load() (v T, ok bool) {
	b := c.box.Load()
	if b == nil {
		return v, false
	}
	return b.value, true
}

// IsEmpty ...
func (c *Cell[T]) IsEmpty() bool {
	return c.box.Load() == nil
}

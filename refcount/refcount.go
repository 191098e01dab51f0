package refcount

import (
	"go.uber.org/atomic"
)

type targetBox[T any] struct {
	value T
}

// Counter is a reference count paired with the target it keeps alive.
// It starts at one and, once it reaches zero, stays at zero forever.
type Counter[T any] struct {
	count  atomic.Int32
	target atomic.Pointer[targetBox[T]]
}

// NewCounter returns a Counter with count = 1 referencing target.
func NewCounter[T any](target T) *Counter[T] {
	c := &Counter[T]{}
	c.target.Store(&targetBox[T]{value: target})
	c.count.Store(1)
	return c
}

// TryIncrementCount fails if the count has already reached zero.
func (c *Counter[T]) TryIncrementCount() bool {
	for {
		last := c.count.Load()
		if last == 0 {
			return false
		}
		if c.count.CompareAndSwap(last, last+1) {
			return true
		}
	}
}

// TryDecrementCount returns the target with ok = true to the one caller
// whose decrement brings the count to zero. Every other call returns false,
// including calls made after the count has reached zero.
func (c *Counter[T]) TryDecrementCount() (target T, ok bool) {
	for {
		last := c.count.Load()
		if last == 0 {
			return target, false
		}
		if !c.count.CompareAndSwap(last, last-1) {
			continue
		}
		if last != 1 {
			return target, false
		}

		b := c.target.Swap(nil)
		if b == nil {
			return target, false
		}
		return b.value, true
	}
}

// TryGetTarget is a point-in-time observation: the target may be released right after it returns.
func (c *Counter[T]) TryGetTarget() (target T, ok bool) {
	b := c.target.Load()
	if c.count.Load() == 0 || b == nil {
		return target, false
	}
	return b.value, true
}

// Count ...
func (c *Counter[T]) Count() int32 {
	return c.count.Load()
}

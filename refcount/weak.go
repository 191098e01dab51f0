package refcount

import (
	"weak"
)

// WeakHandle observes a target without keeping it alive: it never changes when the target is released.
// A WeakHandle is live only while the count has not reached zero.
type WeakHandle[T any] struct {
	ptr weak.Pointer[sharedCounter]
}

// TryAddReference upgrades to a strong Handle. It returns false after the target has been released.
func (w *WeakHandle[T]) TryAddReference() (*Handle[T], bool) {
	s := w.ptr.Value()
	if s == nil {
		return nil, false
	}
	if !s.counter.TryIncrementCount() {
		return nil, false
	}
	return newHandle[T](s), true
}

// AddReference ...
func (w *WeakHandle[T]) AddReference() (*Handle[T], error) {
	result, ok := w.TryAddReference()
	if !ok {
		return nil, ErrAlreadyDisposed
	}
	return result, nil
}

// TryGetTarget ...
func (w *WeakHandle[T]) TryGetTarget() (T, bool) {
	var empty T

	s := w.ptr.Value()
	if s == nil {
		return empty, false
	}
	v, ok := s.counter.TryGetTarget()
	if !ok {
		return empty, false
	}
	return asTarget[T](v)
}

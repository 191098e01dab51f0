package refcount

// Cast adds a reference to the target of h viewed as U.
// It returns ErrInvalidCast without taking a reference if the target is not a U.
func Cast[U, T any](h *Handle[T]) (*Handle[U], error) {
	s, ok := h.shared()
	if !ok {
		return nil, ErrAlreadyDisposed
	}

	v, ok := s.counter.TryGetTarget()
	if !ok {
		return nil, ErrAlreadyDisposed
	}
	if _, ok := asTarget[U](v); !ok {
		return nil, ErrInvalidCast
	}

	if !s.counter.TryIncrementCount() {
		return nil, ErrAlreadyDisposed
	}
	return newHandle[U](s), nil
}

package gate

import (
	"errors"
	"fmt"
)

// ErrAlreadyDisposed is returned when an operation needs a context that has already been claimed by Dispose.
var ErrAlreadyDisposed = errors.New("gate: already disposed")

// ErrTeardownPanicked is wrapped by the TeardownError recorded when an action panics.
var ErrTeardownPanicked = errors.New("gate: teardown action panicked")

// ErrTeardownExited is wrapped by the TeardownError recorded when an action calls runtime.Goexit.
var ErrTeardownExited = errors.New("gate: teardown action exited its goroutine")

// TeardownError wraps the error returned by a teardown action.
type TeardownError struct {
	Err error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("gate: teardown failed: %v", e.Err)
}

// Unwrap ...
func (e *TeardownError) Unwrap() error {
	return e.Err
}

func newTeardownError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*TeardownError); ok {
		return err
	}
	return &TeardownError{Err: err}
}

func panicError(r interface{}) error {
	return &TeardownError{Err: fmt.Errorf("%w: %v", ErrTeardownPanicked, r)}
}

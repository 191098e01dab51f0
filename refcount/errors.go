package refcount

import (
	"errors"

	"github.com/QuangTung97/dispose/gate"
)

// ErrAlreadyDisposed is returned when the handle has started disposing or its target has been released.
var ErrAlreadyDisposed = gate.ErrAlreadyDisposed

// ErrInvalidCast ...
var ErrInvalidCast = errors.New("refcount: target is not of the requested type")

package refcount

import (
	"context"
	"runtime"
	"sync"
	"unsafe"
	"weak"

	"go.uber.org/zap"
)

type attachment struct {
	shared   weak.Pointer[sharedCounter]
	released bool
}

// Table attaches a counter to a pointer's identity, so that independent callers
// wrapping the same object share one count. The table holds neither the
// objects nor their counters: an entry is evicted once its object is unreachable.
//
// Eviction relies on runtime.AddCleanup, which may never run for tiny
// pointer-free objects such as a *int. Entries for those can stay in the
// table until the process exits.
type Table struct {
	logger *zap.Logger

	mu      sync.Mutex
	entries map[any]*attachment // key is weak.Pointer[T]
}

// NewTable ...
func NewTable(options ...Option) *Table {
	opts := computeRefcountOptions(options...)
	return &Table{
		logger:  opts.logger,
		entries: map[any]*attachment{},
	}
}

// Attach returns a Handle over the counter attached to target, creating the counter if necessary.
// Once that counter has reached zero, Attach returns ErrAlreadyDisposed for as long as target is reachable.
//
// Only heap objects can be attached. A nil target, a pointer to a zero-size value
// or a pointer to a package-level variable gets a new unattached counter on every call.
func Attach[T any](t *Table, target *T, release func(target *T) error) (*Handle[*T], error) {
	return AttachContext(t, target, withoutContext(release))
}

// TryAttach ...
func TryAttach[T any](t *Table, target *T, release func(target *T) error) (*Handle[*T], bool) {
	return TryAttachContext(t, target, withoutContext(release))
}

// AttachContext is like Attach with a release function that receives the context of the disposing call.
func AttachContext[T any](
	t *Table, target *T, release func(ctx context.Context, target *T) error,
) (*Handle[*T], error) {
	h, ok := TryAttachContext(t, target, release)
	if !ok {
		return nil, ErrAlreadyDisposed
	}
	return h, nil
}

// TryAttachContext ...
func TryAttachContext[T any](
	t *Table, target *T, release func(ctx context.Context, target *T) error,
) (*Handle[*T], bool) {
	if target == nil {
		return NewContext[*T](nil, nil, WithLogger(t.logger)), true
	}
	if !isHeapObject(target) {
		t.logger.Debug("Target is not a heap object, created unattached counter")
		return NewContext(target, release, WithLogger(t.logger)), true
	}

	key := weak.Make(target)

	t.mu.Lock()
	defer t.mu.Unlock()

	e, existed := t.entries[key]
	if existed {
		if e.released {
			return nil, false
		}
		if s := e.shared.Value(); s != nil {
			if !s.counter.TryIncrementCount() {
				return nil, false
			}
			t.logger.Debug("Attached to existing counter")
			return newHandle[*T](s), true
		}
	} else {
		e = &attachment{}
		t.entries[key] = e
		runtime.AddCleanup(target, func(k weak.Pointer[T]) {
			t.evict(k)
		}, key)
	}

	s := &sharedCounter{
		counter: NewCounter[any](target),
		logger:  t.logger,
	}
	s.release = func(ctx context.Context, v any) error {
		t.markReleased(key)
		if release == nil {
			return nil
		}
		p, _ := v.(*T)
		return release(ctx, p)
	}
	e.shared = weak.Make(s)

	t.logger.Debug("Created counter")
	return newHandle[*T](s), true
}

// isHeapObject reports whether weak pointers and cleanups can track target.
// Zero-size values share one address and package-level variables are never
// collected, and the runtime aborts when asked to track either of them.
func isHeapObject[T any](target *T) bool {
	if unsafe.Sizeof(*target) == 0 {
		return false
	}

	// AddCleanup returns the zero Cleanup for pointers outside the heap.
	c := runtime.AddCleanup(target, func(int) {}, 0)
	if c == (runtime.Cleanup{}) {
		return false
	}
	c.Stop()
	return true
}

func (t *Table) markReleased(key any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, existed := t.entries[key]
	if existed {
		e.released = true
	}
}

func (t *Table) evict(key any) {
	t.mu.Lock()
	delete(t.entries, key)
	t.mu.Unlock()

	t.logger.Debug("Evicted unreachable target")
}

// Len returns the number of entries, including released targets that are still reachable.
// Entries of tiny pointer-free objects may never be evicted, see Table.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

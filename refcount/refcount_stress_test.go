package refcount

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle_Stress_Test(t *testing.T) {
	var calls uint32
	release := func(int) error {
		atomic.AddUint32(&calls, 1)
		return nil
	}

	var mu sync.Mutex
	current := New(20, release)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()

		for i := 0; i < 10000; i++ {
			next := New(30, release)

			mu.Lock()
			prev := current
			current = next
			mu.Unlock()

			_ = prev.Dispose()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			mu.Lock()
			w, ok := current.TryAddWeakReference()
			mu.Unlock()
			if !ok {
				continue
			}

			tmp, ok := w.TryAddReference()
			if ok {
				_ = tmp.Dispose()
			}
		}
	}()

	wg.Wait()
	_ = current.Dispose()

	assert.Equal(t, uint32(10001), atomic.LoadUint32(&calls))
}

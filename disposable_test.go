package dispose

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestDisposable_Dispose(t *testing.T) {
	calls := 0
	d := New(func() error {
		calls++
		return nil
	})

	assert.Equal(t, false, d.IsDisposeStarted())

	assert.Equal(t, nil, d.Dispose())
	assert.Equal(t, nil, d.Dispose())
	assert.Equal(t, 1, calls)

	assert.Equal(t, true, d.IsDisposeStarted())
	assert.Equal(t, true, d.IsDisposed())
	assert.Equal(t, false, d.IsDisposing())
}

func TestDisposable_Nil(t *testing.T) {
	d := New(nil)
	assert.Equal(t, nil, d.Dispose())
	assert.Equal(t, true, d.IsDisposed())
}

func TestDisposable_Add_Runs_In_LIFO_Order(t *testing.T) {
	var order []string
	d := New(func() error {
		order = append(order, "first")
		return nil
	})

	assert.Equal(t, nil, d.Add(func() error {
		order = append(order, "second")
		return nil
	}))
	assert.Equal(t, nil, d.Add(nil))
	assert.Equal(t, nil, d.Add(func() error {
		order = append(order, "third")
		return nil
	}))

	assert.Equal(t, nil, d.Dispose())
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestDisposable_Add_After_Dispose(t *testing.T) {
	var order []string
	d := New(func() error {
		order = append(order, "first")
		return nil
	})
	_ = d.Dispose()

	err := d.Add(func() error {
		order = append(order, "late")
		return errors.New("late error")
	})
	assert.Equal(t, errors.New("late error"), err)
	assert.Equal(t, []string{"first", "late"}, order)
}

func TestDisposable_Errors_Are_Combined(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	calls := 0
	d := New(func() error {
		calls++
		return err1
	})
	_ = d.Add(func() error {
		calls++
		return nil
	})
	_ = d.Add(func() error {
		calls++
		return err2
	})

	err := d.Dispose()
	assert.Equal(t, 3, calls)
	assert.True(t, errors.Is(err, err1))
	assert.True(t, errors.Is(err, err2))
	assert.Equal(t, 2, len(multierr.Errors(errors.Unwrap(err))))
}

func TestDisposable_Concurrent_Add_And_Dispose(t *testing.T) {
	for round := 0; round < 100; round++ {
		var mu sync.Mutex
		calls := 0
		inc := func() error {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil
		}

		d := New(inc)

		const numGoroutines = 8
		var wg sync.WaitGroup
		wg.Add(numGoroutines + 1)
		for i := 0; i < numGoroutines; i++ {
			go func() {
				defer wg.Done()
				_ = d.Add(inc)
			}()
		}
		go func() {
			defer wg.Done()
			_ = d.Dispose()
		}()
		wg.Wait()

		assert.Equal(t, numGoroutines+1, calls)
	}
}

package gate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_TakeAndClear(t *testing.T) {
	c := NewCell(10)

	v, ok := c.TakeAndClear()
	assert.Equal(t, true, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, true, c.IsEmpty())

	v, ok = c.TakeAndClear()
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, v)
}

func TestCell_Zero_Value_Is_Empty(t *testing.T) {
	var c Cell[string]

	assert.Equal(t, true, c.IsEmpty())
	assert.Equal(t, false, c.TryUpdate(func(v string) string { return v + "a" }))

	_, ok := c.Load()
	assert.Equal(t, false, ok)
}

func TestCell_TryUpdate(t *testing.T) {
	c := NewCell([]int{1})

	ok := c.TryUpdate(func(v []int) []int {
		return append(v[:len(v):len(v)], 2)
	})
	assert.Equal(t, true, ok)

	v, ok := c.Load()
	assert.Equal(t, true, ok)
	assert.Equal(t, []int{1, 2}, v)
}

func TestCell_TryUpdate_After_Take(t *testing.T) {
	c := NewCell(10)
	c.TakeAndClear()

	calls := 0
	ok := c.TryUpdate(func(v int) int {
		calls++
		return v + 1
	})
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, calls)
}

func TestCell_TryUpdate_Concurrent(t *testing.T) {
	c := NewCell(0)

	const numGoroutines = 8
	const numUpdates = 10000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numUpdates; j++ {
				c.TryUpdate(func(v int) int { return v + 1 })
			}
		}()
	}
	wg.Wait()

	v, ok := c.TakeAndClear()
	assert.Equal(t, true, ok)
	assert.Equal(t, numGoroutines*numUpdates, v)
}

func TestCell_Only_One_Taker(t *testing.T) {
	for round := 0; round < 100; round++ {
		c := NewCell(round)

		const numGoroutines = 10
		results := make([]bool, numGoroutines)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			i := i
			go func() {
				defer wg.Done()
				_, results[i] = c.TakeAndClear()
			}()
		}
		wg.Wait()

		taken := 0
		for _, ok := range results {
			if ok {
				taken++
			}
		}
		assert.Equal(t, 1, taken)
	}
}

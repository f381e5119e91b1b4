package membercount

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_AdjustRequiresEntry(t *testing.T) {
	t.Parallel()

	cache := NewCache()

	_, ok := cache.Increment(1)
	assert.False(t, ok)
	_, ok = cache.Get(1)
	assert.False(t, ok, "increment must not create an entry")

	cache.Set(1, 10, time.Now())
	count, ok := cache.Increment(1)
	assert.True(t, ok)
	assert.Equal(t, 11, count)

	count, ok = cache.Decrement(1)
	assert.True(t, ok)
	assert.Equal(t, 10, count)
}

func TestCache_DecrementStopsAtZero(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.Set(1, 0, time.Now())

	count, ok := cache.Decrement(1)
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestCache_Delete(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.Set(1, 5, time.Now())
	cache.Delete(1)

	_, ok := cache.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_ConcurrentAdjustments(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	cache.Set(1, 1000, time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.Increment(1)
		}()
		go func() {
			defer wg.Done()
			cache.Decrement(1)
		}()
	}
	wg.Wait()

	entry, _ := cache.Get(1)
	assert.Equal(t, 1000, entry.HumanCount)
}

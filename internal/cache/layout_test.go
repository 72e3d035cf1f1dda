package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutCache_SetAndGet(t *testing.T) {
	cache := NewLayoutCache()

	cache.Set("session", 42)

	id, ok := cache.Get("session")
	require.True(t, ok, "expected to find session")
	assert.Equal(t, uint(42), id)

	_, ok = cache.Get("nonexistent")
	assert.False(t, ok)
}

func TestLayoutCache_Overwrite(t *testing.T) {
	cache := NewLayoutCache()
	cache.Set("session", 1)
	cache.Set("session", 2)

	id, _ := cache.Get("session")
	assert.Equal(t, uint(2), id)
}

func TestLayoutCache_Delete(t *testing.T) {
	cache := NewLayoutCache()
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)

	cache.Delete("missing")
}

func TestLayoutCache_Names(t *testing.T) {
	cache := NewLayoutCache()
	cache.Set("zeta", 3)
	cache.Set("alpha", 1)
	cache.Set("mid", 2)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, cache.Names())
}

func TestLayoutCache_Reset(t *testing.T) {
	cache := NewLayoutCache()
	cache.Set("a", 1)
	cache.Reset()

	assert.Empty(t, cache.Names())
}

func TestLayoutCache_Concurrent(t *testing.T) {
	cache := NewLayoutCache()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("layout-%d", i)
			cache.Set(name, uint(i))
			cache.Get(name)
		}(i)
	}
	wg.Wait()

	assert.Len(t, cache.Names(), 50)
}

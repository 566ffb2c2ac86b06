package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_SetGet(t *testing.T) {
	c := NewBounded[string, int](4, nil)

	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestBounded_CapacityNeverExceeded(t *testing.T) {
	c := NewBounded[int, int](3, nil)

	for i := 0; i < 100; i++ {
		c.Set(i, i)
		assert.LessOrEqual(t, c.Len(), 3)
	}
	assert.Equal(t, 3, c.Len())
}

func TestBounded_GetRefreshesRecency(t *testing.T) {
	var evicted []string
	c := NewBounded[string, string](2, func(v string) {
		evicted = append(evicted, v)
	})

	c.Set("a", "A")
	c.Set("b", "B")

	// Touching a makes b the least-recently-used entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", "C")

	assert.Equal(t, []string{"B"}, evicted)
	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	assert.True(t, c.Has("c"))
}

func TestBounded_HasDoesNotRefreshRecency(t *testing.T) {
	c := NewBounded[string, string](2, nil)

	c.Set("a", "A")
	c.Set("b", "B")

	require.True(t, c.Has("a"))
	c.Set("c", "C")

	// a stayed least-recently-used despite the Has probe.
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))
}

func TestBounded_OverwriteEvictsOldValue(t *testing.T) {
	var evicted []int
	c := NewBounded[string, int](4, func(v int) {
		evicted = append(evicted, v)
	})

	c.Set("a", 1)
	c.Set("a", 2)

	assert.Equal(t, []int{1}, evicted)
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestBounded_EvictHookFiresExactlyOncePerRemoval(t *testing.T) {
	counts := make(map[int]int)
	c := NewBounded[int, int](2, func(v int) {
		counts[v]++
	})

	for i := 0; i < 10; i++ {
		c.Set(i, i)
	}
	c.Clear()

	for v, n := range counts {
		assert.Equalf(t, 1, n, "value %d evicted %d times", v, n)
	}
	assert.Len(t, counts, 10)
}

func TestBounded_Remove(t *testing.T) {
	var evicted []int
	c := NewBounded[string, int](4, func(v int) {
		evicted = append(evicted, v)
	})

	c.Set("a", 1)

	assert.True(t, c.Remove("a"))
	assert.Equal(t, []int{1}, evicted)
	assert.Equal(t, 0, c.Len())

	// Removing an absent key is a no-op.
	assert.False(t, c.Remove("a"))
	assert.Len(t, evicted, 1)
}

func TestBounded_TakeSkipsEvictHook(t *testing.T) {
	var evicted []int
	c := NewBounded[string, int](4, func(v int) {
		evicted = append(evicted, v)
	})

	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Take("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Empty(t, evicted)
	assert.False(t, c.Has("a"))
	assert.Equal(t, 1, c.Len())

	// Taking an absent key is a no-op.
	_, ok = c.Take("a")
	assert.False(t, ok)
}

func TestBounded_SetMaxSizeShrinkEvictsOldestFirst(t *testing.T) {
	var evicted []string
	c := NewBounded[string, string](4, func(v string) {
		evicted = append(evicted, v)
	})

	c.Set("a", "A")
	c.Set("b", "B")
	c.Set("c", "C")
	c.Set("d", "D")

	c.SetMaxSize(2)

	assert.Equal(t, []string{"A", "B"}, evicted)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("c"))
	assert.True(t, c.Has("d"))
}

func TestBounded_SetMaxSizeGrowKeepsEntries(t *testing.T) {
	c := NewBounded[string, int](2, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	c.SetMaxSize(10)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 10, c.MaxSize())
}

func TestBounded_ZeroCapacityRetainsNothing(t *testing.T) {
	var evicted []int
	c := NewBounded[string, int](0, func(v int) {
		evicted = append(evicted, v)
	})

	c.Set("a", 1)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []int{1}, evicted)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestBounded_Filter(t *testing.T) {
	var evicted []int
	c := NewBounded[int, int](8, func(v int) {
		evicted = append(evicted, v)
	})

	for i := 0; i < 6; i++ {
		c.Set(i, i)
	}

	c.Filter(func(v int) bool { return v%2 == 0 })

	assert.Equal(t, 3, c.Len())
	assert.ElementsMatch(t, []int{1, 3, 5}, evicted)
	for i := 0; i < 6; i += 2 {
		assert.True(t, c.Has(i))
	}
}

func TestBounded_Clear(t *testing.T) {
	var evicted []int
	c := NewBounded[int, int](8, func(v int) {
		evicted = append(evicted, v)
	})

	for i := 0; i < 5; i++ {
		c.Set(i, i)
	}
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Len(t, evicted, 5)

	// Cache stays usable after Clear.
	c.Set(42, 42)
	assert.Equal(t, 1, c.Len())
}

func TestBounded_EvictionOrderIsStrictLRU(t *testing.T) {
	var evicted []string
	c := NewBounded[int, string](3, func(v string) {
		evicted = append(evicted, v)
	})

	for i := 0; i < 6; i++ {
		c.Set(i, fmt.Sprintf("v%d", i))
	}

	assert.Equal(t, []string{"v0", "v1", "v2"}, evicted)
}

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathCacheInsertionOrderEviction(t *testing.T) {
	c := NewPathCache(2)
	a, b, d := Point{0, 0}, Point{1, 0}, Point{2, 0}

	c.Put(a, b, []Point{a, b})
	c.Put(a, d, []Point{a, b, d})

	// 读取不影响淘汰顺序
	_, ok := c.Get(a, b)
	assert.True(t, ok)

	c.Put(b, d, []Point{b, d})
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(a, b)
	assert.False(t, ok, "oldest insertion is evicted even if recently read")
	_, ok = c.Get(a, d)
	assert.True(t, ok)
}

func TestPathCacheOverwriteKeepsSlot(t *testing.T) {
	c := NewPathCache(2)
	a, b := Point{0, 0}, Point{1, 0}

	c.Put(a, b, nil)
	c.Put(a, b, []Point{a, b})
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get(a, b)
	assert.True(t, ok)
	assert.Equal(t, []Point{a, b}, got)
}

func TestPathCacheKeyIsDirectional(t *testing.T) {
	c := NewPathCache(4)
	a, b := Point{0, 0}, Point{3, 0}
	c.Put(a, b, []Point{a, b})

	_, ok := c.Get(b, a)
	assert.False(t, ok)
}

func TestPathCacheClear(t *testing.T) {
	c := NewPathCache(4)
	c.Put(Point{0, 0}, Point{1, 0}, nil)
	c.Put(Point{0, 0}, Point{2, 0}, nil)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(Point{0, 0}, Point{1, 0})
	assert.False(t, ok)

	c.Put(Point{0, 0}, Point{1, 0}, nil)
	assert.Equal(t, 1, c.Len())
}

func TestPathCacheDisabled(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		c := NewPathCache(capacity)
		c.Put(Point{0, 0}, Point{1, 0}, nil)
		assert.Equal(t, 0, c.Len())
	}
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache_Eviction(t *testing.T) {
	c := NewLRUCache[string](2, time.Hour)

	c.Set("1", "a")
	c.Set("2", "b")
	_, _ = c.Get("1") // 2 is now least recently used
	c.Set("3", "c")

	_, ok := c.Get("2")
	assert.False(t, ok)
	v, ok := c.Get("1")
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, c.Size())
}

func TestLRUCache_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewLRUCache[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("a", 1)
	c.Set("b", 2)
	now = now.Add(30 * time.Second)
	c.Set("b", 3) // refreshes expiry

	now = now.Add(45 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)

	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, 1, c.Size(), "expired entries are dropped on read")

	now = now.Add(time.Minute)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}

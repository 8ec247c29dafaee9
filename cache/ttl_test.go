package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGetReturnsValueUntilExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string, int](time.Minute, 0)
	defer c.Close()
	c.now = func() time.Time { return now }

	c.Set("table", 42)

	v, ok := c.Get("table")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	now = now.Add(59 * time.Second)
	_, ok = c.Get("table")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("table")
	assert.False(t, ok, "entry must expire exactly at ttl")
}

func TestRemoveExpiredOnlyDropsStaleEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string, string](time.Minute, 0)
	defer c.Close()
	c.now = func() time.Time { return now }

	c.Set("old", "a")
	now = now.Add(30 * time.Second)
	c.Set("new", "b")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, c.removeExpired())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := New[int, string](time.Hour, 0)
	defer c.Close()

	c.Set(1, "a")
	c.Set(2, "b")
	c.Delete(1)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCloseStopsJanitor(t *testing.T) {
	c := New[string, int](time.Millisecond, time.Millisecond)
	c.Set("x", 1)
	c.Close()
	c.Close()
}

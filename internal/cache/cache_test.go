package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeCache_SetGetDel(t *testing.T) {
	c := NewFreeCache(1)

	_, err := c.Get("workouts||u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set("workouts||u1", []byte(`[{"id":"w1"}]`), time.Minute))
	value, err := c.Get("workouts||u1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"w1"}]`, string(value))
	assert.Equal(t, int64(1), c.EntryCount())

	assert.True(t, c.Del("workouts||u1"))
	assert.False(t, c.Del("workouts||u1"))
	_, err = c.Get("workouts||u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFreeCache_Clear(t *testing.T) {
	c := NewFreeCache(1)
	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Set("b", []byte("2"), 0))

	c.Clear()
	assert.Equal(t, int64(0), c.EntryCount())
	_, err := c.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFreeCache_ValueTooLarge(t *testing.T) {
	c := NewFreeCache(1)
	// a single entry may take at most 1/1024 of the cache
	err := c.Set("big", []byte(strings.Repeat("x", 4096)), time.Minute)
	assert.Error(t, err)
}

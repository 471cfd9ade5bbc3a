package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

var ErrNotFound = errors.New("not found in cache")

type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string) bool
	Clear()
}

var _ Cache = (*FreeCache)(nil)

type FreeCache struct {
	cache *freecache.Cache
}

// NewFreeCache creates a cache holding at most sizeMegabytes of entries.
// freecache enforces a minimum of 512KB.
func NewFreeCache(sizeMegabytes int) *FreeCache {
	megabyte := 1024 * 1024
	return &FreeCache{
		cache: freecache.NewCache(sizeMegabytes * megabyte),
	}
}

func (c *FreeCache) Get(key string) ([]byte, error) {
	value, err := c.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. A zero ttl means the entry never expires,
// but it can still be evicted when the cache is full.
func (c *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	expireSeconds := int(ttl.Seconds())
	if ttl > 0 && expireSeconds == 0 {
		expireSeconds = 1
	}
	if err := c.cache.Set([]byte(key), value, expireSeconds); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *FreeCache) Del(key string) bool {
	return c.cache.Del([]byte(key))
}

func (c *FreeCache) Clear() {
	c.cache.Clear()
}

func (c *FreeCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

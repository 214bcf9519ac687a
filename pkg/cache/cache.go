package cache

import (
	"sync"
	"time"
)

// Cache is the explicit caching collaborator used by read-heavy services.
// Policy (key, TTL) is visible at the call site instead of being hidden
// behind a decorator.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found, nil and false otherwise.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the specified TTL.
	Set(key string, value interface{}, ttl time.Duration)

	// GetOrCompute returns the cached value for key, or runs compute and
	// caches its result for ttl. The compute function is only called when
	// the key is absent or expired.
	GetOrCompute(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error)

	// Delete removes a specific key from the cache.
	Delete(key string)

	// Clear removes all items from the cache.
	Clear()

	// Stop shuts down the cache's cleanup goroutine.
	Stop()
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

func (item *cacheItem) isExpired() bool {
	return time.Now().After(item.expiration)
}

// InMemoryCache is a thread-safe in-memory cache with background cleanup.
type InMemoryCache struct {
	items           map[string]*cacheItem
	mu              sync.RWMutex
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// NewInMemoryCache creates an in-memory cache. cleanupInterval determines
// how often expired items are removed.
func NewInMemoryCache(cleanupInterval time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		items:           make(map[string]*cacheItem),
		cleanupInterval: cleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go c.startCleanup()

	return c
}

func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || item.isExpired() {
		return nil, false
	}
	return item.value, true
}

func (c *InMemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

func (c *InMemoryCache) GetOrCompute(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error) {
	if value, found := c.Get(key); found {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.Set(key, value, ttl)
	return value, nil
}

func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
}

func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *InMemoryCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *InMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, item := range c.items {
		if item.isExpired() {
			delete(c.items, key)
		}
	}
}

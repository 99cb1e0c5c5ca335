package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value      V
	expiration time.Time
}

// Cache is a thread-safe in-memory TTL cache keyed by any comparable type.
// A TTL of zero or less disables expiry.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]item[V]
	ttl  time.Duration
}

// New creates a cache whose entries live for ttl after each Put.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]item[V]),
		ttl:  ttl,
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	if c.expired(it, time.Now()) {
		c.mu.Lock()
		// re-check: a Put may have refreshed the entry meanwhile
		if cur, ok := c.data[key]; ok && c.expired(cur, time.Now()) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	return it.value, true
}

// Put inserts or overwrites key with a fresh TTL.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = item[V]{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

// Delete removes key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included until cleaned.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// StartCleaner periodically removes expired entries until stop is closed.
func (c *Cache[K, V]) StartCleaner(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-stop:
			return
		}
	}
}

func (c *Cache[K, V]) cleanupExpired() {
	now := time.Now()
	c.mu.Lock()
	for k, v := range c.data {
		if c.expired(v, now) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache[K, V]) expired(it item[V], now time.Time) bool {
	return c.ttl > 0 && now.After(it.expiration)
}

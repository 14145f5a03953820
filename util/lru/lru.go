// Package lru provides a typed, thread-safe LRU cache on top of github.com/hashicorp/golang-lru/simplelru with
// an additional GetOrCreate method that atomically retrieves a cached value or creates it if it does not yet
// exist.
package lru

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// Cache is a thread-safe fixed size LRU cache. A nil *Cache is valid and caches nothing at all.
type Cache[K comparable, V any] struct {
	lru  *simplelru.LRU
	lock sync.RWMutex
}

// Nil returns a cache that doesn't cache anything at all.
func Nil[K comparable, V any]() *Cache[K, V] {
	return nil
}

// New creates an LRU cache of the given size. The size is set to 1 if <= 0.
func New[K comparable, V any](size int) *Cache[K, V] {
	return NewWithEvict[K, V](size, nil)
}

// NewWithEvict constructs a fixed size cache with the given eviction callback.
func NewWithEvict[K comparable, V any](size int, onEvicted func(key K, value V)) *Cache[K, V] {
	if size <= 0 {
		size = 1
	}
	var evict simplelru.EvictCallback
	if onEvicted != nil {
		evict = func(key interface{}, value interface{}) {
			onEvicted(key.(K), value.(V))
		}
	}
	lru, _ := simplelru.NewLRU(size, evict)
	return &Cache[K, V]{lru: lru}
}

// Purge completely clears the cache.
func (c *Cache[K, V]) Purge() {
	if c == nil {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.lru.Purge()
}

// Add adds a value to the cache. Returns true if an eviction occurred.
func (c *Cache[K, V]) Add(key K, value V) bool {
	if c == nil {
		return false
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Add(key, value)
}

// Get looks up a key's value from the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	// need the write lock, since this updates the recently-used list in simplelru!
	c.lock.Lock()
	defer c.lock.Unlock()
	val, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	return val.(V), true
}

// GetOrCreate looks up a key's value from the cache, creating it with the given constructor if it does not
// exist. The write lock of the cache is held during the entire lookup and creation phase, so calls to the
// constructor are mutually exclusive and block all other operations of the cache until completed. If the
// constructor fails, no value is added and the error is returned. Otherwise the new value is added, and the
// returned boolean marks whether the addition evicted another entry.
func (c *Cache[K, V]) GetOrCreate(key K, constructor func() (V, error)) (val V, evicted bool, err error) {
	if c == nil {
		val, err = constructor()
		return val, false, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if cached, ok := c.lru.Get(key); ok {
		return cached.(V), false, nil
	}

	val, err = constructor()
	if err != nil {
		var zero V
		return zero, false, err
	}
	evicted = c.lru.Add(key, val)
	return val, evicted, nil
}

// Contains checks if a key is in the cache, without updating the recent-ness.
func (c *Cache[K, V]) Contains(key K) bool {
	if c == nil {
		return false
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.lru.Contains(key)
}

// Peek returns the key's value without updating the "recently used"-ness of the key.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	val, ok := c.lru.Peek(key)
	if !ok {
		return zero, false
	}
	return val.(V), true
}

// Remove removes the provided key from the cache.
func (c *Cache[K, V]) Remove(key K) {
	if c == nil {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.lru.Remove(key)
}

// Len returns the number of items in the cache.
func (c *Cache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.lru.Len()
}

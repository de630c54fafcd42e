// Package cache provides thread-safe generic caches for template data,
// static asset hashes and one-shot downloads.
package cache

import (
	"sync"
	"time"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Take removes the entry and returns it. Concurrent callers never both get it.
func (c *Cache[K, V]) Take(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.items[key]
	if ok {
		delete(c.items, key)
	}
	return val, ok
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

type entry[V any] struct {
	value   V
	expires time.Time
}

// Expiring drops entries older than its TTL on read. A non-positive TTL
// disables storage entirely.
type Expiring[K comparable, V any] struct {
	ttl   time.Duration
	now   func() time.Time
	items *Cache[K, entry[V]]
}

func NewExpiring[K comparable, V any](ttl time.Duration) *Expiring[K, V] {
	return &Expiring[K, V]{
		ttl:   ttl,
		now:   time.Now,
		items: NewCache[K, entry[V]](),
	}
}

func (e *Expiring[K, V]) Get(key K) (V, bool) {
	it, ok := e.items.Get(key)
	if !ok || !e.now().Before(it.expires) {
		var zero V
		return zero, false
	}
	return it.value, true
}

func (e *Expiring[K, V]) Set(key K, value V) {
	if e.ttl <= 0 {
		return
	}
	e.items.Set(key, entry[V]{value: value, expires: e.now().Add(e.ttl)})
}

// Take returns a live entry and removes it.
func (e *Expiring[K, V]) Take(key K) (V, bool) {
	it, ok := e.items.Take(key)
	if !ok || !e.now().Before(it.expires) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Sweep deletes every expired entry.
func (e *Expiring[K, V]) Sweep() {
	now := e.now()
	e.items.mu.Lock()
	defer e.items.mu.Unlock()
	for k, it := range e.items.items {
		if !now.Before(it.expires) {
			delete(e.items.items, k)
		}
	}
}

func (e *Expiring[K, V]) Len() int {
	return e.items.Len()
}

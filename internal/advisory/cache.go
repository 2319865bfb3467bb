package advisory

import (
	"fmt"
	"sync"

	"github.com/couchcryptid/garden-planner-service/internal/domain"
)

// CachedResolver wraps a Source with an in-memory LRU cache keyed by the
// normalized (state, city, month). The caller owns it and decides its size.
type CachedResolver struct {
	inner    Source
	cache    *lruCache
	onLookup func(hit bool)
}

// NewCachedResolver creates a cache decorator around a Source. onLookup, if
// non-nil, is told whether each lookup was served from the cache.
func NewCachedResolver(inner Source, maxEntries int, onLookup func(hit bool)) *CachedResolver {
	return &CachedResolver{
		inner:    inner,
		cache:    newLRUCache(maxEntries),
		onLookup: onLookup,
	}
}

// Resolve returns the advisory for a location and month.
func (c *CachedResolver) Resolve(state domain.StateCode, city string, month domain.MonthName) domain.AdvisoryRecord {
	rec, _ := c.Lookup(state, city, month)
	return rec
}

// Lookup returns a cached answer when present, otherwise asks the inner
// Source and remembers the result. Callers always get their own copy.
func (c *CachedResolver) Lookup(state domain.StateCode, city string, month domain.MonthName) (domain.AdvisoryRecord, Level) {
	key := fmt.Sprintf("%s|%s|%s", stateKey(state), cityKey(city), monthKey(month))
	if res, ok := c.cache.get(key); ok {
		c.observe(true)
		return res.record.Normalized(), res.level
	}
	c.observe(false)

	rec, level := c.inner.Lookup(state, city, month)
	norm := rec.Normalized()
	c.cache.put(key, result{record: norm, level: level})
	return norm.Normalized(), level
}

// Len returns the number of cached entries.
func (c *CachedResolver) Len() int {
	return c.cache.len()
}

func (c *CachedResolver) observe(hit bool) {
	if c.onLookup != nil {
		c.onLookup(hit)
	}
}

type result struct {
	record domain.AdvisoryRecord
	level  Level
}

// lruCache is a small thread-safe LRU cache of lookup results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value result
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return result{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	for len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}

package assdraw

import (
	"sync"
	"sync/atomic"
)

// defaultMorphCacheEntries is the default capacity of a MorphCache.
const defaultMorphCacheEntries = 64

// morphCacheKey identifies a memoized morph plan by the structural hash
// of both shape sets and the options that shaped the plan.
type morphCacheKey struct {
	source uint64
	target uint64
	params uint64
}

// morphCacheEntry is an internal cache entry.
type morphCacheEntry struct {
	key  morphCacheKey
	plan *morphPlan

	// prev and next for LRU doubly-linked list
	prev *morphCacheEntry
	next *morphCacheEntry
}

// MorphCache is a thread-safe LRU cache for morph plans. Preparing a
// morph decomposes both shape sets into polygons and solves a pairing
// assignment; when the same transition is sampled at many time values,
// the cache keeps that work from being repeated per sample.
//
// MorphCache is safe for concurrent use.
type MorphCache struct {
	mu sync.Mutex

	entries    map[morphCacheKey]*morphCacheEntry
	head       *morphCacheEntry
	tail       *morphCacheEntry
	maxEntries int
	count      int

	stats MorphCacheStats
}

// MorphCacheStats holds cache statistics.
type MorphCacheStats struct {
	Hits      atomic.Uint64
	Misses    atomic.Uint64
	Evictions atomic.Uint64
}

// NewMorphCache creates a morph plan cache holding up to maxEntries
// plans. A non-positive capacity uses the default.
func NewMorphCache(maxEntries int) *MorphCache {
	if maxEntries <= 0 {
		maxEntries = defaultMorphCacheEntries
	}
	return &MorphCache{
		entries:    make(map[morphCacheKey]*morphCacheEntry, maxEntries),
		maxEntries: maxEntries,
	}
}

// getOrCreate retrieves a cached plan or builds one with create.
func (c *MorphCache) getOrCreate(key morphCacheKey, create func() *morphPlan) *morphPlan {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.moveToFront(entry)
		plan := entry.plan
		c.mu.Unlock()
		c.stats.Hits.Add(1)
		return plan
	}
	c.mu.Unlock()
	c.stats.Misses.Add(1)

	// Built outside the lock; concurrent builders for the same key may
	// race but produce equivalent plans.
	plan := create()
	if plan == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		existing.plan = plan
		c.moveToFront(existing)
		return plan
	}
	for c.count >= c.maxEntries && c.tail != nil {
		c.removeTail()
		c.stats.Evictions.Add(1)
	}
	entry := &morphCacheEntry{key: key, plan: plan}
	c.entries[key] = entry
	c.addToFront(entry)
	c.count++
	return plan
}

// Clear removes all entries from the cache.
func (c *MorphCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[morphCacheKey]*morphCacheEntry, c.maxEntries)
	c.head = nil
	c.tail = nil
	c.count = 0
}

// Len returns the number of cached plans.
func (c *MorphCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Stats returns the hit, miss and eviction counters.
func (c *MorphCache) Stats() (hits, misses, evictions uint64) {
	return c.stats.Hits.Load(), c.stats.Misses.Load(), c.stats.Evictions.Load()
}

// addToFront adds an entry to the front of the LRU list.
func (c *MorphCache) addToFront(entry *morphCacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// moveToFront moves an entry to the front of the LRU list.
func (c *MorphCache) moveToFront(entry *morphCacheEntry) {
	if entry == c.head {
		return
	}
	c.remove(entry)
	c.addToFront(entry)
}

// remove unlinks an entry from the LRU list (does not delete from map).
func (c *MorphCache) remove(entry *morphCacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

// removeTail evicts the least recently used entry.
func (c *MorphCache) removeTail() {
	if c.tail == nil {
		return
	}
	entry := c.tail
	delete(c.entries, entry.key)
	c.remove(entry)
	c.count--
}

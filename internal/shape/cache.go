package shape

import (
	"sync"
	"sync/atomic"
)

// Policy selects when a cached mesh is regenerated.
type Policy int

const (
	// PolicyInvalidate regenerates a type's mesh whenever its parameters change.
	PolicyInvalidate Policy = iota
	// PolicyLegacy generates each type once and keeps it for the cache's
	// lifetime while it is non-empty, ignoring later parameter edits.
	PolicyLegacy
)

func (p Policy) String() string {
	if p == PolicyLegacy {
		return "legacy"
	}
	return "invalidate"
}

// Key identifies one tessellation result.
type Key struct {
	Type   Type
	Param1 int
	Param2 int
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Cache is a concurrency-safe mesh cache holding one mesh per primitive type.
type Cache struct {
	mu     sync.RWMutex
	policy Policy
	items  map[Type]*cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	key  Key
	mesh Mesh
}

// NewCache creates an empty cache with the given policy.
func NewCache(policy Policy) *Cache {
	return &Cache{
		policy: policy,
		items:  make(map[Type]*cacheEntry),
	}
}

// Policy returns the regeneration policy of the cache.
func (c *Cache) Policy() Policy {
	return c.policy
}

// Get returns the mesh for t at the given parameters, generating it if the
// cached entry is missing, empty or (under PolicyInvalidate) stale.
// The returned mesh is shared and must not be modified.
func (c *Cache) Get(t Type, param1, param2 int) Mesh {
	key := Key{Type: t, Param1: param1, Param2: param2}

	// Fast path: read lock
	c.mu.RLock()
	if e, ok := c.items[t]; ok && c.fresh(e, key) {
		c.mu.RUnlock()
		c.hits.Add(1)
		return e.mesh
	}
	c.mu.RUnlock()

	// Slow path: tessellate outside the lock
	mesh := Generate(t, param1, param2)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[t]; ok && c.fresh(e, key) {
		c.hits.Add(1)
		return e.mesh
	}
	c.items[t] = &cacheEntry{key: key, mesh: mesh}
	c.misses.Add(1)
	return mesh
}

// Key returns the parameters the cached mesh for t was generated with.
func (c *Cache) Key(t Type) (Key, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[t]
	if !ok {
		return Key{}, false
	}
	return e.key, true
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Cache) fresh(e *cacheEntry, key Key) bool {
	if len(e.mesh) == 0 {
		return false
	}
	return c.policy == PolicyLegacy || e.key == key
}

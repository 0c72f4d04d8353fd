package resolver

import "sync"

// Cacheable exposes the resolution cache of a resolver for diagnostics and
// tests. It is not part of the resolution contract.
type Cacheable interface {
	// AddToCache stores a resolved path under key, replacing any previous entry.
	AddToCache(key, path string)
	// GetFromCache returns the path stored under key. Empty entries count as misses.
	GetFromCache(key string) (string, bool)
	// ClearCache drops every cached path.
	ClearCache()
	// Cache returns a copy of the cached entries.
	Cache() map[string]string
}

// cacheable is embedded by every resolver strategy. It only ever holds paths
// that were verified to exist when they were added.
//
// generation counts ClearCache calls. A resolution reads it before probing
// and stores its result only if no clear happened in between, so a path found
// before an invalidation never lands in the cache after it.
type cacheable struct {
	mu         sync.Mutex
	generation uint64
	cache      Store[string]
}

func (c *cacheable) AddToCache(key, path string) {
	c.cache.Put(key, path)
}

// currentGeneration returns the generation a resolution should pass to
// addIfCurrent.
func (c *cacheable) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// addIfCurrent stores path under key unless the cache was cleared after gen
// was read. It reports whether the path was stored.
func (c *cacheable) addIfCurrent(gen uint64, key, path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.cache.Put(key, path)
	return true
}

func (c *cacheable) GetFromCache(key string) (string, bool) {
	path, ok := c.cache.Get(key)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

func (c *cacheable) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Clear()
}

func (c *cacheable) Cache() map[string]string {
	return c.cache.Snapshot()
}

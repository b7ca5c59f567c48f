package tablebase

// Cached wraps a prober with an in-memory map so hot probes skip the
// database. Eviction clears half the map once it fills up.
type Cached struct {
	inner   Prober
	cache   map[uint64]cachedResult
	maxSize int
	hits    uint64
	misses  uint64
}

type cachedResult struct {
	rec   Record
	found bool
}

// NewCached creates a cached prober with the given capacity.
func NewCached(inner Prober, size int) *Cached {
	if size <= 0 {
		size = 1 << 16
	}
	return &Cached{
		inner:   inner,
		cache:   make(map[uint64]cachedResult, size),
		maxSize: size,
	}
}

// Probe resolves the hash, consulting the map first. Misses are cached
// too: the search re-probes the same unresolved positions constantly.
func (c *Cached) Probe(hash uint64) (Record, bool) {
	if res, ok := c.cache[hash]; ok {
		c.hits++
		return res.rec, res.found
	}
	c.misses++

	rec, found := c.inner.Probe(hash)
	if len(c.cache) >= c.maxSize {
		dropped := 0
		for key := range c.cache {
			if dropped >= c.maxSize/2 {
				break
			}
			delete(c.cache, key)
			dropped++
		}
	}
	c.cache[hash] = cachedResult{rec: rec, found: found}
	return rec, found
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cached) HitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}

// Len returns the number of cached probes.
func (c *Cached) Len() int {
	return len(c.cache)
}

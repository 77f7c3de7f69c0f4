package metrics

import "sync/atomic"

// CacheMetric counts hits and misses of a named cache.
type CacheMetric struct {
	name   string
	hits   int64
	misses int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (c *CacheMetric) Hit() {
	if enabled {
		atomic.AddInt64(&c.hits, 1)
	}
}

// Miss records a cache miss.
func (c *CacheMetric) Miss() {
	if enabled {
		atomic.AddInt64(&c.misses, 1)
	}
}

// Name returns the metric name.
func (c *CacheMetric) Name() string {
	return c.name
}

// Stats returns a snapshot of the counters.
func (c *CacheMetric) Stats() CacheStats {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{Name: c.name, Hits: hits, Misses: misses, HitRate: rate}
}

// Reset clears the counters.
func (c *CacheMetric) Reset() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// CacheStats holds a snapshot of cache statistics.
type CacheStats struct {
	Name    string  `json:"name"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// FragmentCache tracks the markup compiler's per-root fragment cache.
var FragmentCache = newCacheMetric("fragment_cache")

// AllCacheMetrics returns all registered cache metrics.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{FragmentCache}
}

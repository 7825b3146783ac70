package browse

import (
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/dgraph-io/ristretto"
)

const (
	defaultNumCounters = 1e4 // 10x the expected distinct queries
	defaultMaxCost     = 1e3 // one unit per cached query
	defaultBufferItems = 64
)

// queryCache memoizes search hits per (query, limit). The catalog behind an
// Index never changes, so entries never go stale.
type queryCache struct {
	cache  *ristretto.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

func newQueryCache() (*queryCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: defaultNumCounters,
		MaxCost:     defaultMaxCost,
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &queryCache{cache: cache}, nil
}

func cacheKey(query string, limit int) string {
	return strconv.Itoa(limit) + "\x00" + query
}

func (c *queryCache) get(key string) ([]Hit, bool) {
	value, found := c.cache.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	hits, ok := value.([]Hit)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return slices.Clone(hits), true
}

func (c *queryCache) set(key string, hits []Hit) {
	if c.cache.Set(key, slices.Clone(hits), 1) {
		c.cache.Wait()
	}
}

func (c *queryCache) stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *queryCache) close() {
	c.cache.Close()
}

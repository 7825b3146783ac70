// Package browse lets a host look templates up by free text or by a fuzzy
// id/name pattern, for "show all templates" style pickers.
package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/adalundhe/dsassist/core/templates"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultLimit is the number of hits returned when no limit is given.
	DefaultLimit = 10
)

var (
	ErrEmptyQuery  = errors.New("search query is empty")
	ErrIndexClosed = errors.New("index is closed")
)

// Hit is one template returned by a search.
type Hit struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// templateDocument is what gets indexed for each template.
type templateDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
}

// =============================================================================
// Index
// =============================================================================

// Index is an in-memory full-text index over a catalog. The catalog is not
// expected to change after the index is built.
type Index struct {
	mu      sync.RWMutex
	index   bleve.Index
	catalog *templates.Catalog
	cache   *queryCache
	logger  *slog.Logger
	closed  bool
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the index logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Index) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewIndex indexes every template in catalog.
func NewIndex(catalog *templates.Catalog, opts ...Option) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	cache, err := newQueryCache()
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	i := &Index{
		index:   idx,
		catalog: catalog,
		cache:   cache,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}

	if err := i.indexCatalog(); err != nil {
		i.Close()
		return nil, err
	}
	return i, nil
}

func (i *Index) indexCatalog() error {
	batch := i.index.NewBatch()
	for _, t := range i.catalog.All() {
		doc := templateDocument{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Keywords:    t.Keywords,
		}
		if err := batch.Index(t.ID, doc); err != nil {
			return fmt.Errorf("index %s: %w", t.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}
	i.logger.Debug("template index built", "templates", batch.Size())
	return nil
}

// Search runs a match query and returns hits in relevance order.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return nil, ErrIndexClosed
	}

	key := cacheKey(query, limit)
	if hits, ok := i.cache.get(key); ok {
		return hits, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := i.toHits(result)
	i.cache.set(key, hits)
	return hits, nil
}

func (i *Index) toHits(result *bleve.SearchResult) []Hit {
	hits := make([]Hit, 0, len(result.Hits))
	for _, match := range result.Hits {
		t, err := i.catalog.Get(match.ID)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Score:       match.Score,
		})
	}
	return hits
}

// CacheStats reports query cache hits and misses.
func (i *Index) CacheStats() (hits, misses int64) {
	return i.cache.stats()
}

// Close releases the index and its cache. Safe to call more than once.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	i.cache.close()
	return i.index.Close()
}

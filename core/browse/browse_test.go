package browse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/dsassist/core/templates"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(templates.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestIndex_Search(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "memoization", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "dynamic-programming", hits[0].ID)
	assert.Equal(t, "Dynamic Programming (Fibonacci)", hits[0].Name)
	assert.Greater(t, hits[0].Score, 0.0)

	hits, err = idx.Search(ctx, "breadth queue", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "bfs", hits[0].ID)
}

func TestIndex_SearchNoMatch(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search(context.Background(), "kubernetes", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SearchLimit(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search(context.Background(), "search traversal sorted array", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_SearchEmptyQuery(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.Search(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestIndex_RepeatedQueryUsesCache(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	first, err := idx.Search(ctx, "pivot", 3)
	require.NoError(t, err)
	second, err := idx.Search(ctx, "pivot", 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	hits, misses := idx.CacheStats()
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, int64(1), hits)
}

func TestIndex_Close(t *testing.T) {
	idx, err := NewIndex(templates.Default())
	require.NoError(t, err)

	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())

	_, err = idx.Search(context.Background(), "queue", 3)
	assert.ErrorIs(t, err, ErrIndexClosed)
}

func TestFuzzy(t *testing.T) {
	c := templates.Default()

	hits := Fuzzy(c, "quick", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "quick-sort", hits[0].ID)

	assert.Empty(t, Fuzzy(c, "zzzz", 0))
}

func TestFuzzy_EmptyPatternListsAll(t *testing.T) {
	c := templates.Default()

	hits := Fuzzy(c, "", 0)
	require.Len(t, hits, c.Len())
	for i, id := range c.IDs() {
		assert.Equal(t, id, hits[i].ID)
	}

	assert.Len(t, Fuzzy(c, "", 2), 2)
}

package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unionFindYAML = `
templates:
  - id: union-find
    name: Union Find
    description: Disjoint set with path compression
    category: graph
    complexity: "O(a(n)) amortized"
    keywords: [Parent, find, union, rank]
    bonus:
      mode: all
      terms: [parent, rank]
      points: 30
    body: |-
      int find(int x) {
          if (parent[x] != x) parent[x] = find(parent[x]);

          return parent[x];
      }
  - id: heap
    name: Heap
    description: Priority queue
    keywords: [heap, priorityqueue]
    body: PriorityQueue<Integer> pq = new PriorityQueue<>();
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(unionFindYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"union-find", "heap"}, c.IDs())

	uf, err := c.Get("union-find")
	require.NoError(t, err)
	assert.Equal(t, "Union Find", uf.Name)
	assert.Equal(t, "graph", uf.Category)
	assert.Equal(t, []string{"parent", "find", "union", "rank"}, uf.Keywords)
	require.NotNil(t, uf.Bonus)
	assert.Equal(t, BonusAll, uf.Bonus.Mode)
	assert.Equal(t, 30, uf.Bonus.Points)
	assert.Equal(t, "int find(int x) {\n    if (parent[x] != x) parent[x] = find(parent[x]);\n\n    return parent[x];\n}", uf.Body)

	heap, err := c.Get("heap")
	require.NoError(t, err)
	assert.Nil(t, heap.Bonus)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"missing keywords", "templates:\n  - id: x\n    body: y\n", ErrNoKeywords},
		{"duplicate", "templates:\n  - id: x\n    keywords: [a]\n  - id: x\n    keywords: [b]\n", ErrDuplicateID},
		{"bad bonus mode", "templates:\n  - id: x\n    keywords: [a]\n    bonus: {mode: some, terms: [a], points: 1}\n", ErrInvalidBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse([]byte("templates: [unterminated"))
	assert.Error(t, err)
}

func TestParse_BonusModeDefaultsToAll(t *testing.T) {
	c, err := Parse([]byte("templates:\n  - id: x\n    keywords: [a]\n    bonus: {terms: [a, b], points: 5}\n"))
	require.NoError(t, err)

	x, err := c.Get("x")
	require.NoError(t, err)
	assert.Equal(t, BonusAll, x.Bonus.Mode)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(unionFindYAML), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("templates:\n  - id: x\n"), 0644))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

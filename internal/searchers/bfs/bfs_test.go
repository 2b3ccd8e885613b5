package bfs_test

import (
	"testing"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/bfs"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/searcherstest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFewestEdges(t *testing.T) {
	// The direct 0 -> 2 -> 3 is expensive, but has the fewest edges.
	g := searcherstest.NewGraph(3).
		Add(0, 1, 1).Add(1, 4, 1).Add(4, 3, 1).
		Add(0, 2, 7).Add(2, 3, 7)
	searcher := bfs.New[int](g)
	path, cost, err := searcher.Search(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, path)
	assert.Equal(t, int64(14), cost)
	assert.Equal(t, []int{0, 1, 2, 4}, g.Expanded)
	assert.Equal(t, 4, searcher.Stats().Expanded)
}

func TestExhaustedAndLimit(t *testing.T) {
	g := searcherstest.NewGraph(5).Add(0, 1, 0).Add(1, 0, 0)
	path, _, err := bfs.New[int](g).Search(0)
	assert.True(t, errors.Is(err, searchers.ErrSearchExhausted), "got %v", err)
	assert.Nil(t, path)

	g = searcherstest.NewGraph(5).Add(0, 1, 0).Add(1, 2, 0).Add(2, 3, 0).Add(3, 4, 0).Add(4, 5, 0)
	searcher := bfs.New[int](g).WithMaxExpansions(2)
	_, _, err = searcher.Search(0)
	assert.True(t, errors.Is(err, searchers.ErrExpansionLimit), "got %v", err)
	assert.Equal(t, 2, searcher.Stats().Expanded)

	path, cost, err := bfs.New[int](g).Search(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, path)
	assert.Zero(t, cost)
}

func TestNegativeCost(t *testing.T) {
	g := searcherstest.NewGraph(1).Add(0, 1, -3)
	_, _, err := bfs.New[int](g).Search(0)
	assert.True(t, errors.Is(err, searchers.ErrNegativeCost), "got %v", err)
}

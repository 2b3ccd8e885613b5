package astar_test

import (
	"fmt"
	"testing"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/astar"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/searcherstest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

func TestShortestPath(t *testing.T) {
	// 0 -> 1 -> 3 is cheaper than the direct-looking 0 -> 2 -> 3.
	g := searcherstest.NewGraph(3).
		Add(0, 1, 2).Add(1, 3, 2).
		Add(0, 2, 1).Add(2, 3, 10)
	path, cost, err := astar.New[int](g).Search(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, path)
	assert.Equal(t, int64(4), cost)
}

func TestStartIsGoal(t *testing.T) {
	g := searcherstest.NewGraph(0).Add(0, 1, 1)
	path, cost, err := astar.New[int](g).Search(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, path)
	assert.Zero(t, cost)
	assert.Empty(t, g.Expanded)
}

func TestReopening(t *testing.T) {
	// Admissible but inconsistent heuristic: B is first expanded through the expensive
	// S->B edge, and must be re-opened once the cheaper S->A->B is found.
	const S, A, B, G = 0, 1, 2, 3
	g := searcherstest.NewGraph(G).
		Add(S, A, 1).Add(S, B, 3).
		Add(A, B, 1).Add(B, G, 5)
	g.H[A] = 6
	searcher := astar.New[int](g)
	path, cost, err := searcher.Search(S)
	require.NoError(t, err)
	assert.Equal(t, []int{S, A, B, G}, path)
	assert.Equal(t, int64(7), cost)
	assert.Equal(t, []int{S, B, A, B}, g.Expanded)
	assert.GreaterOrEqual(t, searcher.Stats().Improved, 2)
}

func TestOptimalAgainstEnumeration(t *testing.T) {
	for seed := range uint64(30) {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			g := searcherstest.RandomGraph(seed, 9, 3, 9)
			want, found := searcherstest.MinCostByEnumeration[int](g, 0, 9)
			path, cost, err := astar.New[int](g).Search(0)
			if !found {
				require.Error(t, err)
				assert.True(t, errors.Is(err, searchers.ErrSearchExhausted))
				assert.Nil(t, path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, cost)
			assert.Equal(t, 0, path[0])
			assert.True(t, g.IsGoal(path[len(path)-1]))
			pathCost, ok := searcherstest.PathCost[int](g, path)
			require.True(t, ok)
			assert.Equal(t, cost, pathCost)
		})
	}
}

func TestExhausted(t *testing.T) {
	g := searcherstest.NewGraph(9).Add(0, 1, 1).Add(1, 2, 1).Add(2, 0, 1)
	path, cost, err := astar.New[int](g).Search(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, searchers.ErrSearchExhausted), "got %v", err)
	assert.Nil(t, path)
	assert.Zero(t, cost)
}

// chain is an infinite problem: s -> s+1, with no goal.
type chain struct{}

func (chain) Successors(s int) ([]searchers.Edge[int], error) {
	return []searchers.Edge[int]{{To: s + 1, Cost: 1}}, nil
}
func (chain) Heuristic(int) int64 { return 0 }
func (chain) IsGoal(int) bool     { return false }

func TestExpansionLimit(t *testing.T) {
	searcher := astar.New[int](chain{}).WithMaxExpansions(100)
	_, _, err := searcher.Search(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, searchers.ErrExpansionLimit), "got %v", err)
	assert.Equal(t, 100, searcher.Stats().Expanded)

	assert.Panics(t, func() { astar.New[int](chain{}).WithMaxExpansions(-1) })
}

type failing struct{ chain }

var errBroken = errors.New("broken terrain")

func (failing) Successors(s int) ([]searchers.Edge[int], error) {
	if s == 3 {
		return nil, errBroken
	}
	return chain{}.Successors(s)
}

func TestSuccessorErrors(t *testing.T) {
	_, _, err := astar.New[int](failing{}).Search(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBroken), "got %v", err)

	g := searcherstest.NewGraph(2).Add(0, 1, -1).Add(1, 2, 1)
	_, _, err = astar.New[int](g).Search(0)
	assert.True(t, errors.Is(err, searchers.ErrNegativeCost), "got %v", err)
}

func TestStep(t *testing.T) {
	g := searcherstest.NewGraph(3).Add(0, 1, 1).Add(1, 2, 1).Add(2, 3, 1)
	run := astar.New[int](g).NewRun(0)
	var steps int
	for !run.Done() {
		done, err := run.Step()
		require.NoError(t, err)
		steps++
		if done {
			break
		}
	}
	// 3 expansions plus the step that pops the goal.
	assert.Equal(t, 4, steps)
	assert.Equal(t, []int{0, 1, 2, 3}, run.Path())
	assert.Equal(t, int64(3), run.Cost())
	assert.Equal(t, 3, run.Stats().Expanded)

	// Stepping a finished run is a no-op.
	done, err := run.Step()
	assert.True(t, done)
	assert.NoError(t, err)
	assert.Equal(t, 3, run.Stats().Expanded)
}

// Package searcherstest provides problems and helpers to test the searchers.
package searcherstest

import (
	"math"
	"math/rand/v2"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
)

// Graph is an explicit weighted directed graph over int states, implementing searchers.Problem.
type Graph struct {
	Edges map[int][]searchers.Edge[int]
	H     map[int]int64
	Goals generics.Set[int]

	// Expanded records the states in the order they were expanded.
	Expanded []int
}

// Assert Graph is a searchers.Problem.
var _ searchers.Problem[int] = (*Graph)(nil)

// NewGraph returns an empty graph with the given goal states.
func NewGraph(goals ...int) *Graph {
	return &Graph{
		Edges: make(map[int][]searchers.Edge[int]),
		H:     make(map[int]int64),
		Goals: generics.SetWith(goals...),
	}
}

// Add a directed edge.
func (g *Graph) Add(from, to int, cost int64) *Graph {
	g.Edges[from] = append(g.Edges[from], searchers.Edge[int]{To: to, Cost: cost})
	return g
}

// Successors implements searchers.Problem.
func (g *Graph) Successors(s int) ([]searchers.Edge[int], error) {
	g.Expanded = append(g.Expanded, s)
	return g.Edges[s], nil
}

// Heuristic implements searchers.Problem. States without an explicit value return 0.
func (g *Graph) Heuristic(s int) int64 { return g.H[s] }

// IsGoal implements searchers.Problem.
func (g *Graph) IsGoal(s int) bool { return g.Goals.Has(s) }

// RandomGraph creates a graph with numStates states, where each state has up to degree edges
// to random states with costs in [0, maxCost]. The last state is the goal.
func RandomGraph(seed uint64, numStates, degree int, maxCost int64) *Graph {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	g := NewGraph(numStates - 1)
	for from := range numStates - 1 {
		for range rng.IntN(degree + 1) {
			g.Add(from, rng.IntN(numStates), rng.Int64N(maxCost+1))
		}
	}
	return g
}

// MinCostByEnumeration enumerates every simple path from start with at most maxDepth edges,
// stopping at the first goal state of each path, and returns the minimum cost found.
// found is false if no enumerated path reaches a goal.
func MinCostByEnumeration[S comparable](problem searchers.Problem[S], start S, maxDepth int) (minCost int64, found bool) {
	minCost = math.MaxInt64
	onPath := generics.MakeSet[S]()
	var recursion func(s S, cost int64, depth int)
	recursion = func(s S, cost int64, depth int) {
		if problem.IsGoal(s) {
			if cost < minCost {
				minCost = cost
			}
			found = true
			return
		}
		if depth >= maxDepth {
			return
		}
		edges, err := problem.Successors(s)
		if err != nil {
			return
		}
		onPath.Insert(s)
		for _, edge := range edges {
			if !onPath.Has(edge.To) {
				recursion(edge.To, cost+edge.Cost, depth+1)
			}
		}
		delete(onPath, s)
	}
	recursion(start, 0, 0)
	return
}

// PathCost sums the cost of the edges along path, as generated by problem. It returns false
// if consecutive states in the path are not connected by an edge.
func PathCost[S comparable](problem searchers.Problem[S], path []S) (cost int64, ok bool) {
	for ii := 0; ii+1 < len(path); ii++ {
		edges, err := problem.Successors(path[ii])
		if err != nil {
			return 0, false
		}
		best := int64(math.MaxInt64)
		for _, edge := range edges {
			if edge.To == path[ii+1] && edge.Cost < best {
				best = edge.Cost
			}
		}
		if best == math.MaxInt64 {
			return 0, false
		}
		cost += best
	}
	return cost, true
}

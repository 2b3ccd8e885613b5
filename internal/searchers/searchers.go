// Package searchers defines the search problems and the Searcher interface implemented by the
// search algorithms in the sub-packages (astar and bfs).
//
// A search problem is an implicit graph: states are comparable values (so they can be used as
// map keys), expanded lazily through Problem.Successors.
package searchers

import (
	"slices"

	"github.com/pkg/errors"
)

var (
	// ErrSearchExhausted is returned when the frontier empties before any goal state is reached.
	// The search is deterministic, so retrying won't change the outcome.
	ErrSearchExhausted = errors.New("search exhausted: no route reaches the goal")

	// ErrExpansionLimit is returned when the search reaches its configured maximum number of
	// expanded states without reaching a goal.
	ErrExpansionLimit = errors.New("search exceeded the maximum number of expansions")

	// ErrNegativeCost is returned if a Problem generates an edge with negative cost.
	ErrNegativeCost = errors.New("negative edge cost")
)

// Edge to a successor state S, with its non-negative cost.
type Edge[S comparable] struct {
	To   S
	Cost int64
}

// Problem describes the implicit graph to search.
type Problem[S comparable] interface {
	// Successors of the state s, each with the cost of the edge from s.
	Successors(s S) ([]Edge[S], error)

	// Heuristic estimates the remaining cost from s to a goal. It must be non-negative.
	Heuristic(s S) int64

	// IsGoal returns whether s terminates the search.
	IsGoal(s S) bool
}

// Searcher is the interface that any of the search algorithms must adhere to.
type Searcher[S comparable] interface {
	// Search returns the path from start to a goal state (both included) and its total cost.
	// It either returns a complete path, or an error and no path.
	Search(start S) (path []S, cost int64, err error)

	// Stats of the last call to Search.
	Stats() Stats
}

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Expanded is the number of states whose successors were generated.
	Expanded int

	// Generated is the number of successor edges returned by the Problem.
	Generated int

	// Improved counts the number of times a better cost to an already known state was found.
	Improved int

	// MaxFrontier is the largest size reached by the frontier.
	MaxFrontier int
}

// ReconstructPath follows the predecessor links from goal back to the start, and returns the
// path in order from the start. The start is the state without a predecessor.
func ReconstructPath[S comparable](prev map[S]S, goal S) []S {
	var path []S
	current := goal
	for {
		path = append(path, current)
		parent, found := prev[current]
		if !found {
			break
		}
		current = parent
	}
	slices.Reverse(path)
	return path
}

// CheckEdge returns ErrNegativeCost (with context) if the edge has a negative cost.
func CheckEdge[S comparable](from S, edge Edge[S]) error {
	if edge.Cost < 0 {
		return errors.Wrapf(ErrNegativeCost, "edge %v -> %v cost=%d", from, edge.To, edge.Cost)
	}
	return nil
}

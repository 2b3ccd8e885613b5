// Package bfs implements a breadth-first search baseline as a searchers.Searcher.
//
// It returns the goal-reaching path with the fewest edges, ignoring the edge costs for the
// ordering (the cost of the returned path is still reported). It is used as a baseline to
// compare the number of states visited by the A* search.
package bfs

import (
	"github.com/gomlx/exceptions"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Searcher implements searchers.Searcher using breadth-first search.
type Searcher[S comparable] struct {
	problem       searchers.Problem[S]
	maxExpansions int
	stats         searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[int] = (*Searcher[int])(nil)

// New returns a breadth-first searchers.Searcher for the given problem. The heuristic of
// the problem is not used.
func New[S comparable](problem searchers.Problem[S]) *Searcher[S] {
	if problem == nil {
		exceptions.Panicf("bfs.New() requires a non-nil problem")
	}
	return &Searcher[S]{problem: problem}
}

// WithMaxExpansions sets the maximum number of states to expand before failing with
// searchers.ErrExpansionLimit. The default 0 means no limit.
func (s *Searcher[S]) WithMaxExpansions(maxExpansions int) *Searcher[S] {
	if maxExpansions < 0 {
		exceptions.Panicf("bfs: invalid maxExpansions=%d, it must be >= 0", maxExpansions)
	}
	s.maxExpansions = maxExpansions
	return s
}

// Stats implements searchers.Searcher.
func (s *Searcher[S]) Stats() searchers.Stats {
	return s.stats
}

// Search implements searchers.Searcher.
func (s *Searcher[S]) Search(start S) (path []S, cost int64, err error) {
	s.stats = searchers.Stats{}
	defer func() {
		if klog.V(2).Enabled() {
			klog.Infof("bfs: %+v", s.stats)
		}
	}()

	queue := []S{start}
	g := map[S]int64{start: 0}
	prev := make(map[S]S)
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		if s.problem.IsGoal(current) {
			return searchers.ReconstructPath(prev, current), g[current], nil
		}
		if s.maxExpansions > 0 && s.stats.Expanded >= s.maxExpansions {
			return nil, 0, errors.Wrapf(searchers.ErrExpansionLimit, "bfs: %d states expanded", s.stats.Expanded)
		}

		s.stats.Expanded++
		edges, err := s.problem.Successors(current)
		if err != nil {
			return nil, 0, errors.WithMessagef(err, "bfs: failed to expand %v", current)
		}
		s.stats.Generated += len(edges)
		for _, edge := range edges {
			if err := searchers.CheckEdge(current, edge); err != nil {
				return nil, 0, err
			}
			if _, seen := g[edge.To]; seen {
				continue
			}
			g[edge.To] = g[current] + edge.Cost
			prev[edge.To] = current
			queue = append(queue, edge.To)
		}
		s.stats.MaxFrontier = max(s.stats.MaxFrontier, len(queue)-head-1)
	}
	return nil, 0, errors.Wrapf(searchers.ErrSearchExhausted, "bfs: %d states expanded", s.stats.Expanded)
}

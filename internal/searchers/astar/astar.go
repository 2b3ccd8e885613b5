// Package astar implements the A* (heuristic-guided best-first) search as a searchers.Searcher.
//
// The frontier is a min-heap ordered by f = g + h, where g is the accumulated cost from the
// start and h the Problem's heuristic. Ties are broken by the lower h, and then by insertion
// order, so searches are deterministic. It uses a "lazy decrease-key" strategy: when a better
// g is found for a state, a new entry is pushed and the outdated one is ignored when popped.
//
// States whose g improves after being expanded are re-opened, so the returned path is optimal
// whenever the heuristic is admissible, even if it is not consistent.
//
// See: wikipedia.org/wiki/A*_search_algorithm
package astar

import (
	"container/heap"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaxExpansions is the default safety limit on the number of expanded states.
const DefaultMaxExpansions = 1_000_000

// Searcher implements the searchers.Searcher interface using A*.
type Searcher[S comparable] struct {
	problem       searchers.Problem[S]
	maxExpansions int
	stats         searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher[int] = (*Searcher[int])(nil)

// New returns an A* searchers.Searcher for the given problem.
// See Searcher.WithMaxExpansions for the safety limit.
func New[S comparable](problem searchers.Problem[S]) *Searcher[S] {
	if problem == nil {
		exceptions.Panicf("astar.New() requires a non-nil problem")
	}
	return &Searcher[S]{
		problem:       problem,
		maxExpansions: DefaultMaxExpansions,
	}
}

// WithMaxExpansions sets the maximum number of states to expand before failing with
// searchers.ErrExpansionLimit. Set to 0 to disable the limit.
//
// The default is DefaultMaxExpansions.
func (s *Searcher[S]) WithMaxExpansions(maxExpansions int) *Searcher[S] {
	if maxExpansions < 0 {
		exceptions.Panicf("astar: invalid maxExpansions=%d, it must be >= 0", maxExpansions)
	}
	s.maxExpansions = maxExpansions
	return s
}

// Search implements searchers.Searcher.
func (s *Searcher[S]) Search(start S) (path []S, cost int64, err error) {
	startTime := time.Now()
	run := s.NewRun(start)
	var done bool
	for !done {
		done, err = run.Step()
	}
	s.stats = run.Stats()
	if klog.V(2).Enabled() {
		elapsed := time.Since(startTime).Seconds()
		klog.Infof("astar: %+v", s.stats)
		if elapsed > 0 {
			klog.Infof("  expansions/s=%.1f", float64(s.stats.Expanded)/elapsed)
		}
	}
	if err != nil {
		return nil, 0, err
	}
	return run.Path(), run.Cost(), nil
}

// Stats implements searchers.Searcher.
func (s *Searcher[S]) Stats() searchers.Stats {
	return s.stats
}

// Run holds the state of one search, advanced one expansion at a time with Step.
// It is not safe for concurrent use.
type Run[S comparable] struct {
	problem       searchers.Problem[S]
	maxExpansions int

	open   nodeQueue[S]
	g      map[S]int64
	prev   map[S]S
	closed generics.Set[S]
	seq    uint64
	stats  searchers.Stats

	done bool
	err  error
	path []S
	cost int64
}

// NewRun starts a new search from start. Use Run.Step to advance it.
func (s *Searcher[S]) NewRun(start S) *Run[S] {
	r := &Run[S]{
		problem:       s.problem,
		maxExpansions: s.maxExpansions,
		g:             make(map[S]int64),
		prev:          make(map[S]S),
		closed:        generics.MakeSet[S](),
	}
	heap.Init(&r.open)
	r.g[start] = 0
	r.push(start, 0)
	return r
}

// Step pops the best state from the frontier: if it is a goal the search is done, otherwise
// the state is expanded. It returns done=true when the search is over, either with a path or
// with an error. Calling Step after the search is over returns the same result.
func (r *Run[S]) Step() (done bool, err error) {
	if r.done {
		return true, r.err
	}
	for r.open.Len() > 0 {
		item := heap.Pop(&r.open).(*nodeItem[S])
		current := item.state
		if r.closed.Has(current) || item.g != r.g[current] {
			// Stale entry.
			continue
		}
		if r.problem.IsGoal(current) {
			r.path = searchers.ReconstructPath(r.prev, current)
			r.cost = item.g
			return r.finish(nil)
		}
		if r.maxExpansions > 0 && r.stats.Expanded >= r.maxExpansions {
			return r.finish(errors.Wrapf(searchers.ErrExpansionLimit, "astar: %d states expanded", r.stats.Expanded))
		}
		r.closed.Insert(current)
		if err := r.expand(current, item.g); err != nil {
			return r.finish(err)
		}
		return false, nil
	}
	return r.finish(errors.Wrapf(searchers.ErrSearchExhausted, "astar: %d states expanded", r.stats.Expanded))
}

func (r *Run[S]) finish(err error) (bool, error) {
	r.done = true
	r.err = err
	return true, err
}

// expand relaxes the edges out of current, whose best cost is g.
func (r *Run[S]) expand(current S, g int64) error {
	r.stats.Expanded++
	if klog.V(3).Enabled() {
		klog.Infof("astar: expanding %v, g=%d", current, g)
	}
	edges, err := r.problem.Successors(current)
	if err != nil {
		return errors.WithMessagef(err, "astar: failed to expand %v", current)
	}
	r.stats.Generated += len(edges)
	for _, edge := range edges {
		if err := searchers.CheckEdge(current, edge); err != nil {
			return err
		}
		newG := g + edge.Cost
		if oldG, found := r.g[edge.To]; found {
			if newG >= oldG {
				continue
			}
			r.stats.Improved++
		}
		r.g[edge.To] = newG
		r.prev[edge.To] = current
		delete(r.closed, edge.To)
		r.push(edge.To, newG)
	}
	return nil
}

func (r *Run[S]) push(state S, g int64) {
	h := r.problem.Heuristic(state)
	if h < 0 {
		exceptions.Panicf("astar: negative heuristic %d for state %v", h, state)
	}
	heap.Push(&r.open, &nodeItem[S]{state: state, g: g, f: g + h, h: h, seq: r.seq})
	r.seq++
	r.stats.MaxFrontier = max(r.stats.MaxFrontier, r.open.Len())
}

// Done returns whether the search is over.
func (r *Run[S]) Done() bool { return r.done }

// Path found, from the start to the goal. It is nil until the search finishes successfully.
func (r *Run[S]) Path() []S { return r.path }

// Cost of the path found.
func (r *Run[S]) Cost() int64 { return r.cost }

// Stats collected so far.
func (r *Run[S]) Stats() searchers.Stats { return r.stats }

// nodeItem is an entry of the frontier.
type nodeItem[S comparable] struct {
	state   S
	g, f, h int64
	seq     uint64
}

// nodeQueue is a min-heap of *nodeItem ordered by f, then h, then insertion order.
type nodeQueue[S comparable] []*nodeItem[S]

func (q nodeQueue[S]) Len() int { return len(q) }

func (q nodeQueue[S]) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue[S]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue[S]) Push(x any) { *q = append(*q, x.(*nodeItem[S])) }

func (q *nodeQueue[S]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Package planner wires a height field, the travel state space and a searcher together to
// plan a route across the terrain.
//
// The searcher is selected by name (Config.Searcher) from the registered searchers, see
// RegisterSearcher. By default "astar" and "bfs" are registered.
package planner

import (
	"context"
	"time"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers/astar"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// CheckContextEvery is the number of steps between checks of the context cancellation, for
// searchers that can be stepped.
const CheckContextEvery = 1024

// Planner plans routes over one height field with one configuration.
type Planner struct {
	cfg      config.Config
	field    terrain.HeightField
	space    *state.Space
	searcher searchers.Searcher[state.TravelState]
}

// Result holds the information about a planned route, other than the route itself.
type Result struct {
	// Searcher is the name of the searcher used.
	Searcher string

	// Cost is the total cost of the route.
	Cost int64

	// StepCosts holds the cost of each step: StepCosts[ii] is the cost from route[ii] to route[ii+1].
	StepCosts []int64

	Stats   searchers.Stats
	Elapsed time.Duration
}

// New creates a Planner for the field, with the searcher selected by cfg.Searcher.
func New(cfg config.Config, field terrain.HeightField) (*Planner, error) {
	space, err := state.NewSpace(cfg, field)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create planner")
	}
	searcher, err := newSearcher(space, cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create planner")
	}
	return &Planner{
		cfg:      cfg,
		field:    field,
		space:    space,
		searcher: searcher,
	}, nil
}

// Space returns the travel state space searched by the planner.
func (p *Planner) Space() *state.Space { return p.space }

// Field returns the height field the planner routes over.
func (p *Planner) Field() terrain.HeightField { return p.field }

// Config returns the planner's configuration.
func (p *Planner) Config() config.Config { return p.cfg }

// stepper is implemented by searchers that can be advanced one expansion at a time.
type stepper interface {
	NewRun(start state.TravelState) *astar.Run[state.TravelState]
}

// Plan searches a route from the configured start until it reaches the right border of the
// canvas. It fails with searchers.ErrSearchExhausted if no route exists, or with the
// ctx error if it is cancelled: a partial route is never returned.
//
// Cancellation is only checked for searchers that can be stepped (A*); others run to the end.
func (p *Planner) Plan(ctx context.Context) (state.Route, Result, error) {
	result := Result{Searcher: p.cfg.Searcher}
	start := p.space.Start()
	klog.V(1).Infof("Planning with %q from %s to x>=%d", p.cfg.Searcher, start, p.cfg.Width)
	startTime := time.Now()

	var (
		path []state.TravelState
		err  error
	)
	if s, ok := p.searcher.(stepper); ok {
		path, result.Cost, result.Stats, err = runWithContext(ctx, s.NewRun(start))
	} else {
		if err = ctx.Err(); err == nil {
			path, result.Cost, err = p.searcher.Search(start)
		}
		result.Stats = p.searcher.Stats()
	}
	result.Elapsed = time.Since(startTime)
	if err != nil {
		return nil, result, errors.WithMessagef(err, "planning route from %s", start.Pos)
	}

	route := state.Route(path)
	result.StepCosts, err = p.space.StepCosts(route)
	if err != nil {
		return nil, result, errors.WithMessage(err, "searcher returned an invalid route")
	}
	klog.V(1).Infof("Route with %d steps, cost %d, found in %s (%d states expanded)",
		len(route)-1, result.Cost, result.Elapsed, result.Stats.Expanded)
	return route, result, nil
}

func runWithContext(ctx context.Context, run *astar.Run[state.TravelState]) (
	path []state.TravelState, cost int64, stats searchers.Stats, err error) {
	var done bool
	for steps := 0; !done; steps++ {
		if steps%CheckContextEvery == 0 {
			if err = ctx.Err(); err != nil {
				return nil, 0, run.Stats(), errors.Wrapf(err, "search interrupted after %d steps", steps)
			}
		}
		done, err = run.Step()
	}
	stats = run.Stats()
	if klog.V(2).Enabled() {
		klog.Infof("astar: %+v", stats)
	}
	if err != nil {
		return nil, 0, stats, err
	}
	return run.Path(), run.Cost(), stats, nil
}

package state

import (
	"github.com/chewxy/math32"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/pkg/errors"
)

// Space is the search space of travel states over a HeightField, for a given configuration.
// It implements searchers.Problem[TravelState].
//
// It is immutable after creation, and safe for concurrent use if the HeightField is.
type Space struct {
	field terrain.HeightField

	maxTurn        int32
	legDistance    float32
	signedHeading  bool
	heightScale    int
	costScale      float32
	heuristicScale float32
	width          int32
	startX, startY int32
}

// Assert Space is a searchers.Problem.
var _ searchers.Problem[TravelState] = (*Space)(nil)

// NewSpace creates the search space for the configuration cfg over the given height field.
func NewSpace(cfg config.Config, field terrain.HeightField) (*Space, error) {
	if field == nil {
		return nil, errors.New("state.NewSpace() requires a height field")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	startX, startY := cfg.Start()
	return &Space{
		field:          field,
		maxTurn:        int32(cfg.MaxTurnDeg),
		legDistance:    cfg.LegDistance,
		signedHeading:  cfg.SignedHeading,
		heightScale:    cfg.HeightScale,
		costScale:      cfg.CostScale,
		heuristicScale: cfg.HeuristicScale,
		width:          int32(cfg.Width),
		startX:         int32(startX),
		startY:         int32(startY),
	}, nil
}

// Field returns the height field of the space.
func (sp *Space) Field() terrain.HeightField { return sp.field }

// Start returns the initial travel state: at the configured entry point, facing heading 0.
func (sp *Space) Start() TravelState {
	pos := Pos{X: sp.startX, Y: sp.startY}
	return TravelState{
		Pos:       pos,
		Elevation: ScaleElevation(sp.field.Elevation(pos.Vec()), sp.heightScale),
		Heading:   0,
	}
}

// RealElevation returns the real elevation of the state s.
func (sp *Space) RealElevation(s TravelState) float32 {
	return RealElevation(s.Elevation, sp.heightScale)
}

// Successors implements searchers.Problem.
//
// For each integer heading in [s.Heading-maxTurn, s.Heading+maxTurn), it takes a step of
// legDistance: the new position adds the truncated step to the integer position, while the
// elevation is sampled at the exact (non-truncated) position. The arrival heading is derived
// back from the step vector (see HeadingOf), and the cost is the SlopeCost of the step.
func (sp *Space) Successors(s TravelState) ([]searchers.Edge[TravelState], error) {
	from := sp.RealElevation(s)
	x, y := s.Pos.Vec()
	edges := make([]searchers.Edge[TravelState], 0, 2*sp.maxTurn)
	for headingDeg := s.Heading - sp.maxTurn; headingDeg < s.Heading+sp.maxTurn; headingDeg++ {
		dx, dy := StepVector(headingDeg, sp.legDistance)
		heading, err := HeadingOf(dx, dy, sp.signedHeading)
		if err != nil {
			return nil, errors.WithMessagef(err, "expanding %s with heading %d°", s, headingDeg)
		}
		to := sp.field.Elevation(x+dx, y+dy)
		next := TravelState{
			Pos:       Pos{X: s.Pos.X + int32(dx), Y: s.Pos.Y + int32(dy)},
			Elevation: ScaleElevation(to, sp.heightScale),
			Heading:   heading,
		}
		edges = append(edges, searchers.Edge[TravelState]{
			To:   next,
			Cost: SlopeCost(from, to, sp.legDistance, sp.costScale),
		})
	}
	return edges, nil
}

// IsGoal implements searchers.Problem: the route is complete once it reaches the right border
// of the canvas.
func (sp *Space) IsGoal(s TravelState) bool {
	return s.Pos.X >= sp.width
}

// Heuristic implements searchers.Problem: the remaining x-distance to the right border of the
// canvas, multiplied by the heuristic scale.
func (sp *Space) Heuristic(s TravelState) int64 {
	remaining := max(0, sp.width-s.Pos.X)
	return int64(math32.Round(sp.heuristicScale * float32(remaining)))
}

// StepCosts returns the cost of each step of the route, as given by Successors: costs[ii] is
// the cost of moving from route[ii] to route[ii+1]. When Successors yields route[ii+1] more
// than once, the cheapest edge is used.
//
// It returns an error if some state is not a successor of the previous one.
func (sp *Space) StepCosts(route Route) ([]int64, error) {
	if len(route) == 0 {
		return nil, nil
	}
	costs := make([]int64, 0, len(route)-1)
	for ii := 1; ii < len(route); ii++ {
		edges, err := sp.Successors(route[ii-1])
		if err != nil {
			return nil, err
		}
		// The same state can be reached by more than one heading (e.g. mirrored turns), with
		// different costs: a searcher always pays the cheapest.
		cost := int64(-1)
		for _, edge := range edges {
			if edge.To == route[ii] && (cost < 0 || edge.Cost < cost) {
				cost = edge.Cost
			}
		}
		if cost < 0 {
			return nil, errors.Errorf("step %d: %s is not a successor of %s", ii, route[ii], route[ii-1])
		}
		costs = append(costs, cost)
	}
	return costs, nil
}

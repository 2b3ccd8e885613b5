// Package statetest provides helper functions to create tests using travel states.
package statetest

import (
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	. "github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/pkg/errors"
)

// FlatConfig returns the configuration of the flat terrain example: a canvas of the given width,
// with the start at (0, height/2).
func FlatConfig(width, height int) config.Config {
	cfg := config.Default()
	cfg.Terrain = config.TerrainFlat
	cfg.Width = width
	cfg.Height = height
	return cfg
}

// Ridge returns a height field with a single ridge of the given peak elevation running along
// the x-axis at y=centerY, falling linearly to 0 at halfWidth from the center.
func Ridge(centerY, halfWidth, peak float32) terrain.HeightField {
	return terrain.Func(func(_, y float32) float32 {
		d := generics.Abs(y - centerY)
		if d >= halfWidth {
			return 0
		}
		return peak * (1 - d/halfWidth)
	})
}

// Ramp returns a height field rising along the y-axis: Elevation(x, y) = slope * y.
func Ramp(slope float32) terrain.HeightField {
	return terrain.Func(func(_, y float32) float32 { return slope * y })
}

// MustSpace creates the Space or panics.
func MustSpace(cfg config.Config, field terrain.HeightField) *Space {
	space, err := NewSpace(cfg, field)
	if err != nil {
		panic(err)
	}
	return space
}

// CheckRoute verifies that route is a valid route in space: it starts at space.Start(), each
// state is a successor of the previous one, only the last state is a goal, and cost is the sum
// of the step costs.
func CheckRoute(space *Space, route Route, cost int64) error {
	if len(route) == 0 {
		return errors.New("empty route")
	}
	if route[0] != space.Start() {
		return errors.Errorf("route starts at %s, expected %s", route[0], space.Start())
	}
	for ii, s := range route[:len(route)-1] {
		if space.IsGoal(s) {
			return errors.Errorf("route goes through goal state %s at step %d", s, ii)
		}
	}
	if !space.IsGoal(route.Last()) {
		return errors.Errorf("route ends at %s, which is not a goal", route.Last())
	}
	costs, err := space.StepCosts(route)
	if err != nil {
		return err
	}
	var total int64
	for _, c := range costs {
		total += c
	}
	if total != cost {
		return errors.Errorf("route costs %d, but %d was reported", total, cost)
	}
	return nil
}

// Package state defines the travel states over the terrain and the rules to move between them:
// the expansion policy (bounded turning with fixed-length steps), the slope based cost model,
// the goal and the heuristic.
//
// Space implements searchers.Problem[TravelState], so it can be searched by any of the
// searchers.
package state

import (
	"fmt"
	"strings"
)

// Pos packages the x, y integer world position.
type Pos struct {
	X, Y int32
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

// Vec returns the position as a float32 vector.
func (pos Pos) Vec() (x, y float32) {
	return float32(pos.X), float32(pos.Y)
}

// TravelState represents "standing at Pos, having just arrived facing Heading, at Elevation".
//
// It is a comparable value: two states are the same only if all fields are equal. So the same
// position reached with different headings (or elevations) are different states.
type TravelState struct {
	Pos Pos

	// Elevation is the real elevation multiplied by the height scale and rounded.
	Elevation int32

	// Heading in integer degrees, the angle between the last step and the (1, 0) direction.
	Heading int32
}

// String returns a text representation of the TravelState.
func (s TravelState) String() string {
	return fmt.Sprintf("{pos=%s, elevation=%d, heading=%d°}", s.Pos, s.Elevation, s.Heading)
}

// Route is the sequence of travel states from the start to a goal state.
type Route []TravelState

// Last state of the route. It panics on an empty route.
func (r Route) Last() TravelState {
	return r[len(r)-1]
}

// Positions returns the positions along the route.
func (r Route) Positions() []Pos {
	positions := make([]Pos, len(r))
	for ii, s := range r {
		positions[ii] = s.Pos
	}
	return positions
}

// String returns the positions of the route, in order.
func (r Route) String() string {
	parts := make([]string, len(r))
	for ii, pos := range r.Positions() {
		parts[ii] = pos.String()
	}
	return strings.Join(parts, " -> ")
}

package state

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/pkg/errors"
)

// ErrDegenerateStep is returned when a heading is requested for a zero-length (or invalid)
// step vector: the angle is undefined.
var ErrDegenerateStep = errors.New("degenerate step vector: heading is undefined")

const degreesPerRadian = 180 / math32.Pi

// StepVector returns the vector of length legDistance pointing at headingDeg degrees from (1, 0).
func StepVector(headingDeg int32, legDistance float32) (dx, dy float32) {
	rad := float32(headingDeg) / degreesPerRadian
	return legDistance * math32.Cos(rad), legDistance * math32.Sin(rad)
}

// HeadingOf returns the heading, in integer degrees, of the step vector (dx, dy).
//
// If signed is false, the heading is the angle between the step and (1, 0), computed with the
// arc-cosine of their normalized dot product, truncated to an integer: it is always in
// [0, 180], so mirrored left and right turns map to the same heading.
// If signed is true, it is the rounded atan2 angle in (-180, 180], which keeps the turn direction.
func HeadingOf(dx, dy float32, signed bool) (int32, error) {
	length := math32.Hypot(dx, dy)
	if !(length > 0) || math32.IsInf(length, 0) {
		return 0, errors.Wrapf(ErrDegenerateStep, "step=(%g, %g)", dx, dy)
	}
	if signed {
		return int32(math32.Round(math32.Atan2(dy, dx) * degreesPerRadian)), nil
	}
	cos := generics.Clamp(dx/length, -1, 1)
	return int32(math32.Acos(cos) * degreesPerRadian), nil
}

// SlopeCost is the cost of a step of legDistance between elevations from and to: the absolute
// slope scaled by costScale and rounded. It is symmetric and never negative.
func SlopeCost(from, to, legDistance, costScale float32) int64 {
	return int64(math32.Round(costScale * math32.Abs((to-from)/legDistance)))
}

// ScaleElevation converts a real elevation to the integer stored in TravelState, saturating
// at the int32 range.
func ScaleElevation(elevation float32, heightScale int) int32 {
	scaled := math.Round(float64(elevation) * float64(heightScale))
	return int32(generics.Clamp(scaled, math.MinInt32, math.MaxInt32))
}

// RealElevation converts a TravelState elevation back to the real elevation.
func RealElevation(elevation int32, heightScale int) float32 {
	return float32(elevation) / float32(heightScale)
}

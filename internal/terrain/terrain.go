// Package terrain implements the height fields over which routes are planned.
//
// A HeightField maps a world coordinate to an elevation. Implementations are pure and
// deterministic, so they can be evaluated concurrently without synchronization.
package terrain

import (
	"fmt"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
)

// HeightField maps world coordinates to an elevation.
type HeightField interface {
	Elevation(x, y float32) float32
}

// Simplex is a HeightField given by seeded 2D simplex noise, scaled both in domain and in amplitude:
//
//	Elevation(x, y) = amplitude * noise(x/scale, y/scale)
//
// The noise is in approximately [-1, 1].
type Simplex struct {
	noise            opensimplex.Noise32
	seed             int64
	scale, amplitude float32
}

// Assert Simplex is a HeightField.
var _ HeightField = (*Simplex)(nil)

// NewSimplex returns a simplex noise height field. The scale must be positive.
func NewSimplex(seed int64, scale, amplitude float32) *Simplex {
	return &Simplex{
		noise:     opensimplex.New32(seed),
		seed:      seed,
		scale:     scale,
		amplitude: amplitude,
	}
}

// Elevation implements HeightField.
func (s *Simplex) Elevation(x, y float32) float32 {
	return s.amplitude * s.noise.Eval2(x/s.scale, y/s.scale)
}

// String implements fmt.Stringer.
func (s *Simplex) String() string {
	return fmt.Sprintf("simplex(seed=%d, scale=%g, amplitude=%g)", s.seed, s.scale, s.amplitude)
}

// Flat is a HeightField with the same elevation everywhere.
type Flat float32

// Elevation implements HeightField.
func (f Flat) Elevation(_, _ float32) float32 { return float32(f) }

// String implements fmt.Stringer.
func (f Flat) String() string { return fmt.Sprintf("flat(%g)", float32(f)) }

// Func adapts a function to a HeightField. The function must be pure.
type Func func(x, y float32) float32

// Elevation implements HeightField.
func (fn Func) Elevation(x, y float32) float32 { return fn(x, y) }

// FromConfig creates the HeightField selected by cfg.Terrain.
func FromConfig(cfg config.Config) (HeightField, error) {
	switch cfg.Terrain {
	case config.TerrainSimplex:
		if !(cfg.NoiseScale > 0) {
			return nil, errors.Wrapf(config.ErrInvalid, "noise_scale=%g must be positive", cfg.NoiseScale)
		}
		return NewSimplex(cfg.Seed, cfg.NoiseScale, cfg.NoiseAmplitude), nil
	case config.TerrainFlat:
		return Flat(cfg.FlatElevation), nil
	}
	return nil, errors.Wrapf(config.ErrInvalid, "unknown terrain %q", cfg.Terrain)
}

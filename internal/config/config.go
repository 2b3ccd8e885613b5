// Package config holds the immutable configuration of a route planning run: terrain, turning
// and step geometry, canvas, search limits and rendering constants.
//
// A Config starts from Default and can be overridden by a YAML file (LoadFile) and/or by a
// parameters string such as "max_turn=5,leg=20,seed=3,bfs" (ApplyParams).
package config

import (
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/parameters"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) by Validate for any invalid configuration value.
var ErrInvalid = errors.New("invalid configuration")

// Terrain kinds.
const (
	TerrainSimplex = "simplex"
	TerrainFlat    = "flat"
)

// Searcher names registered by default, see package planner.
const (
	SearcherAStar = "astar"
	SearcherBFS   = "bfs"
)

// Default values.
const (
	DefaultMaxTurnDeg     = 5
	DefaultLegDistance    = 20
	DefaultHeightScale    = 1000
	DefaultCostScale      = 1000
	DefaultNoiseScale     = 100
	DefaultNoiseAmplitude = 10
	DefaultWidth          = 512
	DefaultHeight         = 512
	DefaultMaxExpansions  = 1_000_000
	DefaultHeuristicScale = 1
	DefaultShadeGain      = 10
	DefaultShadeOffset    = 100
	DefaultOutput         = "assets/result_image.png"
)

// Config of a planning run. It is passed by value and never mutated after validation.
type Config struct {
	// MaxTurnDeg is the half-width of the heading window, in degrees: successors use headings
	// in [heading-MaxTurnDeg, heading+MaxTurnDeg).
	MaxTurnDeg int `yaml:"max_turn"`

	// LegDistance is the length of every step.
	LegDistance float32 `yaml:"leg"`

	// SignedHeading derives the arrival heading with atan2, keeping the turn direction.
	// The default derives it from the arc-cosine of the step direction, which is always >= 0.
	SignedHeading bool `yaml:"signed_heading"`

	// HeightScale converts real elevations to the integer stored in travel states.
	HeightScale int `yaml:"height_scale"`

	// CostScale multiplies the absolute slope to produce integer edge costs.
	CostScale float32 `yaml:"cost_scale"`

	// Terrain selects the height field: TerrainSimplex or TerrainFlat.
	Terrain        string  `yaml:"terrain"`
	Seed           int64   `yaml:"seed"`
	NoiseScale     float32 `yaml:"noise_scale"`
	NoiseAmplitude float32 `yaml:"noise_amplitude"`
	FlatElevation  float32 `yaml:"flat_elevation"`

	// Width and Height of the canvas. Width is also the goal boundary on the x-axis.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// StartX, StartY is the entry point. Negative StartY means Height/2.
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`

	// Searcher selects the search algorithm by its registered name, e.g. SearcherAStar or SearcherBFS.
	Searcher string `yaml:"searcher"`

	// MaxExpansions caps the number of states expanded by a search. 0 disables the cap.
	MaxExpansions int `yaml:"max_expansions"`

	// HeuristicScale multiplies the remaining x-distance used as the A* heuristic.
	// Edges over flat ground cost 0, so only 0 makes the heuristic admissible everywhere: with the
	// default of 1, A* may return a route that costs more than the cheapest one.
	HeuristicScale float32 `yaml:"heuristic_scale"`

	// ShadeGain and ShadeOffset map elevations to the background alpha channel.
	ShadeGain   float32 `yaml:"shade_gain"`
	ShadeOffset float32 `yaml:"shade_offset"`

	// Output is the path of the rendered PNG image.
	Output string `yaml:"output"`
}

// Default returns the default configuration: a 512x512 simplex terrain, crossed with steps of
// 20 turning at most 5° each.
func Default() Config {
	return Config{
		MaxTurnDeg:     DefaultMaxTurnDeg,
		LegDistance:    DefaultLegDistance,
		HeightScale:    DefaultHeightScale,
		CostScale:      DefaultCostScale,
		Terrain:        TerrainSimplex,
		Seed:           0,
		NoiseScale:     DefaultNoiseScale,
		NoiseAmplitude: DefaultNoiseAmplitude,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		StartX:         0,
		StartY:         -1,
		Searcher:       SearcherAStar,
		MaxExpansions:  DefaultMaxExpansions,
		HeuristicScale: DefaultHeuristicScale,
		ShadeGain:      DefaultShadeGain,
		ShadeOffset:    DefaultShadeOffset,
		Output:         DefaultOutput,
	}
}

// Start returns the entry point of the route.
func (c Config) Start() (x, y int) {
	y = c.StartY
	if y < 0 {
		y = c.Height / 2
	}
	return c.StartX, y
}

// Validate checks the configuration values, returning an error wrapping ErrInvalid.
func (c Config) Validate() error {
	for _, field := range []struct {
		key   string
		value float32
	}{
		{"leg", c.LegDistance},
		{"cost_scale", c.CostScale},
		{"noise_scale", c.NoiseScale},
		{"noise_amplitude", c.NoiseAmplitude},
		{"flat_elevation", c.FlatElevation},
		{"heuristic_scale", c.HeuristicScale},
		{"shade_gain", c.ShadeGain},
		{"shade_offset", c.ShadeOffset},
	} {
		if math32.IsNaN(field.value) || math32.IsInf(field.value, 0) {
			return errors.Wrapf(ErrInvalid, "%s=%g must be finite", field.key, field.value)
		}
	}
	switch {
	case c.MaxTurnDeg < 0 || c.MaxTurnDeg > 180:
		return errors.Wrapf(ErrInvalid, "max_turn=%d must be in [0, 180]", c.MaxTurnDeg)
	case !(c.LegDistance > 0):
		return errors.Wrapf(ErrInvalid, "leg=%g must be positive", c.LegDistance)
	case c.HeightScale <= 0:
		return errors.Wrapf(ErrInvalid, "height_scale=%d must be positive", c.HeightScale)
	case c.CostScale < 0:
		return errors.Wrapf(ErrInvalid, "cost_scale=%g must be non-negative", c.CostScale)
	case c.Terrain != TerrainSimplex && c.Terrain != TerrainFlat:
		return errors.Wrapf(ErrInvalid, "terrain=%q must be %q or %q", c.Terrain, TerrainSimplex, TerrainFlat)
	case c.Terrain == TerrainSimplex && !(c.NoiseScale > 0):
		return errors.Wrapf(ErrInvalid, "noise_scale=%g must be positive", c.NoiseScale)
	case c.Width <= 0 || c.Height <= 0 || c.Width > math.MaxInt32 || c.Height > math.MaxInt32:
		return errors.Wrapf(ErrInvalid, "canvas %dx%d must have positive dimensions that fit in an int32", c.Width, c.Height)
	case c.StartX < math.MinInt32 || c.StartX > math.MaxInt32 || c.StartY > math.MaxInt32:
		return errors.Wrapf(ErrInvalid, "start (%d, %d) must fit in an int32", c.StartX, c.StartY)
	case c.Searcher == "":
		return errors.Wrap(ErrInvalid, "searcher must be set")
	case c.MaxExpansions < 0:
		return errors.Wrapf(ErrInvalid, "max_expansions=%d must be non-negative", c.MaxExpansions)
	case c.HeuristicScale < 0:
		return errors.Wrapf(ErrInvalid, "heuristic_scale=%g must be non-negative", c.HeuristicScale)
	}
	return nil
}

// LoadFile reads a YAML file and overrides the fields of c that are present in the file.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "failed to read configuration file %q", path)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "failed to parse configuration file %q", path)
	}
	return c, nil
}

// ApplyParams overrides the fields of c from the params parsed from a configuration string.
// Consumed keys are removed from params, and any key left over is reported as an error.
//
// Besides the YAML key names, the bare keys "astar", "bfs", "flat" and "simplex" select the
// searcher or the terrain.
func (c Config) ApplyParams(params parameters.Params) (Config, error) {
	var err error
	pop := func(key string, ptr any) {
		if err != nil {
			return
		}
		switch p := ptr.(type) {
		case *int:
			*p, err = parameters.PopParamOr(params, key, *p)
		case *int64:
			*p, err = parameters.PopParamOr(params, key, *p)
		case *float32:
			*p, err = parameters.PopParamOr(params, key, *p)
		case *bool:
			*p, err = parameters.PopParamOr(params, key, *p)
		case *string:
			*p, err = parameters.PopParamOr(params, key, *p)
		}
	}
	pop("max_turn", &c.MaxTurnDeg)
	pop("leg", &c.LegDistance)
	pop("signed_heading", &c.SignedHeading)
	pop("height_scale", &c.HeightScale)
	pop("cost_scale", &c.CostScale)
	pop("terrain", &c.Terrain)
	pop("seed", &c.Seed)
	pop("noise_scale", &c.NoiseScale)
	pop("noise_amplitude", &c.NoiseAmplitude)
	pop("flat_elevation", &c.FlatElevation)
	pop("width", &c.Width)
	pop("height", &c.Height)
	pop("start_x", &c.StartX)
	pop("start_y", &c.StartY)
	pop("searcher", &c.Searcher)
	pop("max_expansions", &c.MaxExpansions)
	pop("heuristic_scale", &c.HeuristicScale)
	pop("shade_gain", &c.ShadeGain)
	pop("shade_offset", &c.ShadeOffset)
	pop("output", &c.Output)
	if err != nil {
		return c, err
	}

	for _, name := range []string{SearcherAStar, SearcherBFS} {
		if _, found := params[name]; found {
			delete(params, name)
			c.Searcher = name
		}
	}
	for _, name := range []string{TerrainSimplex, TerrainFlat} {
		if _, found := params[name]; found {
			delete(params, name)
			c.Terrain = name
		}
	}
	if err := parameters.CheckAllConsumed(params); err != nil {
		return c, errors.WithMessage(err, "configuration")
	}
	return c, nil
}

// FromString returns the Default configuration overridden by the configuration string.
func FromString(config string) (Config, error) {
	return Default().ApplyParams(parameters.NewFromConfigString(config))
}

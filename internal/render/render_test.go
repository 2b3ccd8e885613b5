package render_test

import (
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/render"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 120, 64
	return cfg
}

func nrgbaAt(r *render.Renderer, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(r.Image().At(x, y)).(color.NRGBA)
}

func TestAlpha(t *testing.T) {
	r := render.New(smallConfig(), terrain.Flat(0))
	assert.Equal(t, uint8(100), r.Alpha(0))
	assert.Equal(t, uint8(150), r.Alpha(5))
	assert.Equal(t, uint8(0), r.Alpha(-10))
	assert.Equal(t, uint8(0), r.Alpha(-200))
	assert.Equal(t, uint8(255), r.Alpha(20))
}

func TestBackground(t *testing.T) {
	cfg := smallConfig()
	cfg.ShadeGain = 1
	// Elevation grows with x: alpha = x + 100, saturated at 255.
	field := terrain.Func(func(x, _ float32) float32 { return x })
	r := render.New(cfg, field)
	require.NoError(t, r.Background(context.Background()))
	for _, xy := range [][2]int{{0, 0}, {7, 63}, {50, 20}, {119, 33}} {
		want := uint8(min(xy[0]+100, 255))
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: want}, nrgbaAt(r, xy[0], xy[1]), "pixel %v", xy)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := render.New(cfg, field).Background(ctx)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestDrawRoute(t *testing.T) {
	r := render.New(smallConfig(), terrain.Flat(0))
	require.NoError(t, r.Background(context.Background()))
	route := state.Route{
		{Pos: state.Pos{X: 0, Y: 32}},
		{Pos: state.Pos{X: 60, Y: 32}},
		{Pos: state.Pos{X: 130, Y: 32}},
	}
	r.DrawRoute(route)
	for _, x := range []int{10, 59, 100} {
		c := nrgbaAt(r, x, 32)
		assert.Greater(t, c.R, c.G, "pixel (%d, 32) should be reddish: %v", x, c)
	}
	// Far from the route the background is untouched.
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 100}, nrgbaAt(r, 50, 5))

	// Single state routes draw nothing.
	r = render.New(smallConfig(), terrain.Flat(0))
	r.DrawRoute(route[:1])
	assert.Equal(t, color.NRGBA{}, nrgbaAt(r, 0, 32))
}

func TestSavePNG(t *testing.T) {
	r := render.New(smallConfig(), terrain.NewSimplex(0, 100, 10))
	require.NoError(t, r.Background(context.Background()))
	path := filepath.Join(t.TempDir(), "assets", "result_image.png")
	require.NoError(t, r.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestNewPanics(t *testing.T) {
	assert.Panics(t, func() { render.New(smallConfig(), nil) })
	cfg := smallConfig()
	cfg.Width = 0
	assert.Panics(t, func() { render.New(cfg, terrain.Flat(0)) })
}

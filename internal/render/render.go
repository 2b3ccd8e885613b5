// Package render draws the terrain and a planned route to an image, and saves it as PNG.
//
// The background shades each pixel (x, y) as white with an alpha proportional to the elevation
// at world coordinates (x, y), and the route is drawn as red line segments between consecutive
// positions. World coordinates and pixel coordinates are the same.
package render

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fogleman/gg"
	"github.com/gomlx/exceptions"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/generics"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	// RouteColor is the color of the route segments.
	RouteColor = color.NRGBA{R: 255, A: 255}

	// RouteLineWidth in pixels.
	RouteLineWidth = 1.0
)

// Renderer draws onto a canvas of the configured width and height.
type Renderer struct {
	field                  terrain.HeightField
	shadeGain, shadeOffset float32

	img *image.RGBA
	dc  *gg.Context
}

// New creates a Renderer with a transparent canvas of cfg.Width x cfg.Height pixels.
func New(cfg config.Config, field terrain.HeightField) *Renderer {
	if field == nil {
		exceptions.Panicf("render.New() requires a height field")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		exceptions.Panicf("render.New(): invalid canvas %dx%d", cfg.Width, cfg.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	return &Renderer{
		field:       field,
		shadeGain:   cfg.ShadeGain,
		shadeOffset: cfg.ShadeOffset,
		img:         img,
		dc:          gg.NewContextForRGBA(img),
	}
}

// Alpha returns the background alpha for the given elevation, saturated to [0, 255].
func (r *Renderer) Alpha(elevation float32) uint8 {
	return uint8(generics.Clamp(r.shadeGain*elevation+r.shadeOffset, 0, 255))
}

// Background shades every pixel of the canvas from the height field. Rows are shaded in
// parallel bands, since the height field is safe for concurrent use.
//
// It returns the ctx error if it is cancelled before finishing.
func (r *Renderer) Background(ctx context.Context) error {
	bounds := r.img.Bounds()
	height := bounds.Dy()
	numBands := min(height, 4*runtime.GOMAXPROCS(0))
	rowsPerBand := (height + numBands - 1) / numBands

	var wg errgroup.Group
	wg.SetLimit(runtime.GOMAXPROCS(0))
	for y0 := bounds.Min.Y; y0 < bounds.Max.Y; y0 += rowsPerBand {
		y1 := min(y0+rowsPerBand, bounds.Max.Y)
		wg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					a := r.Alpha(r.field.Elevation(float32(x), float32(y)))
					// White, premultiplied by alpha.
					r.img.SetRGBA(x, y, color.RGBA{R: a, G: a, B: a, A: a})
				}
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return errors.Wrap(err, "shading background")
	}
	klog.V(2).Infof("Background shaded in %d bands of %d rows", numBands, rowsPerBand)
	return nil
}

// DrawRoute draws the route as line segments between consecutive positions. Segments outside
// the canvas are clipped.
func (r *Renderer) DrawRoute(route state.Route) {
	if len(route) < 2 {
		return
	}
	r.dc.SetColor(RouteColor)
	r.dc.SetLineWidth(RouteLineWidth)
	positions := route.Positions()
	for ii := 1; ii < len(positions); ii++ {
		from, to := positions[ii-1], positions[ii]
		r.dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
		r.dc.Stroke()
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

// SavePNG saves the canvas as a PNG file, creating the parent directory if needed.
func (r *Renderer) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory for %q", path)
		}
	}
	if err := r.dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "failed to save image to %q", path)
	}
	klog.V(1).Infof("Saved image to %q", path)
	return nil
}

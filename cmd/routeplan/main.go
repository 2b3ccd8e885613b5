// routeplan plans a route across a procedurally generated terrain, from the left border of the
// canvas to the right one, minimizing the accumulated slope. It prints a summary of the route and
// saves an image of the terrain with the route drawn on it.
//
// Example:
//
//	$ go run ./cmd/routeplan -config="max_turn=8,seed=42" -output=/tmp/route.png
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/parameters"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/planner"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/profilers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/render"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/ui/cli"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", "",
		"Comma-separated list of configuration overrides, e.g. \"max_turn=8,leg=15,seed=3,bfs\".")
	flagConfigFile = flag.String("config_file", "",
		"YAML file with the configuration. Values in -config take precedence.")
	flagOutput = flag.String("output", "", "Path of the PNG image to save. "+
		"If empty, uses the configured output (default "+config.DefaultOutput+").")
	flagQuiet   = flag.Bool("quiet", false, "Quiet mode: don't print the route table.")
	flagNoColor = flag.Bool("no_color", false, "Disable colors in the output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	ctx, cancel := context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	must.M(profilers.Setup(ctx))
	defer profilers.OnQuit()

	cfg := loadConfig()
	ui := cli.New(!*flagNoColor)
	if !*flagQuiet {
		ui.PrintHeader(cfg)
	}

	field := must.M1(terrain.FromConfig(cfg))
	p := must.M1(planner.New(cfg, field))
	s := spinning.New(ctx, "Planning route")
	route, result, err := p.Plan(ctx)
	s.Done()
	if err != nil {
		ui.PrintFailure(err)
		klog.Exitf("Failed to plan route: %+v", err)
	}
	if !*flagQuiet {
		ui.PrintRoute(p.Space(), route, result)
	} else {
		fmt.Printf("Route: %s\nCost: %d\n", route, result.Cost)
	}

	r := render.New(cfg, field)
	s = spinning.New(ctx, "Rendering")
	err = r.Background(ctx)
	s.Done()
	if err != nil {
		klog.Exitf("Failed to render terrain: %+v", err)
	}
	r.DrawRoute(route)
	must.M(r.SavePNG(cfg.Output))
	fmt.Printf("Image saved to %q\n", cfg.Output)
}

// loadConfig from the defaults, then the -config_file, then the -config flags.
func loadConfig() config.Config {
	cfg := config.Default()
	if *flagConfigFile != "" {
		cfg = must.M1(cfg.LoadFile(*flagConfigFile))
	}
	if *flagConfig != "" {
		cfg = must.M1(cfg.ApplyParams(parameters.NewFromConfigString(*flagConfig)))
	}
	if *flagOutput != "" {
		cfg.Output = *flagOutput
	}
	if err := cfg.Validate(); err != nil {
		klog.Exitf("Invalid configuration: %+v", err)
	}
	klog.V(1).Infof("Configuration: %+v", cfg)
	return cfg
}

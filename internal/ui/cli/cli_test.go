package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/planner"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/searchers"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state/statetest"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/terrain"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/ui/cli"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoute(t *testing.T) {
	cfg := statetest.FlatConfig(100, 512)
	p, err := planner.New(cfg, terrain.Flat(0.25))
	require.NoError(t, err)
	route, result, err := p.Plan(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	ui := cli.New(false).WithWriter(&buf, 0)
	ui.PrintHeader(cfg)
	ui.PrintRoute(p.Space(), route, result)
	out := buf.String()
	t.Log(out)
	assert.Contains(t, out, `Route planning with "astar"`)
	assert.Contains(t, out, "canvas 100x512, start (0, 256)")
	assert.Contains(t, out, "(0, 256)")
	assert.Contains(t, out, "(100, 256)")
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, "5 steps, total cost 0")
	assert.Contains(t, out, "Step Cost")
}

func TestPrintCentered(t *testing.T) {
	var buf bytes.Buffer
	ui := cli.New(false).WithWriter(&buf, 200)
	ui.PrintFailure(errors.Wrap(searchers.ErrSearchExhausted, "astar: 1 states expanded"))
	out := buf.String()
	assert.Contains(t, out, "*** NO ROUTE: astar: 1 states expanded: search exhausted")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "NO ROUTE") {
			assert.True(t, strings.HasPrefix(line, "     "), "line should be centered: %q", line)
		}
	}

	cfg := config.Default()
	buf.Reset()
	cli.New(false).WithWriter(&buf, 0).PrintHeader(cfg)
	assert.Contains(t, buf.String(), "simplex (seed=0, scale=100, amplitude=10)")
}

// Package cli implements a command-line summary of a planned route.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/config"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/planner"
	"github.com/gzhynko/astar-pathfinding-heightmap/internal/state"
	"golang.org/x/term"
)

// CharsPerColumn is the width of each column of the steps table.
const CharsPerColumn = 12

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

func centerString(s string, fit int) string {
	width := displayWidth(s)
	if width >= fit {
		return s
	}
	marginLeft := (fit - width) / 2
	marginRight := fit - width - marginLeft
	return strings.Repeat(" ", marginLeft) + s + strings.Repeat(" ", marginRight)
}

// UI prints the route summaries.
type UI struct {
	w             io.Writer
	color         bool
	terminalWidth int
}

// New creates a UI that prints to the standard output, centered on the terminal if it is one.
func New(color bool) *UI {
	terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		terminalWidth = 0
	}
	return &UI{
		w:             os.Stdout,
		color:         color,
		terminalWidth: terminalWidth,
	}
}

// WithWriter sets the output of the UI and the width used to center the output.
// A terminalWidth of 0 disables centering.
func (ui *UI) WithWriter(w io.Writer, terminalWidth int) *UI {
	ui.w = w
	ui.terminalWidth = terminalWidth
	return ui
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max(0, (ui.terminalWidth-blockWidth)/2)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.w)
			continue
		}
		_, _ = fmt.Fprintf(ui.w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

func (ui *UI) style(background, foreground string) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(1, 2)
	if ui.color {
		style = style.Background(lipgloss.Color(background)).Foreground(lipgloss.Color(foreground))
	}
	return style
}

// PrintHeader prints the configuration being planned.
func (ui *UI) PrintHeader(cfg config.Config) {
	terrainDesc := cfg.Terrain
	if cfg.Terrain == config.TerrainSimplex {
		terrainDesc = fmt.Sprintf("%s (seed=%d, scale=%g, amplitude=%g)",
			cfg.Terrain, cfg.Seed, cfg.NoiseScale, cfg.NoiseAmplitude)
	}
	startX, startY := cfg.Start()
	header := fmt.Sprintf("Route planning with %q\n%s\ncanvas %dx%d, start (%d, %d), leg %g, turn ±%d°",
		cfg.Searcher, terrainDesc, cfg.Width, cfg.Height, startX, startY, cfg.LegDistance, cfg.MaxTurnDeg)
	_, _ = fmt.Fprintln(ui.w)
	ui.printCentered(ui.style("12", "0").Render(header))
	_, _ = fmt.Fprintln(ui.w)
}

// PrintRoute prints a table with each state of the route, and the totals.
func (ui *UI) PrintRoute(space *state.Space, route state.Route, result planner.Result) {
	var buf bytes.Buffer
	columns := []string{"#", "Position", "Elevation", "Heading", "Step Cost", "Total Cost"}
	for _, column := range columns {
		buf.WriteString(centerString(column, CharsPerColumn))
	}
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("-", CharsPerColumn*len(columns)))
	buf.WriteString("\n")

	var total int64
	for ii, s := range route {
		stepCost := "-"
		if ii > 0 && ii-1 < len(result.StepCosts) {
			total += result.StepCosts[ii-1]
			stepCost = fmt.Sprintf("%d", result.StepCosts[ii-1])
		}
		for _, cell := range []string{
			fmt.Sprintf("%d", ii),
			s.Pos.String(),
			fmt.Sprintf("%.3f", space.RealElevation(s)),
			fmt.Sprintf("%d°", s.Heading),
			stepCost,
			fmt.Sprintf("%d", total),
		} {
			buf.WriteString(centerString(cell, CharsPerColumn))
		}
		buf.WriteString("\n")
	}
	ui.printCentered(buf.String())
	_, _ = fmt.Fprintln(ui.w)

	summary := fmt.Sprintf("%d steps, total cost %d\n%d states expanded, %d generated, %d improved, max frontier %d\nfound in %s",
		len(route)-1, result.Cost,
		result.Stats.Expanded, result.Stats.Generated, result.Stats.Improved, result.Stats.MaxFrontier,
		result.Elapsed)
	ui.printCentered(ui.style("10", "0").Render(summary))
	_, _ = fmt.Fprintln(ui.w)
}

// PrintFailure prints why no route was found.
func (ui *UI) PrintFailure(err error) {
	_, _ = fmt.Fprintln(ui.w)
	ui.printCentered(ui.style("9", "0").Render(fmt.Sprintf("*** NO ROUTE: %v ***", err)))
	_, _ = fmt.Fprintln(ui.w)
}

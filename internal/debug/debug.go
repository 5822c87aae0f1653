package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// GridStats is the grid summary shown by the overlay.
type GridStats struct {
	Phase    string
	Cells    int
	Dims     [3]int
	Gap      [3]float32
	Centered bool
	// Pending is true when spacing was edited but not yet applied to the cells.
	Pending bool
}

// Debug draws runtime overlays in the top-right corner: FPS and a grid summary.
type Debug struct {
	ShowFPS    bool
	ShowGrid   bool
	stats      func() GridStats
	frameCount uint32
	lines      []string
}

// New returns an overlay reading grid stats from stats. FPS is hidden, the grid summary shown.
func New(stats func() GridStats) *Debug {
	return &Debug{ShowGrid: true, stats: stats}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lines = nil
}

// SetShowGrid sets whether the grid summary is drawn.
func (d *Debug) SetShowGrid(show bool) {
	d.ShowGrid = show
	d.lines = nil
}

// Lines returns the overlay text for the given stats and fps.
func (d *Debug) Lines(s GridStats, fps int32) []string {
	var out []string
	if d.ShowFPS {
		out = append(out, fmt.Sprintf("FPS: %d", fps))
	}
	if d.ShowGrid {
		out = append(out,
			fmt.Sprintf("Grid: %s, %d cells", s.Phase, s.Cells),
			fmt.Sprintf("Dims: %d x %d x %d", s.Dims[0], s.Dims[1], s.Dims[2]),
			fmt.Sprintf("Gap: %.2f, %.2f, %.2f", s.Gap[0], s.Gap[1], s.Gap[2]),
		)
		centered := "Centered: off"
		if s.Centered {
			centered = "Centered: on"
		}
		if s.Pending {
			centered += " (pending)"
		}
		out = append(out, centered)
	}
	return out
}

// Draw renders the enabled overlays. Call after the scene and terminal in the draw loop.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.lines = d.Lines(d.stats(), rl.GetFPS())
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

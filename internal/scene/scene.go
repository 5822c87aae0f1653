package scene

import (
	"cellgrid/internal/cellworld"
	"cellgrid/internal/grid"
	"cellgrid/internal/primitives"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// cameraDistance is how far from the grid center the camera starts, in multiples of the grid's largest extent.
	cameraDistance = 1.5
	minCameraDist  = 6
)

var boundsColor = rl.NewColor(240, 200, 80, 200)

// Scene holds a 3D camera and draws the cell world. Update runs camera logic (free camera);
// Draw renders between BeginMode3D and EndMode3D.
// BoundsVisible draws the grid's bounding box around the cells.
type Scene struct {
	Camera        rl.Camera3D
	GridVisible   bool
	BoundsVisible bool
	world         *cellworld.World
	prims         *primitives.Registry
	layout        func() grid.Config
	cursorDone    bool
}

// New returns a scene that draws every cell in world. layout reports the grid config currently
// applied to the cells; it is used for the bounds box and initial camera framing.
func New(world *cellworld.World, layout func() grid.Config) *Scene {
	s := &Scene{
		world:       world,
		prims:       primitives.NewRegistry(),
		layout:      layout,
		GridVisible: true,
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.Frame()
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// SetBoundsVisible sets whether the grid's bounding box is drawn.
func (s *Scene) SetBoundsVisible(visible bool) {
	s.BoundsVisible = visible
}

// Frame points the camera at the grid's center from a diagonal far enough to see all of it.
func (s *Scene) Frame() {
	lo, hi := bounds(s.layout())
	center := rl.NewVector3((lo[0]+hi[0])/2, (lo[1]+hi[1])/2, (lo[2]+hi[2])/2)
	size := math32.Max(hi[0]-lo[0], math32.Max(hi[1]-lo[1], hi[2]-lo[2]))
	d := math32.Max(size*cameraDistance, minCameraDist)
	s.Camera.Target = center
	s.Camera.Position = rl.NewVector3(center.X+d, center.Y+d, center.Z+d)
}

// bounds returns the min and max corners of the grid in local space.
// Uncentered grids start at the origin; centered grids are symmetric around it.
func bounds(c grid.Config) (lo, hi grid.Vec3) {
	ext := grid.Extent(c)
	for a := 0; a < 3; a++ {
		e := math32.Abs(ext[a])
		if c.Centered {
			lo[a], hi[a] = -e/2, e/2
		} else {
			lo[a], hi[a] = 0, e
		}
	}
	return lo, hi
}

// Update runs once per frame. Uses raylib UpdateCamera with CameraFree. The cursor is disabled
// on the first frame so the mouse is captured for camera control.
func (s *Scene) Update() {
	if !s.cursorDone {
		rl.DisableCursor()
		s.cursorDone = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// Draw renders the editor grid, every cell, and the bounds box.
// Call after ClearBackground and before 2D overlays (terminal, HUD).
func (s *Scene) Draw() {
	cam := s.Camera.Position
	s.prims.SetView([3]float32{cam.X, cam.Y, cam.Z}, [3]float32{0.5, 1, 0.5})

	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	def := s.world.Prefab()
	s.world.Each(func(_ cellworld.Cell, t cellworld.Transform) {
		s.prims.Draw(def, [3]float32(t.Position), [3]float32(t.Scale))
	})
	if s.BoundsVisible {
		lo, hi := bounds(s.layout())
		rl.DrawBoundingBox(rl.NewBoundingBox(
			rl.NewVector3(lo[0], lo[1], lo[2]),
			rl.NewVector3(hi[0], hi[1], hi[2]),
		), boundsColor)
	}
	rl.EndMode3D()
}

// Unload frees GPU resources held by the scene.
func (s *Scene) Unload() {
	s.prims.Unload()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		// Line along Z at x=i, then along X at z=i.
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	axes := [3]rl.Color{
		rl.NewColor(220, 80, 80, axisLineAlpha),
		rl.NewColor(80, 220, 80, axisLineAlpha),
		rl.NewColor(80, 80, 220, axisLineAlpha),
	}
	for a, c := range axes {
		var lo, hi [3]float32
		lo[a], hi[a] = -gridExtent, gridExtent
		rl.DrawLine3D(rl.NewVector3(lo[0], lo[1], lo[2]), rl.NewVector3(hi[0], hi[1], hi[2]), c)
	}
}

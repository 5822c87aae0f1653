package primitives

import (
	"cellgrid/internal/prefab"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for one primitive type plus the model-space offset that
// centers the mesh on its position.
type cached struct {
	mesh   rl.Mesh
	mtl    rl.Material
	offset rl.Vector3
}

// Registry maps primitive type names to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives loaded.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const (
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 16
)

// genMesh builds the unit-sized mesh for typ. Every shape fits a 1x1x1 box so a cell prefab's
// size means the same thing for all of them.
func genMesh(typ string) (rl.Mesh, rl.Vector3, bool) {
	switch typ {
	case "cube":
		return rl.GenMeshCube(1, 1, 1), rl.Vector3{}, true
	case "sphere":
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices), rl.Vector3{}, true
	case "cylinder":
		// Raylib cylinder: base Y=0, top Y=height. Offset -height/2 so center is at position.
		return rl.GenMeshCylinder(0.5, 1, cylinderSlices), rl.NewVector3(0, -0.5, 0), true
	case "plane":
		return rl.GenMeshPlane(1, 1, 1, 1), rl.Vector3{}, true
	}
	return rl.Mesh{}, rl.Vector3{}, false
}

// ensure loads typ into the cache. Returns false for unknown types.
func (r *Registry) ensure(typ string) (cached, bool) {
	if c, ok := r.cache[typ]; ok {
		return c, true
	}
	mesh, offset, ok := genMesh(typ)
	if !ok {
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl, offset: offset}
	r.cache[typ] = c
	return c, true
}

// Draw draws one cell of def at position with the given scale. Must be called between BeginMode3D and EndMode3D.
// Unknown types are skipped.
func (r *Registry) Draw(def prefab.Def, position, scale [3]float32) {
	c, ok := r.ensure(def.Type)
	if !ok {
		return
	}
	rgba := def.RGBA()
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(rgba[0], rgba[1], rgba[2], rgba[3])
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	// Order: offset (center mesh), then scale, then translate to position.
	transform := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixTranslate(c.offset.X, c.offset.Y, c.offset.Z),
			rl.MatrixScale(scale[0], scale[1], scale[2]),
		),
		rl.MatrixTranslate(position[0], position[1], position[2]),
	)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Unload releases every cached mesh and material. Call before closing the window.
func (r *Registry) Unload() {
	for typ, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, typ)
	}
}

package cellworld

import (
	"fmt"

	"cellgrid/internal/grid"
	"cellgrid/internal/prefab"

	"github.com/mlange-42/ark/ecs"
)

// Cell identifies which grid slot an entity fills.
type Cell struct {
	Index grid.Index
	Name  string
}

// Transform is an entity's local placement. There is no rotation: cells are always axis-aligned.
type Transform struct {
	Position grid.Vec3
	Scale    grid.Vec3
}

// World stores cells as ECS entities. It implements controller.Host[ecs.Entity].
// Not safe for concurrent use (ark worlds are single-threaded).
type World struct {
	world  ecs.World
	cells  *ecs.Map2[Cell, Transform]
	filter *ecs.Filter2[Cell, Transform]
	prefab prefab.Def
	count  int
}

// New returns an empty world whose cells are drawn as def.
func New(def prefab.Def) *World {
	w := &World{world: ecs.NewWorld(), prefab: def}
	w.cells = ecs.NewMap2[Cell, Transform](&w.world)
	w.filter = ecs.NewFilter2[Cell, Transform](&w.world)
	return w
}

// Prefab returns the definition cells are instantiated from.
func (w *World) Prefab() prefab.Def { return w.prefab }

// SetPrefab changes the definition used by cells allocated from now on.
// Live cells keep their scale; rebuild the grid to replace them.
func (w *World) SetPrefab(def prefab.Def) { w.prefab = def }

// Allocate creates a cell entity at the origin with the prefab's scale.
func (w *World) Allocate(idx grid.Index, name string) (ecs.Entity, error) {
	e := w.cells.NewEntity(
		&Cell{Index: idx, Name: name},
		&Transform{Scale: grid.Vec3(w.prefab.Scale())},
	)
	w.count++
	return e, nil
}

// Apply sets the entity's local position. Dead entities are ignored.
func (w *World) Apply(e ecs.Entity, pos grid.Vec3) {
	if !w.world.Alive(e) {
		return
	}
	_, t := w.cells.Get(e)
	t.Position = pos
}

// Destroy removes the entity. Dead entities are ignored.
func (w *World) Destroy(e ecs.Entity) {
	if !w.world.Alive(e) {
		return
	}
	w.world.RemoveEntity(e)
	w.count--
}

// Len returns the number of live cells.
func (w *World) Len() int { return w.count }

// Alive reports whether e is a live cell.
func (w *World) Alive(e ecs.Entity) bool { return w.world.Alive(e) }

// Position returns the local position of e.
func (w *World) Position(e ecs.Entity) (grid.Vec3, error) {
	if !w.world.Alive(e) {
		return grid.Vec3{}, fmt.Errorf("cellworld: entity %v is not alive", e)
	}
	_, t := w.cells.Get(e)
	return t.Position, nil
}

// Each calls fn for every live cell. fn must not create or destroy entities.
func (w *World) Each(fn func(c Cell, t Transform)) {
	query := w.filter.Query()
	for query.Next() {
		c, t := query.Get()
		fn(*c, *t)
	}
}

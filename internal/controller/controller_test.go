package controller

import (
	"errors"
	"testing"

	"cellgrid/internal/cellworld"
	"cellgrid/internal/grid"
	"cellgrid/internal/logger"
	"cellgrid/internal/prefab"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoRoom = errors.New("no room")

// fakeHost records every call. Handles are the cell names.
type fakeHost struct {
	live      map[string]grid.Vec3
	applied   int
	destroyed []string
	failAt    int // fail the n-th Allocate (1-based); 0 never fails
	allocs    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{live: make(map[string]grid.Vec3)}
}

func (f *fakeHost) Allocate(_ grid.Index, name string) (string, error) {
	f.allocs++
	if f.failAt > 0 && f.allocs == f.failAt {
		return "", errNoRoom
	}
	f.live[name] = grid.Vec3{}
	return name, nil
}

func (f *fakeHost) Apply(h string, pos grid.Vec3) {
	f.applied++
	f.live[h] = pos
}

func (f *fakeHost) Destroy(h string) {
	f.destroyed = append(f.destroyed, h)
	delete(f.live, h)
}

func testConfig() grid.Config {
	return grid.Config{
		Dimensions: grid.Dims{2, 1, 3},
		CellSize:   grid.Vec3{1, 1, 1},
		Gap:        grid.Vec3{0, 0, 0},
	}
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	_, err := New[string](testConfig(), nil, nil)
	assert.Error(t, err)

	bad := testConfig()
	bad.Dimensions[2] = -1
	_, err = New[string](bad, newFakeHost(), nil)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	bad.Dimensions = grid.Dims{1 << 62, 2, 1}
	_, err = New[string](bad, newFakeHost(), nil)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)
}

func TestLifecycle(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	log := logger.New("")
	c, err := New[string](testConfig(), host, log)
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, c.Phase())

	// Polling before Start does nothing.
	moved, err := c.FixedUpdate()
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, c.Start())
	assert.Equal(t, Built, c.Phase())
	assert.Len(t, host.live, 6)
	assert.Equal(t, grid.Vec3{1.5, 0.5, 2.5}, host.live["Cell 1x0x2"])

	h, ok := c.Cell(grid.Index{1, 0, 2})
	require.True(t, ok)
	assert.Equal(t, "Cell 1x0x2", h)

	// No spacing change: nothing moves.
	host.applied = 0
	moved, err = c.FixedUpdate()
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Zero(t, host.applied)

	c.SetCentered(true)
	c.SetGap(grid.Vec3{1, 0, 0})
	assert.True(t, grid.NeedsRebuild(c.Applied(), c.Config().Spacing()))
	moved, err = c.FixedUpdate()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 6, host.applied)
	assert.Empty(t, host.destroyed)
	assert.Equal(t, c.Config().Spacing(), c.Applied())
	// extent x = 2*1 + 1*1 = 3, so x positions are 0.5-1.5 and 2.5-1.5.
	assert.Equal(t, grid.Vec3{1, 0, 1}, host.live["Cell 1x0x2"])
	assert.Equal(t, grid.Vec3{-1, 0, -1}, host.live["Cell 0x0x0"])

	// Applied again: idle.
	moved, err = c.FixedUpdate()
	require.NoError(t, err)
	assert.False(t, moved)

	c.Teardown()
	assert.Equal(t, Uninitialized, c.Phase())
	assert.Empty(t, host.live)
	assert.Len(t, host.destroyed, 6)
	assert.Nil(t, c.State())
	c.Teardown()
	assert.Len(t, host.destroyed, 6)

	lines := log.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "grid built: [2 1 3] cells=6")
	assert.Contains(t, lines[1], "grid relocated")
	assert.Contains(t, lines[2], "grid cleared: 6 cells destroyed")
}

func TestRebuild_FailureDestroysPartialCells(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	host.failAt = 4
	c, err := New[string](testConfig(), host, nil)
	require.NoError(t, err)

	err = c.Start()
	require.ErrorIs(t, err, errNoRoom)
	assert.Equal(t, Uninitialized, c.Phase())
	assert.Empty(t, host.live)
	assert.Equal(t, []string{"Cell 0x0x0", "Cell 0x0x1", "Cell 0x0x2"}, host.destroyed)
	assert.Zero(t, host.applied)
}

func TestRebuild_PlacesCellsAtRecordedPositions(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	cfg := testConfig()
	cfg.Gap = grid.Vec3{0.5, 1, 0.25}
	cfg.Centered = true
	c, err := New[string](cfg, host, nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	assert.Equal(t, 6, host.applied)
	for _, r := range c.State().Records {
		assert.Equal(t, r.Position, host.live[r.Handle], r.Handle)
	}
}

func TestResize(t *testing.T) {
	t.Parallel()

	host := newFakeHost()
	c, err := New[string](testConfig(), host, nil)
	require.NoError(t, err)

	// Uninitialized: config only.
	require.NoError(t, c.Resize(grid.Dims{1, 1, 1}))
	assert.Equal(t, Uninitialized, c.Phase())
	assert.Empty(t, host.live)

	require.NoError(t, c.Start())
	assert.Len(t, host.live, 1)

	require.NoError(t, c.Resize(grid.Dims{3, 3, 1}))
	assert.Equal(t, Built, c.Phase())
	assert.Len(t, host.live, 9)
	assert.Equal(t, []string{"Cell 0x0x0"}, host.destroyed)
	assert.Equal(t, 9, c.State().Len())

	assert.ErrorIs(t, c.Resize(grid.Dims{-1, 1, 1}), grid.ErrInvalidDimensions)
	assert.ErrorIs(t, c.Resize(grid.Dims{1 << 62, 2, 1}), grid.ErrInvalidDimensions)
	assert.Equal(t, grid.Dims{3, 3, 1}, c.Config().Dimensions)
	assert.Len(t, host.live, 9)
}

func TestWithCellWorld(t *testing.T) {
	t.Parallel()

	w := cellworld.New(prefab.Default())
	cfg := grid.Config{
		Dimensions: grid.Dims{2, 2, 2},
		CellSize:   grid.Vec3{2, 2, 2},
		Gap:        grid.Vec3{0.5, 0.5, 0.5},
		Centered:   true,
	}
	c, err := New[ecs.Entity](cfg, w, nil)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	assert.Equal(t, 8, w.Len())

	for _, r := range c.State().Records {
		pos, err := w.Position(r.Handle)
		require.NoError(t, err)
		assert.Equal(t, r.Position, pos)
	}
	// extent = 2*2 + 0.5 = 4.5; first cell center = 1 - 2.25.
	first, ok := c.Cell(grid.Index{0, 0, 0})
	require.True(t, ok)
	pos, err := w.Position(first)
	require.NoError(t, err)
	assert.Equal(t, grid.Vec3{-1.25, -1.25, -1.25}, pos)

	c.SetCentered(false)
	moved, err := c.FixedUpdate()
	require.NoError(t, err)
	require.True(t, moved)
	pos, err = w.Position(first)
	require.NoError(t, err)
	assert.Equal(t, grid.Vec3{1, 1, 1}, pos)
	assert.Equal(t, 8, w.Len())

	require.NoError(t, c.Resize(grid.Dims{1, 1, 4}))
	assert.Equal(t, 4, w.Len())
	assert.False(t, w.Alive(first))

	c.Teardown()
	assert.Equal(t, 0, w.Len())
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "built", Built.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}

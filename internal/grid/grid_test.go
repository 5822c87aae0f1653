package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestLocalPosition_Examples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		centered bool
		want     []Vec3
	}{
		{"centered", true, []Vec3{{-0.5, 0, 0}, {0.5, 0, 0}}},
		{"not centered", false, []Vec3{{0.5, 0.5, 0.5}, {1.5, 0.5, 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Config{
				Dimensions: Dims{2, 1, 1},
				CellSize:   Vec3{1, 1, 1},
				Centered:   tt.centered,
			}
			for x, want := range tt.want {
				got, err := LocalPosition(c, Index{x, 0, 0})
				require.NoError(t, err)
				if diff := cmp.Diff(want, got, approx); diff != "" {
					t.Errorf("index %d (-want +got):\n%s", x, diff)
				}
			}
		})
	}
}

func TestLocalPosition_OriginIsHalfCell(t *testing.T) {
	t.Parallel()

	configs := []Config{
		{Dimensions: Dims{1, 1, 1}, CellSize: Vec3{1, 1, 1}},
		{Dimensions: Dims{4, 2, 3}, CellSize: Vec3{2, 0.5, 3}, Gap: Vec3{0.25, 1, 0}},
		{Dimensions: Dims{10, 10, 10}, CellSize: Vec3{0.1, 7, 1}, Gap: Vec3{-0.05, 2, 4}},
	}
	for _, c := range configs {
		got, err := LocalPosition(c, Index{0, 0, 0})
		require.NoError(t, err)
		want := Vec3{c.CellSize[0] / 2, c.CellSize[1] / 2, c.CellSize[2] / 2}
		assert.Equal(t, want, got)
	}
}

func TestLocalPosition_SingleCellCentersOnOrigin(t *testing.T) {
	t.Parallel()

	for _, gap := range []Vec3{{0, 0, 0}, {1, 2, 3}, {-4, 0.5, 100}} {
		c := Config{
			Dimensions: Dims{1, 1, 1},
			CellSize:   Vec3{3, 1.5, 0.2},
			Gap:        gap,
			Centered:   true,
		}
		got, err := LocalPosition(c, Index{0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, Vec3{0, 0, 0}, got, "gap %v", gap)
	}
}

func TestLocalPosition_StepIsCellPlusGap(t *testing.T) {
	t.Parallel()

	for _, centered := range []bool{false, true} {
		c := Config{
			Dimensions: Dims{5, 5, 5},
			CellSize:   Vec3{1.5, 2, 0.5},
			Gap:        Vec3{0.25, 0, 1},
			Centered:   centered,
		}
		for a := 0; a < 3; a++ {
			step := c.CellSize[a] + c.Gap[a]
			for i := 0; i < c.Dimensions[a]-1; i++ {
				var lo, hi Index
				lo[a], hi[a] = i, i+1
				p0, err := LocalPosition(c, lo)
				require.NoError(t, err)
				p1, err := LocalPosition(c, hi)
				require.NoError(t, err)
				assert.InDelta(t, step, p1[a]-p0[a], 1e-5, "axis %d index %d centered %v", a, i, centered)
			}
		}
	}
}

func TestLocalPosition_CenteredIsShiftedByHalfExtent(t *testing.T) {
	t.Parallel()

	c := Config{
		Dimensions: Dims{3, 2, 4},
		CellSize:   Vec3{1, 2, 0.5},
		Gap:        Vec3{0.5, 0.25, 1},
	}
	centered := c
	centered.Centered = true
	ext := Extent(c)
	assert.Equal(t, Vec3{4, 4.25, 5}, ext)

	for x := 0; x < 3; x++ {
		for z := 0; z < 4; z++ {
			idx := Index{x, 1, z}
			raw, err := LocalPosition(c, idx)
			require.NoError(t, err)
			got, err := LocalPosition(centered, idx)
			require.NoError(t, err)
			for a := 0; a < 3; a++ {
				assert.InDelta(t, raw[a]-ext[a]/2, got[a], 1e-5)
			}
		}
	}
}

func TestLocalPosition_Errors(t *testing.T) {
	t.Parallel()

	c := Config{Dimensions: Dims{2, 3, 4}, CellSize: Vec3{1, 1, 1}}
	tests := []struct {
		name string
		cfg  Config
		idx  Index
		want error
	}{
		{"x equals dimension", c, Index{2, 0, 0}, ErrOutOfRange},
		{"y past dimension", c, Index{0, 5, 0}, ErrOutOfRange},
		{"z equals dimension", c, Index{0, 0, 4}, ErrOutOfRange},
		{"negative index", c, Index{0, -1, 0}, ErrOutOfRange},
		{"empty grid", Config{}, Index{0, 0, 0}, ErrOutOfRange},
		{"negative dimension", Config{Dimensions: Dims{2, -1, 1}}, Index{0, 0, 0}, ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LocalPosition(tt.cfg, tt.idx)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNeedsRebuild(t *testing.T) {
	t.Parallel()

	base := Spacing{Gap: Vec3{0.5, 0, 1}, Centered: true}
	assert.False(t, NeedsRebuild(base, base))
	assert.False(t, NeedsRebuild(Spacing{}, Spacing{}))

	gapChanged := base
	gapChanged.Gap[2] = 2
	assert.True(t, NeedsRebuild(base, gapChanged))

	centerChanged := base
	centerChanged.Centered = false
	assert.True(t, NeedsRebuild(base, centerChanged))
}

func TestConfigSpacing(t *testing.T) {
	t.Parallel()

	c := Config{Dimensions: Dims{1, 2, 3}, CellSize: Vec3{1, 1, 1}, Gap: Vec3{1, 2, 3}, Centered: true}
	s := c.Spacing()
	assert.Equal(t, Spacing{Gap: Vec3{1, 2, 3}, Centered: true}, s)

	next := c.WithSpacing(Spacing{Gap: Vec3{0, 0, 0}})
	assert.Equal(t, c.Dimensions, next.Dimensions)
	assert.Equal(t, c.CellSize, next.CellSize)
	assert.Equal(t, Vec3{}, next.Gap)
	assert.False(t, next.Centered)
}

func TestDims(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 24, Dims{2, 3, 4}.Count())
	assert.Equal(t, 0, Dims{2, 0, 4}.Count())
	assert.Equal(t, 0, Dims{2, -3, 4}.Count())
	assert.False(t, Dims{0, -1, 0}.Valid())
	assert.True(t, Dims{0, 0, 0}.Valid())
	assert.True(t, Dims{1024, 1024, 1}.Valid())
	assert.False(t, Dims{1024, 1024, 2}.Valid())
	assert.False(t, Dims{0, MaxCells + 1, 1}.Valid())
	// x*y*z would overflow int; must be rejected, not wrapped.
	assert.False(t, Dims{1 << 62, 2, 1}.Valid())
	assert.False(t, Dims{1 << 31, 1 << 31, 1 << 2}.Valid())
	assert.Equal(t, 0, Dims{1 << 62, 2, 1}.Count())
	assert.True(t, Dims{2, 3, 4}.Contains(Index{1, 2, 3}))
	assert.False(t, Dims{2, 3, 4}.Contains(Index{1, 3, 3}))
}

func TestCellName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cell 0x1x2", CellName(Index{0, 1, 2}))
	assert.Equal(t, "Cell 10x0x7", CellName(Index{10, 0, 7}))
}

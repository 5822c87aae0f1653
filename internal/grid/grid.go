package grid

import (
	"errors"
	"fmt"
)

// Errors returned by the layout engine. All are caller contract violations; test with errors.Is.
var (
	ErrOutOfRange        = errors.New("grid: index out of range")
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
)

// Vec3 is a per-axis float triple (X, Y, Z). Used for positions, cell size, and gap.
type Vec3 [3]float32

// Dims holds the number of cells along X, Y, and Z.
type Dims [3]int

// Index identifies one cell. Each component is in [0, Dims[axis]).
type Index [3]int

// MaxCells caps the number of cells in one grid, and the length of any single axis.
const MaxCells = 1 << 20

// Count returns the total number of cells (x*y*z). Invalid dimensions count as zero.
func (d Dims) Count() int {
	if !d.Valid() {
		return 0
	}
	return d[0] * d[1] * d[2]
}

// Valid reports whether every dimension is in [0, MaxCells] and the grid has at most MaxCells cells.
func (d Dims) Valid() bool {
	n := 1
	for a := 0; a < 3; a++ {
		if d[a] < 0 || d[a] > MaxCells {
			return false
		}
		// Each factor is at most 2^20, so the running product cannot overflow before the check.
		n *= d[a]
		if n > MaxCells {
			return false
		}
	}
	return true
}

// Contains reports whether idx addresses a cell inside d.
func (d Dims) Contains(idx Index) bool {
	for a := 0; a < 3; a++ {
		if idx[a] < 0 || idx[a] >= d[a] {
			return false
		}
	}
	return true
}

// Config describes a grid layout. It is treated as immutable for the duration of one layout pass.
// CellSize components are usually positive but that is not enforced.
type Config struct {
	Dimensions Dims
	CellSize   Vec3
	Gap        Vec3
	Centered   bool
}

// Spacing is the part of a Config that may change while cells are live.
type Spacing struct {
	Gap      Vec3
	Centered bool
}

// Spacing returns the change-tracked gap and centered values of c.
func (c Config) Spacing() Spacing {
	return Spacing{Gap: c.Gap, Centered: c.Centered}
}

// WithSpacing returns a copy of c with gap and centered taken from s.
func (c Config) WithSpacing(s Spacing) Config {
	c.Gap = s.Gap
	c.Centered = s.Centered
	return c
}

// Extent returns the size of the whole grid on each axis: dims*cell + (dims-1)*gap.
// A single-cell axis has no gap term, so its extent is exactly the cell size.
func Extent(c Config) Vec3 {
	var out Vec3
	for a := 0; a < 3; a++ {
		n := float32(c.Dimensions[a])
		out[a] = n*c.CellSize[a] + (n-1)*c.Gap[a]
	}
	return out
}

// LocalPosition returns the center of the cell at idx relative to the grid origin.
//
//	raw[a] = idx[a]*(cell[a]+gap[a]) + cell[a]/2
//
// When c.Centered is set, half of Extent(c) is subtracted so the grid is symmetric around the origin.
// Fails with ErrInvalidDimensions for a negative dimension and ErrOutOfRange for an index outside the grid.
func LocalPosition(c Config, idx Index) (Vec3, error) {
	if !c.Dimensions.Valid() {
		return Vec3{}, fmt.Errorf("%w: %v", ErrInvalidDimensions, c.Dimensions)
	}
	if !c.Dimensions.Contains(idx) {
		return Vec3{}, fmt.Errorf("%w: %v not in %v", ErrOutOfRange, idx, c.Dimensions)
	}
	return localPosition(c, idx), nil
}

// localPosition is LocalPosition without validation; idx must be inside c.Dimensions.
func localPosition(c Config, idx Index) Vec3 {
	var out Vec3
	for a := 0; a < 3; a++ {
		out[a] = float32(idx[a])*(c.CellSize[a]+c.Gap[a]) + c.CellSize[a]/2
	}
	if c.Centered {
		ext := Extent(c)
		for a := 0; a < 3; a++ {
			out[a] -= ext[a] / 2
		}
	}
	return out
}

// NeedsRebuild reports whether the spacing changed since prev was applied.
// A true result means the live cells must be relocated; dimension changes are not tracked here.
func NeedsRebuild(prev, cur Spacing) bool {
	return prev.Gap != cur.Gap || prev.Centered != cur.Centered
}

// CellName returns the display name for the cell at idx, e.g. "Cell 0x1x2".
func CellName(idx Index) string {
	return fmt.Sprintf("Cell %dx%dx%d", idx[0], idx[1], idx[2])
}

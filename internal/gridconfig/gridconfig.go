package gridconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cellgrid/internal/grid"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the grid config file, relative to the process working directory.
const DefaultPath = "config/grid.yaml"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("gridconfig: invalid")

// Prefs holds the grid layout and viewer preferences. Persisted across runs.
// Cell state is never stored here; cells are rebuilt from these values on start.
type Prefs struct {
	Dimensions [3]int     `yaml:"dimensions"`
	CellSize   [3]float32 `yaml:"cell_size"`
	Gap        [3]float32 `yaml:"gap"`
	Centered   bool       `yaml:"centered"`
	// Prefab is the path to the cell's primitive definition (see internal/prefab).
	Prefab string `yaml:"prefab,omitempty"`
	// FixedRate is how many times per second spacing changes are polled.
	FixedRate   int  `yaml:"fixed_rate"`
	ShowFPS     bool `yaml:"show_fps"`
	GridVisible bool `yaml:"grid_visible"`
	ShowBounds  bool `yaml:"show_bounds"`
}

// Default returns a single unit cell, not centered, polled at 50 Hz, editor grid on.
func Default() Prefs {
	return Prefs{
		Dimensions:  [3]int{1, 1, 1},
		CellSize:    [3]float32{1, 1, 1},
		Gap:         [3]float32{0, 0, 0},
		Centered:    false,
		Prefab:      "assets/prefabs/cell.yaml",
		FixedRate:   50,
		ShowFPS:     false,
		GridVisible: true,
		ShowBounds:  false,
	}
}

// Grid returns the layout part of p.
func (p Prefs) Grid() grid.Config {
	return grid.Config{
		Dimensions: grid.Dims(p.Dimensions),
		CellSize:   grid.Vec3(p.CellSize),
		Gap:        grid.Vec3(p.Gap),
		Centered:   p.Centered,
	}
}

// SetGrid copies the layout values of c into p.
func (p *Prefs) SetGrid(c grid.Config) {
	p.Dimensions = [3]int(c.Dimensions)
	p.CellSize = [3]float32(c.CellSize)
	p.Gap = [3]float32(c.Gap)
	p.Centered = c.Centered
}

// Validate rejects negative or oversized dimensions, non-finite sizes or gaps, and a non-positive fixed rate.
func (p Prefs) Validate() error {
	if !grid.Dims(p.Dimensions).Valid() {
		return fmt.Errorf("%w: dimensions %v must be non-negative with at most %d cells: %w",
			ErrInvalid, p.Dimensions, grid.MaxCells, grid.ErrInvalidDimensions)
	}
	for a := 0; a < 3; a++ {
		if !finite(p.CellSize[a]) {
			return fmt.Errorf("%w: cell_size %v is not finite", ErrInvalid, p.CellSize)
		}
		if !finite(p.Gap[a]) {
			return fmt.Errorf("%w: gap %v is not finite", ErrInvalid, p.Gap)
		}
	}
	if p.FixedRate <= 0 {
		return fmt.Errorf("%w: fixed_rate %d must be positive", ErrInvalid, p.FixedRate)
	}
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Load reads preferences from path. A missing file returns Default() and no error.
// Keys absent from the file keep their default values. A file that does not parse or fails
// Validate returns Default() together with the error so the caller can report it.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("gridconfig: parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), err
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

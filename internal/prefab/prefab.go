package prefab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Types lists the primitive shapes a cell can be drawn as.
var Types = []string{"cube", "sphere", "cylinder", "plane"}

// Def is the YAML definition of the object instantiated for every cell (e.g. assets/prefabs/cell.yaml).
// Size is the drawn scale of one cell; it is independent of the grid's cell size so cells can be
// drawn smaller than their slot. A zero Size component means 1.
type Def struct {
	Type  string     `yaml:"type"`
	Size  [3]float32 `yaml:"size,omitempty"`
	Color string     `yaml:"color,omitempty"`
}

// Default returns a grey unit cube.
func Default() Def {
	return Def{Type: "cube", Size: [3]float32{1, 1, 1}, Color: "#808080"}
}

// Scale returns Size with zero components replaced by 1.
func (d Def) Scale() [3]float32 {
	s := d.Size
	for a := range s {
		if s[a] == 0 {
			s[a] = 1
		}
	}
	return s
}

// RGBA returns the parsed Color. An empty or malformed color yields the default grey.
func (d Def) RGBA() [4]uint8 {
	if c, ok := ParseHexColor(d.Color); ok {
		return c
	}
	return [4]uint8{128, 128, 128, 255}
}

// Validate checks that Type is a known primitive.
func (d Def) Validate() error {
	for _, t := range Types {
		if d.Type == t {
			return nil
		}
	}
	return fmt.Errorf("prefab: unknown type %q (use %s)", d.Type, strings.Join(Types, ", "))
}

// searchPrefixes are tried in order so prefabs are found whether run from repo root or cmd/grid.
var searchPrefixes = []string{"", "../../"}

// Resolve returns the first existing candidate for path, or path unchanged if none exists.
// Absolute paths are returned as-is.
func Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	for _, prefix := range searchPrefixes {
		p := filepath.Clean(prefix + path)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return path
}

// Load reads a prefab definition. An empty path returns Default().
func Load(path string) (Def, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(Resolve(path))
	if err != nil {
		return Def{}, err
	}
	d := Default()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Def{}, fmt.Errorf("prefab: parse %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Def{}, err
	}
	return d, nil
}

// ParseHexColor parses #RGB or #RRGGBB into RGBA (alpha 255). Returns false on parse error.
func ParseHexColor(s string) ([4]uint8, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return [4]uint8{}, false
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		r = hexByte(hex[0]) * 17
		g = hexByte(hex[1]) * 17
		b = hexByte(hex[2]) * 17
	case 6:
		r = hexByte(hex[0])<<4 + hexByte(hex[1])
		g = hexByte(hex[2])<<4 + hexByte(hex[3])
		b = hexByte(hex[4])<<4 + hexByte(hex[5])
	default:
		return [4]uint8{}, false
	}
	return [4]uint8{r, g, b, 255}, true
}

func hexByte(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

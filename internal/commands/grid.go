package commands

import (
	"fmt"
	"strconv"

	"cellgrid/internal/controller"
	"cellgrid/internal/grid"
)

// Grid is the part of a grid controller the commands drive.
type Grid interface {
	Phase() controller.Phase
	Config() grid.Config
	SetGap(gap grid.Vec3)
	SetCentered(centered bool)
	Resize(dims grid.Dims) error
	Rebuild() error
	Teardown()
}

// RegisterGrid adds the grid editing commands: gap, center, resize, rebuild, clear, status.
// Spacing edits (gap, center) take effect on the controller's next fixed update.
func RegisterGrid(r *Registry, g Grid) {
	gapFS := NewFlagSet("gap")
	r.Register("gap", "gap <x> <y> <z> - set spacing between cells (-- before negative values)", gapFS, func() error {
		v, err := parseFloat3(gapFS.Args())
		if err != nil {
			return fmt.Errorf("gap: %w", err)
		}
		g.SetGap(v)
		return nil
	})

	centerFS := NewFlagSet("center")
	on := centerFS.Bool("on", false, "center the grid on its origin")
	off := centerFS.Bool("off", false, "place the first cell's corner at the origin")
	r.Register("center", "center [--on|--off] - set or toggle centered layout", centerFS, func() error {
		// Flags persist between parses of the same FlagSet.
		defer func() { *on, *off = false, false }()
		switch {
		case *on && *off:
			return fmt.Errorf("center: use only one of --on and --off")
		case *on:
			g.SetCentered(true)
		case *off:
			g.SetCentered(false)
		default:
			g.SetCentered(!g.Config().Centered)
		}
		return nil
	})

	resizeFS := NewFlagSet("resize")
	r.Register("resize", "resize <x> <y> <z> - rebuild with new dimensions", resizeFS, func() error {
		d, err := parseInt3(resizeFS.Args())
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
		return g.Resize(grid.Dims(d))
	})

	RegisterAction(r, "rebuild", "rebuild - destroy and recreate every cell", g.Rebuild)

	RegisterAction(r, "clear", "clear - destroy every cell", func() error {
		g.Teardown()
		return nil
	})

	RegisterAction(r, "status", "status - print grid phase and layout", func() error {
		c := g.Config()
		r.Print(fmt.Sprintf("grid %s: dims=%v cell=%v gap=%v centered=%v",
			g.Phase(), c.Dimensions, c.CellSize, c.Gap, c.Centered))
		return nil
	})
}

// RegisterToggle adds a "name --show|--hide" command calling set.
func RegisterToggle(r *Registry, name, what string, set func(visible bool)) {
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show "+what)
	hide := fs.Bool("hide", false, "hide "+what)
	r.Register(name, name+" --show|--hide - "+what, fs, func() error {
		defer func() { *show, *hide = false, false }()
		switch {
		case *show && !*hide:
			set(true)
		case *hide && !*show:
			set(false)
		default:
			return fmt.Errorf("%s: use --show or --hide", name)
		}
		return nil
	})
}

// RegisterAction adds a command without flags or arguments.
func RegisterAction(r *Registry, name, usage string, run func() error) {
	r.Register(name, usage, NewFlagSet(name), run)
}

func parseFloat3(args []string) (grid.Vec3, error) {
	var out grid.Vec3
	if len(args) != 3 {
		return out, fmt.Errorf("expected x y z, got %d values", len(args))
	}
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return out, fmt.Errorf("value %d: %q is not a number", i, s)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseInt3(args []string) ([3]int, error) {
	var out [3]int
	if len(args) != 3 {
		return out, fmt.Errorf("expected x y z, got %d values", len(args))
	}
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil {
			return out, fmt.Errorf("value %d: %q is not an integer", i, s)
		}
		out[i] = n
	}
	return out, nil
}

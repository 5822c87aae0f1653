package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"cellgrid/internal/cellworld"
	"cellgrid/internal/commands"
	"cellgrid/internal/controller"
	"cellgrid/internal/debug"
	"cellgrid/internal/graphics"
	"cellgrid/internal/grid"
	"cellgrid/internal/gridconfig"
	"cellgrid/internal/logger"
	"cellgrid/internal/prefab"
	"cellgrid/internal/scene"
	"cellgrid/internal/terminal"

	"github.com/mlange-42/ark/ecs"
)

func main() {
	configPath := flag.String("config", gridconfig.DefaultPath, "grid config file (YAML)")
	prefabPath := flag.String("prefab", "", "cell prefab file (YAML); overrides the config's prefab")
	headless := flag.Bool("headless", false, "build the grid and print every cell instead of opening a window")
	flag.Parse()

	if err := run(*configPath, *prefabPath, *headless); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, prefabPath string, headless bool) error {
	logPath := logger.DefaultPath
	if headless {
		logPath = ""
	}
	log := logger.New(logPath)

	prefs, err := gridconfig.Load(configPath)
	if err != nil {
		log.Logf("config: %v (using defaults)", err)
	}
	if prefabPath == "" {
		prefabPath = prefs.Prefab
	}
	def, err := prefab.Load(prefabPath)
	if err != nil {
		return err
	}

	world := cellworld.New(def)
	ctrl, err := controller.New[ecs.Entity](prefs.Grid(), world, log)
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	if headless {
		return dump(os.Stdout, ctrl.State(), world)
	}
	view(configPath, prefs, ctrl, world, log)
	return nil
}

// dump writes one line per cell: its name and the position it holds in the world.
func dump(w io.Writer, st *grid.State[ecs.Entity], world *cellworld.World) error {
	for _, r := range st.Records {
		pos, err := world.Position(r.Handle)
		if err != nil {
			return fmt.Errorf("%s: %w", grid.CellName(r.Index), err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%.3f %.3f %.3f\n", grid.CellName(r.Index), pos[0], pos[1], pos[2]); err != nil {
			return err
		}
	}
	return nil
}

func view(configPath string, prefs gridconfig.Prefs, ctrl *controller.Controller[ecs.Entity], world *cellworld.World, log *logger.Logger) {
	// The scene frames and bounds the layout the cells actually have, not pending edits.
	scn := scene.New(world, func() grid.Config {
		if st := ctrl.State(); st != nil {
			return st.Config
		}
		return ctrl.Config()
	})
	defer scn.Unload()
	scn.SetGridVisible(prefs.GridVisible)
	scn.SetBoundsVisible(prefs.ShowBounds)

	hud := debug.New(func() debug.GridStats {
		cfg := ctrl.Config()
		return debug.GridStats{
			Phase:    ctrl.Phase().String(),
			Cells:    world.Len(),
			Dims:     [3]int(cfg.Dimensions),
			Gap:      [3]float32(cfg.Gap),
			Centered: cfg.Centered,
			Pending:  ctrl.Phase() == controller.Built && ctrl.Applied() != cfg.Spacing(),
		}
	})
	hud.SetShowFPS(prefs.ShowFPS)

	reg := commands.NewRegistry(log.Log)
	commands.RegisterGrid(reg, ctrl)
	commands.RegisterToggle(reg, "fps", "FPS counter", hud.SetShowFPS)
	commands.RegisterToggle(reg, "grid", "editor grid", scn.SetGridVisible)
	commands.RegisterToggle(reg, "bounds", "grid bounding box", scn.SetBoundsVisible)
	commands.RegisterAction(reg, "frame", "frame - point the camera at the grid", func() error {
		scn.Frame()
		return nil
	})
	prefabFS := commands.NewFlagSet("prefab")
	reg.Register("prefab", "prefab <path> - load a cell prefab and rebuild the grid with it", prefabFS, func() error {
		if prefabFS.NArg() != 1 {
			return fmt.Errorf("prefab: expected one path")
		}
		def, err := prefab.Load(prefabFS.Arg(0))
		if err != nil {
			return err
		}
		world.SetPrefab(def)
		prefs.Prefab = prefabFS.Arg(0)
		if ctrl.Phase() != controller.Built {
			return nil
		}
		return ctrl.Rebuild()
	})
	commands.RegisterAction(reg, "save", "save - write the current layout and view settings to the config file", func() error {
		prefs.SetGrid(ctrl.Config())
		prefs.ShowFPS = hud.ShowFPS
		prefs.GridVisible = scn.GridVisible
		prefs.ShowBounds = scn.BoundsVisible
		if err := gridconfig.Save(configPath, prefs); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		log.Logf("saved %s", configPath)
		return nil
	})
	term := terminal.New(log, reg)

	fixedUpdate := func() {
		if _, err := ctrl.FixedUpdate(); err != nil {
			log.Logf("fixed update: %v", err)
		}
	}
	update := func() {
		term.Update()
		if !term.IsOpen() {
			scn.Update()
		}
	}
	draw := func() {
		scn.Draw()
		term.Draw()
		hud.Draw()
	}
	graphics.Run(graphics.Window{Title: "cellgrid", FixedRate: prefs.FixedRate}, fixedUpdate, update, draw)
}

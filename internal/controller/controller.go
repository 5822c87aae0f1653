package controller

import (
	"errors"
	"fmt"

	"cellgrid/internal/grid"
	"cellgrid/internal/logger"
)

// Host creates, places, and destroys the objects that represent cells. H is the host's opaque handle.
// Calls are synchronous; Apply and Destroy are assumed to succeed.
type Host[H any] interface {
	// Allocate creates the object for the cell at idx. name is grid.CellName(idx).
	Allocate(idx grid.Index, name string) (H, error)
	// Apply moves the object to a local position.
	Apply(h H, pos grid.Vec3)
	// Destroy releases the object. The handle is not used afterwards.
	Destroy(h H)
}

// Phase is the lifecycle state of a Controller.
type Phase int

const (
	Uninitialized Phase = iota
	Built
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Built:
		return "built"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Controller drives a grid through its lifecycle against a Host:
//
//	Uninitialized --Start/Rebuild--> Built
//	Built --FixedUpdate (spacing changed)--> Built (cells relocated)
//	Built --Teardown--> Uninitialized
//
// Dimensions are fixed while Built. Resize is the explicit teardown-then-rebuild path for changing them.
// A Controller is not safe for concurrent use; drive it from the thread that owns the host.
type Controller[H any] struct {
	host    Host[H]
	log     *logger.Logger
	cfg     grid.Config  // live, editable config
	applied grid.Spacing // spacing the cells were last laid out with
	state   *grid.State[H]
}

// New returns an Uninitialized controller for cfg. log may be nil.
func New[H any](cfg grid.Config, host Host[H], log *logger.Logger) (*Controller[H], error) {
	if host == nil {
		return nil, errors.New("controller: nil host")
	}
	if !cfg.Dimensions.Valid() {
		return nil, fmt.Errorf("%w: %v", grid.ErrInvalidDimensions, cfg.Dimensions)
	}
	return &Controller[H]{host: host, log: log, cfg: cfg}, nil
}

// Phase returns Built when cells are live.
func (c *Controller[H]) Phase() Phase {
	if c.state == nil {
		return Uninitialized
	}
	return Built
}

// Config returns the live config, including spacing edits not yet applied.
func (c *Controller[H]) Config() grid.Config { return c.cfg }

// Applied returns the spacing the live cells are laid out with.
func (c *Controller[H]) Applied() grid.Spacing { return c.applied }

// State returns the grid state, or nil when Uninitialized. Callers must not modify it.
func (c *Controller[H]) State() *grid.State[H] { return c.state }

// Start builds the grid for the first time.
func (c *Controller[H]) Start() error {
	return c.Rebuild()
}

// setup records the live spacing as applied.
func (c *Controller[H]) setup() {
	c.applied = c.cfg.Spacing()
}

// Rebuild destroys any live cells and builds a fresh grid from the live config.
// Cells are placed at the positions recorded by grid.Build once every cell is allocated.
// If the host fails to allocate a cell, every cell allocated by this call is destroyed,
// the controller stays Uninitialized, and the error is returned.
func (c *Controller[H]) Rebuild() error {
	c.Teardown()
	c.setup()

	var allocated []H
	st, err := grid.Build(c.cfg, func(idx grid.Index) (H, error) {
		h, err := c.host.Allocate(idx, grid.CellName(idx))
		if err != nil {
			return h, err
		}
		allocated = append(allocated, h)
		return h, nil
	})
	if err != nil {
		for _, h := range allocated {
			c.host.Destroy(h)
		}
		c.log.Logf("grid build failed after %d cells: %v", len(allocated), err)
		return err
	}
	for _, r := range st.Records {
		c.host.Apply(r.Handle, r.Position)
	}
	c.state = st
	c.log.Logf("grid built: %v cells=%d centered=%v", c.cfg.Dimensions, st.Len(), c.cfg.Centered)
	return nil
}

// FixedUpdate relocates the live cells if gap or centering changed since they were laid out.
// It is meant to be polled at a fixed rate and does nothing while Uninitialized.
func (c *Controller[H]) FixedUpdate() (relocated bool, err error) {
	if c.state == nil || !grid.NeedsRebuild(c.applied, c.cfg.Spacing()) {
		return false, nil
	}
	if err := grid.Relocate(c.state, c.cfg, c.host.Apply); err != nil {
		return false, err
	}
	c.setup()
	c.log.Logf("grid relocated: gap=%v centered=%v", c.cfg.Gap, c.cfg.Centered)
	return true, nil
}

// SetGap edits the live gap. The cells move on the next FixedUpdate.
func (c *Controller[H]) SetGap(gap grid.Vec3) { c.cfg.Gap = gap }

// SetCentered edits the live centered flag. The cells move on the next FixedUpdate.
func (c *Controller[H]) SetCentered(centered bool) { c.cfg.Centered = centered }

// Resize changes the grid dimensions. When Built, the cells are torn down and rebuilt;
// when Uninitialized only the config changes.
func (c *Controller[H]) Resize(dims grid.Dims) error {
	if !dims.Valid() {
		return fmt.Errorf("%w: %v", grid.ErrInvalidDimensions, dims)
	}
	built := c.state != nil
	c.cfg.Dimensions = dims
	if !built {
		return nil
	}
	return c.Rebuild()
}

// Teardown destroys every live cell and returns to Uninitialized. It is a no-op when Uninitialized.
func (c *Controller[H]) Teardown() {
	if c.state == nil {
		return
	}
	n := c.state.Len()
	for _, r := range c.state.Records {
		c.host.Destroy(r.Handle)
	}
	c.state = nil
	c.log.Logf("grid cleared: %d cells destroyed", n)
}

// Cell returns the handle at idx. ok is false when Uninitialized or idx is outside the grid.
func (c *Controller[H]) Cell(idx grid.Index) (h H, ok bool) {
	return c.state.Cell(idx)
}

package grid

import "fmt"

// Record ties a cell index to the host handle placed there and its last computed position.
// The handle is owned by the host; the grid only keeps the association.
type Record[H any] struct {
	Index    Index
	Handle   H
	Position Vec3
}

// State is every record of a built grid plus the config it was last laid out with.
// Records are stored in build order (x outer, y middle, z inner).
type State[H any] struct {
	Config  Config
	Records []Record[H]
}

// Build allocates one handle per cell of c by calling allocate in x, y, z order and records
// each handle with its local position. The returned state covers exactly c.Dimensions.Count() cells.
//
// Build does not own the handles. If allocate fails, Build returns the error and no state;
// the caller is responsible for destroying any handles it handed out before the failure.
func Build[H any](c Config, allocate func(Index) (H, error)) (*State[H], error) {
	if !c.Dimensions.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, c.Dimensions)
	}
	st := &State[H]{
		Config:  c,
		Records: make([]Record[H], 0, c.Dimensions.Count()),
	}
	for x := 0; x < c.Dimensions[0]; x++ {
		for y := 0; y < c.Dimensions[1]; y++ {
			for z := 0; z < c.Dimensions[2]; z++ {
				idx := Index{x, y, z}
				h, err := allocate(idx)
				if err != nil {
					return nil, fmt.Errorf("allocate %v: %w", idx, err)
				}
				st.Records = append(st.Records, Record[H]{
					Index:    idx,
					Handle:   h,
					Position: localPosition(c, idx),
				})
			}
		}
	}
	return st, nil
}

// Relocate recomputes the position of every record under c and passes it to apply.
// No handles are added or removed. c must have the same dimensions the state was built with,
// otherwise ErrDimensionMismatch is returned and the state is left untouched.
// On success the state's config becomes c.
func Relocate[H any](st *State[H], c Config, apply func(H, Vec3)) error {
	if st == nil {
		return fmt.Errorf("%w: no grid state", ErrDimensionMismatch)
	}
	if st.Config.Dimensions != c.Dimensions {
		return fmt.Errorf("%w: state %v, config %v", ErrDimensionMismatch, st.Config.Dimensions, c.Dimensions)
	}
	for i := range st.Records {
		r := &st.Records[i]
		r.Position = localPosition(c, r.Index)
		if apply != nil {
			apply(r.Handle, r.Position)
		}
	}
	st.Config = c
	return nil
}

// Len returns the number of records.
func (s *State[H]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Cell returns the handle at idx. ok is false when idx is outside the grid.
func (s *State[H]) Cell(idx Index) (h H, ok bool) {
	if s == nil || !s.Config.Dimensions.Contains(idx) {
		return h, false
	}
	d := s.Config.Dimensions
	// Records are laid out z-fastest, matching Build.
	i := (idx[0]*d[1]+idx[1])*d[2] + idx[2]
	return s.Records[i].Handle, true
}

// Handles returns every handle in build order.
func (s *State[H]) Handles() []H {
	if s == nil {
		return nil
	}
	out := make([]H, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Handle
	}
	return out
}

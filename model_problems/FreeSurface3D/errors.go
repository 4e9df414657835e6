package FreeSurface3D

import (
	"errors"
	"fmt"

	"github.com/notargets/golbm/lattice"
)

var ErrAliasedBuffers = errors.New("collide and stream fields must be distinct buffers")

// InvariantError reports a numerical invariant broken at a single cell. It is
// fatal to the step that produced it.
type InvariantError struct {
	Cell      [3]int
	Index     int
	Quantity  string
	Direction int // -1 for per cell quantities
	Value     float64
}

func (e *InvariantError) Error() string {
	if e.Direction >= 0 {
		return fmt.Sprintf("invariant violated at cell %v (index %d): %s[%d] = %g",
			e.Cell, e.Index, e.Quantity, e.Direction, e.Value)
	}
	return fmt.Sprintf("invariant violated at cell %v (index %d): %s = %g",
		e.Cell, e.Index, e.Quantity, e.Value)
}

func newInvariantError(g lattice.Grid, ind int, quantity string, dir int, value float64) *InvariantError {
	x, y, z := g.Coord(ind)
	return &InvariantError{
		Cell:      [3]int{x, y, z},
		Index:     ind,
		Quantity:  quantity,
		Direction: dir,
		Value:     value,
	}
}

// ConfigError is a malformed grid or field layout, it can't be corrected mid step
type ConfigError struct {
	Cell [3]int
	Msg  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error at cell %v: %s", e.Cell, e.Msg)
}

package FreeSurface3D

import (
	"fmt"

	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
	"gonum.org/v1/gonum/floats"
)

// Fields is the simulation state owned by the outer loop. Distribution fields
// are indexed cellIndex*Q + direction.
type Fields struct {
	Grid    lattice.Grid
	Collide []float64 // Distributions after collision, the input to streaming
	Stream  []float64 // Distributions after streaming
	Density []float64
	Mass    []float64 // Only meaningful for INTERFACE cells
	Flags   []types.CellFlag
}

func NewFields(g lattice.Grid) (f *Fields) {
	N := g.NumCells()
	f = &Fields{
		Grid:    g,
		Collide: make([]float64, N*lattice.Q),
		Stream:  make([]float64, N*lattice.Q),
		Density: make([]float64, N),
		Mass:    make([]float64, N),
		Flags:   make([]types.CellFlag, N),
	}
	return
}

// Swap exchanges the collide and stream buffers after a streaming pass
func (f *Fields) Swap() {
	f.Collide, f.Stream = f.Stream, f.Collide
}

// Cell returns the Q distributions of cell ind within field
func Cell(field []float64, ind int) []float64 {
	return field[ind*lattice.Q : (ind+1)*lattice.Q]
}

func checkFieldSizes(g lattice.Grid, distributions [][]float64, scalars [][]float64,
	flags []types.CellFlag) (err error) {
	N := g.NumCells()
	for _, d := range distributions {
		if len(d) != N*lattice.Q {
			return fmt.Errorf("distribution field has %d values, grid needs %d", len(d), N*lattice.Q)
		}
	}
	for _, s := range scalars {
		if len(s) != N {
			return fmt.Errorf("scalar field has %d values, grid needs %d", len(s), N)
		}
	}
	if len(flags) != N {
		return fmt.Errorf("flag field has %d values, grid needs %d", len(flags), N)
	}
	return
}

func checkPartitions(pm *utils.PartitionMap, g lattice.Grid) (err error) {
	if pm == nil || pm.MaxIndex != g.NumCells() {
		err = fmt.Errorf("partition map must cover the %d cells of the grid", g.NumCells())
	}
	return
}

// TotalMass is the sum of density over FLUID cells and mass over INTERFACE cells
func (f *Fields) TotalMass(pm *utils.PartitionMap) (total float64, err error) {
	if err = checkPartitions(pm, f.Grid); err != nil {
		return
	}
	partial := make([]float64, pm.ParallelDegree)
	err = pm.ParallelDo(func(np, kMin, kMax int) error {
		var sum float64
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID:
				sum += f.Density[ind]
			case types.INTERFACE:
				sum += f.Mass[ind]
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		partial[np] = sum
		return nil
	})
	if err != nil {
		return
	}
	return floats.Sum(partial), nil
}

// CountFlags returns the number of cells carrying each flag
func (f *Fields) CountFlags() (counts map[types.CellFlag]int) {
	counts = make(map[types.CellFlag]int)
	for _, fl := range f.Flags {
		counts[fl]++
	}
	return
}

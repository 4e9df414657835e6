package FreeSurface3D

import (
	"testing"

	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

// newTestFields builds fields with a NO_SLIP halo and interior flags from flagAt
func newTestFields(lx, ly, lz int, flagAt func(x, y, z int) types.CellFlag) (f *Fields) {
	g, err := lattice.NewGrid(lx, ly, lz)
	if err != nil {
		panic(err)
	}
	f = NewFields(g)
	for ind := 0; ind < g.NumCells(); ind++ {
		x, y, z := g.Coord(ind)
		if g.OnHalo(x, y, z) {
			f.Flags[ind] = types.NO_SLIP
			continue
		}
		f.Flags[ind] = flagAt(x, y, z)
	}
	return
}

func allFluid(x, y, z int) types.CellFlag { return types.FLUID }

// setEquilibrium puts every fluid cell at equilibrium with density rho(ind) and velocity u
func setEquilibrium(f *Fields, rho func(ind int) float64, u [3]float64) {
	for ind, fl := range f.Flags {
		if !fl.IsFluidLike() {
			continue
		}
		r := rho(ind)
		feq := lattice.Feq(r, u)
		copy(Cell(f.Collide, ind), feq[:])
		f.Density[ind] = r
		if fl == types.FLUID {
			f.Mass[ind] = r
		}
	}
}

func unitDensity(int) float64 { return 1 }

func copyFloats(a []float64) []float64 {
	b := make([]float64, len(a))
	copy(b, a)
	return b
}

func testPartitions(f *Fields, NP int) *utils.PartitionMap {
	return utils.NewPartitionMap(NP, f.Grid.NumCells())
}

func totalMass(t *testing.T, f *Fields, pm *utils.PartitionMap) float64 {
	m, err := f.TotalMass(pm)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

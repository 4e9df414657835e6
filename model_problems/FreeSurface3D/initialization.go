package FreeSurface3D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
)

type InitType uint

const (
	POOL InitType = iota
	DAMBREAK
	DROP
)

var (
	InitNames = map[string]InitType{
		"pool":     POOL,
		"dambreak": DAMBREAK,
		"drop":     DROP,
	}
	InitPrintNames = []string{"Pool at rest", "Dam Break", "Drop falling into a pool"}
)

func (it InitType) Print() (txt string) {
	return InitPrintNames[it]
}

func NewInitType(label string) (it InitType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty init type, must be one of %v", InitNames)
		return
	}
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use init type named %s", label)
	}
	return
}

// InterfaceMass is the initial mass of cells on the fluid surface
const InterfaceMass = 0.5

// isFluid reports whether interior cell (x,y,z) starts out filled
func (it InitType) isFluid(g lattice.Grid, fillHeight float64, x, y, z int) bool {
	var (
		level = fillHeight * float64(g.Lz)
		fz    = float64(z) - 0.5
	)
	switch it {
	case POOL:
		return fz < level
	case DAMBREAK:
		return fz < level && 2*x <= g.Lx
	case DROP:
		var (
			cx, cy, cz = 0.5 * float64(g.Lx+1), 0.5 * float64(g.Ly+1), 0.75 * float64(g.Lz)
			r          = math.Min(float64(g.Lx), math.Min(float64(g.Ly), float64(g.Lz))) / 6.
			dx, dy, dz = float64(x) - cx, float64(y) - cy, float64(z) - cz
		)
		return fz < 0.5*level || dx*dx+dy*dy+dz*dz <= r*r
	}
	return false
}

/*
InitializeFields builds the flag field for the scenario and puts every fluid
cell at rest with unit density. The halo is NO_SLIP, with the x == 0 face
INFLOW when inflow is set. Fluid cells touching an EMPTY cell become INTERFACE
cells holding InterfaceMass.
*/
func (it InitType) InitializeFields(g lattice.Grid, fillHeight float64, inflow bool) (f *Fields) {
	var (
		N    = g.NumCells()
		dims = g.Dims()
	)
	f = NewFields(g)
	for ind := 0; ind < N; ind++ {
		x, y, z := g.Coord(ind)
		switch {
		case inflow && x == 0 && y > 0 && y < dims[1]-1 && z > 0 && z < dims[2]-1:
			f.Flags[ind] = types.INFLOW
		case g.OnHalo(x, y, z):
			f.Flags[ind] = types.NO_SLIP
		case it.isFluid(g, fillHeight, x, y, z):
			f.Flags[ind] = types.FLUID
		default:
			f.Flags[ind] = types.EMPTY
		}
	}
	for ind := 0; ind < N; ind++ {
		if f.Flags[ind] != types.FLUID {
			continue
		}
		for i := 0; i < lattice.Q; i++ {
			if f.Flags[g.Neighbor(ind, i)] == types.EMPTY {
				f.Flags[ind] = types.INTERFACE
				break
			}
		}
	}
	rest := lattice.Feq(1, [3]float64{})
	for ind := 0; ind < N; ind++ {
		switch f.Flags[ind] {
		case types.FLUID:
			f.Density[ind], f.Mass[ind] = 1, 1
		case types.INTERFACE:
			f.Density[ind], f.Mass[ind] = 1, InterfaceMass
		case types.EMPTY, types.NO_SLIP, types.INFLOW:
			continue
		}
		copy(Cell(f.Collide, ind), rest[:])
		copy(Cell(f.Stream, ind), rest[:])
	}
	return
}

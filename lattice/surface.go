package lattice

import (
	"github.com/notargets/golbm/types"
)

// FillFraction is the fraction of a cell occupied by fluid
func FillFraction(flag types.CellFlag, mass, density float64) (eps float64) {
	switch flag {
	case types.FLUID:
		return 1
	case types.INTERFACE:
		if density <= 0 {
			return 0
		}
		eps = mass / density
		switch {
		case eps < 0:
			eps = 0
		case eps > 1:
			eps = 1
		}
		return
	case types.EMPTY, types.NO_SLIP, types.INFLOW:
		return 0
	}
	return 0
}

// SurfaceNormal estimates the interface normal at cell (x,y,z) from central
// differences of the fill fraction. The normal points from the fluid towards
// the gas. The cell must not be on the halo.
func SurfaceNormal(g Grid, density, mass []float64, flags []types.CellFlag,
	x, y, z int) (n [3]float64) {
	eps := func(x, y, z int) float64 {
		ind := g.Index(x, y, z)
		return FillFraction(flags[ind], mass[ind], density[ind])
	}
	n[0] = 0.5 * (eps(x-1, y, z) - eps(x+1, y, z))
	n[1] = 0.5 * (eps(x, y-1, z) - eps(x, y+1, z))
	n[2] = 0.5 * (eps(x, y, z-1) - eps(x, y, z+1))
	return
}

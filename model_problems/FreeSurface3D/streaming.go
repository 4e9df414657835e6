package FreeSurface3D

import (
	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

// AtmosphericDensity is the gas reference density used to rebuild interface populations
const AtmosphericDensity = 1.0

/*
Stream pulls distributions from the upstream neighbors of every FLUID and
INTERFACE cell of collide into stream. EMPTY and boundary cells of stream are
not written.

For INTERFACE cells a second pass rebuilds the populations that have no valid
upstream source. The population stream[inv] arrives from the neighbor at
x + e_i, so it is rebuilt when that neighbor is EMPTY or when e_i points to the
gas side of the surface (n.e_i > 0, n points from fluid to gas):

	stream[inv] = feq[inv] + feq[i] - collide[i]

with feq taken at AtmosphericDensity and the velocity of the collide field. The
second pass reads only collide, mass, density and flags.

mass and density must hold the values of the previous step, collide and stream
must not share storage.
*/
func Stream(pm *utils.PartitionMap, g lattice.Grid, collide, stream, mass, density []float64,
	flags []types.CellFlag) (err error) {
	if err = checkFieldSizes(g, [][]float64{collide, stream}, [][]float64{mass, density}, flags); err != nil {
		return
	}
	if err = checkPartitions(pm, g); err != nil {
		return
	}
	if len(collide) != 0 && &collide[0] == &stream[0] {
		return ErrAliasedBuffers
	}
	return pm.ParallelDo(func(np, kMin, kMax int) error {
		var (
			rebuilt [lattice.Q]bool
		)
		for ind := kMin; ind < kMax; ind++ {
			switch flags[ind] {
			case types.FLUID:
				if err := checkInterior(g, ind); err != nil {
					return err
				}
				streamCell(g, collide, stream, ind)
				rebuilt = [lattice.Q]bool{}
				if err := checkStreamed(g, stream, ind, &rebuilt); err != nil {
					return err
				}
			case types.INTERFACE:
				if err := checkInterior(g, ind); err != nil {
					return err
				}
				streamCell(g, collide, stream, ind)
				rebuilt = [lattice.Q]bool{}
				if err := reconstructInterface(g, collide, stream, mass, density, flags, ind, &rebuilt); err != nil {
					return err
				}
				if err := checkStreamed(g, stream, ind, &rebuilt); err != nil {
					return err
				}
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		return nil
	})
}

// StreamStep runs the streaming step from f.Collide into f.Stream
func (f *Fields) StreamStep(pm *utils.PartitionMap) error {
	return Stream(pm, f.Grid, f.Collide, f.Stream, f.Mass, f.Density, f.Flags)
}

func checkInterior(g lattice.Grid, ind int) (err error) {
	x, y, z := g.Coord(ind)
	if g.OnHalo(x, y, z) {
		err = &ConfigError{
			Cell: [3]int{x, y, z},
			Msg:  "fluid cell on the halo layer has upstream neighbors outside of the grid",
		}
	}
	return
}

func streamCell(g lattice.Grid, collide, stream []float64, ind int) {
	var (
		fieldIndex = ind * lattice.Q
	)
	for i := 0; i < lattice.Q; i++ {
		stream[fieldIndex+i] = collide[g.Upstream(ind, i)*lattice.Q+i]
	}
}

func reconstructInterface(g lattice.Grid, collide, stream, mass, density []float64,
	flags []types.CellFlag, ind int, rebuilt *[lattice.Q]bool) (err error) {
	var (
		fieldIndex = ind * lattice.Q
		fc         = Cell(collide, ind)
		x, y, z    = g.Coord(ind)
		normal     = lattice.SurfaceNormal(g, density, mass, flags, x, y, z)
		feq        [lattice.Q]float64
		haveFeq    bool
	)
	for i := 0; i < lattice.Q; i++ {
		emptyAdjacent := flags[g.Neighbor(ind, i)] == types.EMPTY
		towardsGas := lattice.Dot(normal, lattice.VelocitiesF[i]) > 0
		if !emptyAdjacent && !towardsGas {
			continue
		}
		if !haveFeq {
			// Moments of the previous step
			rho := density[ind]
			if !(rho > 0) {
				return newInvariantError(g, ind, "density", -1, rho)
			}
			feq = lattice.Feq(AtmosphericDensity, lattice.Velocity(fc, rho))
			haveFeq = true
		}
		inv := lattice.Inverse(i)
		stream[fieldIndex+inv] = feq[inv] + feq[i] - fc[i]
		rebuilt[inv] = true
	}
	return
}

func checkStreamed(g lattice.Grid, stream []float64, ind int, rebuilt *[lattice.Q]bool) error {
	fs := Cell(stream, ind)
	for i := 0; i < lattice.Q; i++ {
		if rebuilt[i] {
			continue
		}
		if !(fs[i] >= 0) {
			return newInvariantError(g, ind, "streamed distribution", i, fs[i])
		}
	}
	return nil
}

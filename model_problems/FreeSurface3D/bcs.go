package FreeSurface3D

import (
	"fmt"

	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

/*
ApplyBoundaries fills the distributions of boundary cells in f.Collide so the
next streaming pass finds valid upstream values.
  - NO_SLIP: halfway bounce back, the population entering fluid neighbor
    x+e_i along e_i is the one that left it along the inverse direction
  - INFLOW: equilibrium at unit density and inflowVelocity
*/
func (f *Fields) ApplyBoundaries(pm *utils.PartitionMap, inflowVelocity [3]float64) error {
	var (
		g         = f.Grid
		inflowFeq = lattice.Feq(1, inflowVelocity)
	)
	if err := checkPartitions(pm, g); err != nil {
		return err
	}
	if !utils.IsFinite(inflowVelocity) {
		return fmt.Errorf("inflow velocity must be finite, have %v", inflowVelocity)
	}
	return pm.ParallelDo(func(np, kMin, kMax int) error {
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.NO_SLIP:
				var (
					x, y, z = g.Coord(ind)
					fc      = Cell(f.Collide, ind)
				)
				for i, e := range lattice.Velocities {
					if !g.InBounds(x+e[0], y+e[1], z+e[2]) {
						continue
					}
					nb := g.Neighbor(ind, i)
					if f.Flags[nb].IsFluidLike() {
						fc[i] = f.Collide[nb*lattice.Q+lattice.Inverse(i)]
					}
				}
			case types.INFLOW:
				copy(Cell(f.Collide, ind), inflowFeq[:])
			case types.FLUID, types.INTERFACE, types.EMPTY:
			}
		}
		return nil
	})
}

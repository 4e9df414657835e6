package FreeSurface3D

import (
	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
)

/*
CollideStep relaxes the FLUID and INTERFACE distributions of f.Collide towards
equilibrium in place (BGK), with a Smagorinsky local relaxation time when
smagorinskyConstant > 0, and adds the gravity body force

	f_i += 3 w_i rho (e_i . g)

which leaves the density unchanged and adds rho*g to the momentum.
*/
func (f *Fields) CollideStep(pm *utils.PartitionMap, tau, smagorinskyConstant float64, gravity [3]float64) error {
	var (
		g = f.Grid
	)
	if err := checkPartitions(pm, g); err != nil {
		return err
	}
	return pm.ParallelDo(func(np, kMin, kMax int) error {
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID, types.INTERFACE:
				fc := Cell(f.Collide, ind)
				rho := lattice.Density(fc)
				if !(rho > 0) {
					return newInvariantError(g, ind, "density", -1, rho)
				}
				feq := lattice.Feq(rho, lattice.Velocity(fc, rho))
				localTau := tau
				if smagorinskyConstant > 0 {
					localTau = lattice.LocalRelaxationTime(tau, lattice.StressTensor(fc, feq[:]), smagorinskyConstant)
				}
				for i := 0; i < lattice.Q; i++ {
					fc[i] -= (fc[i] - feq[i]) / localTau
					fc[i] += 3. * lattice.Weights[i] * rho * lattice.Dot(lattice.VelocitiesF[i], gravity)
				}
				f.Density[ind] = rho
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		return nil
	})
}

// UpdateDensity recomputes the density of FLUID and INTERFACE cells from f.Collide
func (f *Fields) UpdateDensity(pm *utils.PartitionMap) error {
	var (
		g = f.Grid
	)
	if err := checkPartitions(pm, g); err != nil {
		return err
	}
	return pm.ParallelDo(func(np, kMin, kMax int) error {
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID, types.INTERFACE:
				rho := lattice.Density(Cell(f.Collide, ind))
				if !(rho > 0) {
					return newInvariantError(g, ind, "density", -1, rho)
				}
				f.Density[ind] = rho
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		return nil
	})
}

package FreeSurface3D

import (
	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// SafetyFactor keeps the maximum velocity away from the critical velocity
const SafetyFactor = 0.8

// VelocityLimits returns the band of maximum velocities the current time step
// is kept for. The critical velocity is half of the velocity for which the
// scheme becomes unstable.
func VelocityLimits() (lower, upper float64) {
	critical := 0.5 * lattice.CS * lattice.CS
	return critical * SafetyFactor, critical / SafetyFactor
}

// MinimumTau is the smallest relaxation time a rescale may produce
func MinimumTau(smagorinskyConstant float64) float64 {
	if smagorinskyConstant > 0 {
		return 0.5
	}
	return 1. / 1.99
}

/*
AdaptTimeStep rescales the time step when the largest fluid velocity leaves the
band given by VelocityLimits, shrinking when above and growing (if
allowIncrease) when below. When a change is accepted the distributions (of
f.Collide), densities, interface masses and gravity are rescaled in place so
they describe the same physical state in the new time unit.

A change that would drop tau to MinimumTau or below is refused: it is logged
and the old pair is returned with nothing modified. Every cell is validated before
any is rescaled, so an *InvariantError also leaves the fields and gravity
untouched.
*/
func AdaptTimeStep(pm *utils.PartitionMap, f *Fields, gravity *[3]float64,
	oldTau, oldTimeStep, smagorinskyConstant float64, allowIncrease bool,
	log logrus.FieldLogger) (newTau, newTimeStep float64, err error) {
	var (
		g = f.Grid
	)
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err = checkFieldSizes(g, [][]float64{f.Collide}, [][]float64{f.Density, f.Mass}, f.Flags); err != nil {
		return
	}
	if err = checkPartitions(pm, g); err != nil {
		return
	}
	newTau, newTimeStep = oldTau, oldTimeStep

	// Pass 1: maximum velocity
	var maxVelocityNorm float64
	if maxVelocityNorm, err = f.maxVelocity(pm); err != nil {
		return
	}

	lower, upper := VelocityLimits()
	switch {
	case maxVelocityNorm > upper:
		newTimeStep = oldTimeStep * SafetyFactor
	case maxVelocityNorm < lower && allowIncrease:
		newTimeStep = oldTimeStep / SafetyFactor
	default:
		return
	}
	var (
		ratio      = newTimeStep / oldTimeStep
		minimumTau = MinimumTau(smagorinskyConstant)
	)
	newTau = ratio*(oldTau-0.5) + 0.5
	if newTau <= minimumTau {
		log.WithFields(logrus.Fields{
			"newTau":      newTau,
			"minimumTau":  minimumTau,
			"maxVelocity": maxVelocityNorm,
			"timeStep":    oldTimeStep,
		}).Warn("refused time step")
		return oldTau, oldTimeStep, nil
	}

	// Pass 2: reference density
	var medianDensity float64
	if medianDensity, err = f.meanDensity(pm); err != nil {
		return oldTau, oldTimeStep, err
	}

	rs := rescale{
		ratio:               ratio,
		medianDensity:       medianDensity,
		oldTau:              oldTau,
		newTau:              newTau,
		smagorinskyConstant: smagorinskyConstant,
	}
	// Every cell is validated before any is rescaled
	if err = rs.forFluidCells(pm, f, rs.check); err != nil {
		return oldTau, oldTimeStep, err
	}

	// Pass 3: rescale every fluid cell
	if err = rs.forFluidCells(pm, f, rs.cell); err != nil {
		return oldTau, oldTimeStep, err
	}

	for d := range gravity {
		gravity[d] *= ratio * ratio
	}
	log.WithFields(logrus.Fields{
		"tau":         newTau,
		"timeStep":    newTimeStep,
		"ratio":       ratio,
		"maxVelocity": maxVelocityNorm,
	}).Debug("rescaled time step")
	return
}

// AdaptTimeStep rescales f.Collide in place, see the package level AdaptTimeStep
func (f *Fields) AdaptTimeStep(pm *utils.PartitionMap, gravity *[3]float64,
	oldTau, oldTimeStep, smagorinskyConstant float64, allowIncrease bool,
	log logrus.FieldLogger) (newTau, newTimeStep float64, err error) {
	return AdaptTimeStep(pm, f, gravity, oldTau, oldTimeStep, smagorinskyConstant, allowIncrease, log)
}

// maxVelocity is the largest velocity norm over FLUID and INTERFACE cells of f.Collide
func (f *Fields) maxVelocity(pm *utils.PartitionMap) (maxNorm float64, err error) {
	var (
		g       = f.Grid
		partial = make([]float64, pm.ParallelDegree)
	)
	err = pm.ParallelDo(func(np, kMin, kMax int) error {
		var localMax float64
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID, types.INTERFACE:
				rho := f.Density[ind]
				if !(rho > 0) {
					return newInvariantError(g, ind, "density", -1, rho)
				}
				norm := lattice.Norm(lattice.Velocity(Cell(f.Collide, ind), rho))
				if !utils.IsFinite(norm) {
					return newInvariantError(g, ind, "velocity norm", -1, norm)
				}
				if norm > localMax {
					localMax = norm
				}
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		partial[np] = localMax
		return nil
	})
	if err != nil {
		return
	}
	return floats.Max(partial), nil
}

// meanDensity is the total fluid mass divided by the total fluid volume.
// Interface cells count with their fill fraction.
func (f *Fields) meanDensity(pm *utils.PartitionMap) (rho float64, err error) {
	var (
		NP           = pm.ParallelDegree
		partialVol   = make([]float64, NP)
		partialMass  = make([]float64, NP)
		volume, mass float64
	)
	if err = checkPartitions(pm, f.Grid); err != nil {
		return
	}
	err = pm.ParallelDo(func(np, kMin, kMax int) error {
		var vol, m float64
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID:
				vol++
				m += f.Density[ind]
			case types.INTERFACE:
				vol += f.Mass[ind] / f.Density[ind]
				m += f.Mass[ind]
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
			}
		}
		partialVol[np], partialMass[np] = vol, m
		return nil
	})
	if err != nil {
		return
	}
	volume, mass = floats.Sum(partialVol), floats.Sum(partialMass)
	if volume <= 0 {
		return 1, nil
	}
	return mass / volume, nil
}

type rescale struct {
	ratio, medianDensity, oldTau, newTau float64
	smagorinskyConstant                  float64
}

// equilibria returns the rescaled density and the old and new equilibria of
// cell ind without modifying it
func (rs rescale) equilibria(f *Fields, ind int) (newDensity float64, oldFeq, newFeq [lattice.Q]float64, err error) {
	var (
		g          = f.Grid
		oldDensity = f.Density[ind]
	)
	newDensity = rs.ratio*(oldDensity-rs.medianDensity) + rs.medianDensity
	if !(newDensity > 0) {
		err = newInvariantError(g, ind, "rescaled density", -1, newDensity)
		return
	}
	oldVelocity := lattice.Velocity(Cell(f.Collide, ind), oldDensity)
	newVelocity := oldVelocity
	for d := range newVelocity {
		newVelocity[d] *= rs.ratio
	}
	oldFeq = lattice.Feq(oldDensity, oldVelocity)
	newFeq = lattice.Feq(newDensity, newVelocity)
	for j := 0; j < lattice.Q; j++ {
		if oldFeq[j] == 0 || !utils.IsFinite(oldFeq[j]) {
			err = newInvariantError(g, ind, "equilibrium distribution", j, oldFeq[j])
			return
		}
	}
	return
}

func (rs rescale) check(f *Fields, ind int) (err error) {
	_, _, _, err = rs.equilibria(f, ind)
	return
}

func (rs rescale) cell(f *Fields, ind int) (err error) {
	var (
		fc             = Cell(f.Collide, ind)
		oldDensity     = f.Density[ind]
		newDensity     float64
		oldFeq, newFeq [lattice.Q]float64
		tauRatio       float64
	)
	if newDensity, oldFeq, newFeq, err = rs.equilibria(f, ind); err != nil {
		return
	}
	if rs.smagorinskyConstant > 0 {
		// The turbulence model makes the relaxation time local
		var (
			oldStress   = lattice.StressTensor(fc, oldFeq[:])
			oldLocalTau = lattice.LocalRelaxationTime(rs.oldTau, oldStress, rs.smagorinskyConstant)
			newStress   = lattice.StressTensor(fc, newFeq[:])
			newLocalTau = lattice.LocalRelaxationTime(rs.newTau, newStress, rs.smagorinskyConstant)
		)
		tauRatio = rs.ratio * (newLocalTau / oldLocalTau)
	} else {
		tauRatio = rs.ratio * (rs.newTau / rs.oldTau)
	}
	for j := 0; j < lattice.Q; j++ {
		feqRatio := newFeq[j] / oldFeq[j]
		// Equilibrium part scales with feqRatio, the off equilibrium part additionally with tauRatio
		fc[j] = feqRatio * (oldFeq[j] + tauRatio*(fc[j]-oldFeq[j]))
	}
	if f.Flags[ind] == types.INTERFACE {
		// Keeps the fill fraction mass/density
		f.Mass[ind] *= newDensity / oldDensity
	}
	f.Density[ind] = newDensity
	return
}

func (rs rescale) forFluidCells(pm *utils.PartitionMap, f *Fields, op func(f *Fields, ind int) error) error {
	return pm.ParallelDo(func(np, kMin, kMax int) error {
		for ind := kMin; ind < kMax; ind++ {
			switch f.Flags[ind] {
			case types.FLUID, types.INTERFACE:
				if err := op(f, ind); err != nil {
					return err
				}
			case types.EMPTY, types.NO_SLIP, types.INFLOW:
				// Boundary distributions are regenerated each step
			}
		}
		return nil
	})
}

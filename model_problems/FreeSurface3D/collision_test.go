package FreeSurface3D

import (
	"testing"

	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollide(t *testing.T) {
	{ // Gravity adds rho*g to the momentum of a cell at rest
		var (
			f       = newTestFields(2, 2, 2, allFluid)
			pm      = testPartitions(f, 2)
			gravity = [3]float64{0, 0, -1.e-4}
		)
		setEquilibrium(f, func(int) float64 { return 1.1 }, [3]float64{})
		require.NoError(t, f.CollideStep(pm, 0.6, 0, gravity))
		for ind, fl := range f.Flags {
			if fl != types.FLUID {
				continue
			}
			fc := Cell(f.Collide, ind)
			assert.InDelta(t, 1.1, lattice.Density(fc), 1.e-14)
			assert.InDelta(t, 1.1, f.Density[ind], 1.e-14)
			u := lattice.Velocity(fc, 1.1)
			assert.InDelta(t, -1.e-4, u[2], 1.e-15)
			assert.InDelta(t, 0., u[0], 1.e-15)
		}
	}
	{ // Relaxation moves distributions towards equilibrium, conserving density and momentum
		for _, smagorinsky := range []float64{0, 0.1} {
			var (
				f  = newTestFields(1, 1, 1, allFluid)
				pm = testPartitions(f, 1)
				c  = f.Grid.Index(1, 1, 1)
				fc = Cell(f.Collide, c)
			)
			feq := lattice.Feq(1, [3]float64{0.05, 0, 0})
			copy(fc, feq[:])
			fc[2] += 0.002
			fc[lattice.Inverse(2)] += 0.002
			rho := lattice.Density(fc)
			u := lattice.Velocity(fc, rho)
			before := copyFloats(fc)
			require.NoError(t, f.CollideStep(pm, 0.8, smagorinsky, [3]float64{}))
			assert.InDelta(t, rho, lattice.Density(fc), 1.e-15)
			v := lattice.Velocity(fc, rho)
			assert.InDelta(t, u[0], v[0], 1.e-15)
			target := lattice.Feq(rho, u)
			assert.True(t, abs(fc[2]-target[2]) < abs(before[2]-target[2]))
		}
	}
	{ // Density update follows the streamed field
		f := newTestFields(2, 2, 2, allFluid)
		pm := testPartitions(f, 2)
		setEquilibrium(f, func(int) float64 { return 0.9 }, [3]float64{})
		for ind := range f.Density {
			f.Density[ind] = 0
		}
		require.NoError(t, f.UpdateDensity(pm))
		for ind, fl := range f.Flags {
			if fl == types.FLUID {
				assert.InDelta(t, 0.9, f.Density[ind], 1.e-15)
			} else {
				assert.Equal(t, 0., f.Density[ind])
			}
		}
	}
}

func abs(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}

func TestApplyBoundaries(t *testing.T) {
	var (
		f      = newTestFields(2, 2, 2, allFluid)
		g      = f.Grid
		pm     = testPartitions(f, 3)
		inflow = [3]float64{0.05, 0, 0}
	)
	for k := range f.Collide {
		f.Collide[k] = float64(k%lattice.Q) + 1.
	}
	f.Flags[g.Index(0, 1, 1)] = types.INFLOW
	require.NoError(t, f.ApplyBoundaries(pm, inflow))
	{ // Bounce back into the fluid cell above the floor
		wall := g.Index(1, 1, 0)
		fluid := g.Index(1, 1, 1)
		for i, e := range lattice.Velocities {
			if e == [3]int{0, 0, 1} {
				assert.Equal(t, f.Collide[fluid*lattice.Q+lattice.Inverse(i)], f.Collide[wall*lattice.Q+i])
			}
		}
	}
	{ // Directions that do not point into fluid are untouched
		wall := g.Index(1, 1, 0)
		for i, e := range lattice.Velocities {
			if e[2] <= 0 {
				assert.Equal(t, float64(i)+1., f.Collide[wall*lattice.Q+i])
			}
		}
	}
	{ // Inflow is at equilibrium
		feq := lattice.Feq(1, inflow)
		assert.Equal(t, feq[:], Cell(f.Collide, g.Index(0, 1, 1)))
	}
}

func TestFieldsReductions(t *testing.T) {
	var (
		f  = newTestFields(2, 2, 2, allFluid)
		pm = testPartitions(f, 3)
	)
	setEquilibrium(f, func(int) float64 { return 1.2 }, [3]float64{})
	total, err := f.TotalMass(pm)
	require.NoError(t, err)
	assert.InDelta(t, 8*1.2, total, 1.e-13)
	rho, err := f.meanDensity(pm)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, rho, 1.e-14)
	{ // Partitions of another grid are rejected
		wrong := utils.NewPartitionMap(3, f.Grid.NumCells()+1)
		_, err = f.TotalMass(wrong)
		assert.Error(t, err)
		_, err = f.meanDensity(wrong)
		assert.Error(t, err)
	}
}

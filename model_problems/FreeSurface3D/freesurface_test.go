package FreeSurface3D

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitType(t *testing.T) {
	it, err := NewInitType("DamBreak")
	require.NoError(t, err)
	assert.Equal(t, DAMBREAK, it)
	assert.Equal(t, "Dam Break", it.Print())
	_, err = NewInitType("")
	assert.Error(t, err)
	_, err = NewInitType("tsunami")
	assert.Error(t, err)
}

func TestInitializeFields(t *testing.T) {
	for _, it := range []InitType{POOL, DAMBREAK, DROP} {
		g, _ := lattice.NewGrid(8, 6, 10)
		f := it.InitializeFields(g, 0.5, false)
		counts := f.CountFlags()
		assert.True(t, counts[types.FLUID] > 0, it.Print())
		assert.True(t, counts[types.INTERFACE] > 0, it.Print())
		assert.True(t, counts[types.EMPTY] > 0, it.Print())
		assert.Equal(t, 0, counts[types.INFLOW])
		for ind, fl := range f.Flags {
			x, y, z := g.Coord(ind)
			switch fl {
			case types.FLUID:
				// Fluid never touches gas directly
				for i := 0; i < lattice.Q; i++ {
					assert.NotEqual(t, types.EMPTY, f.Flags[g.Neighbor(ind, i)])
				}
				assert.Equal(t, 1., f.Density[ind])
			case types.INTERFACE:
				assert.Equal(t, InterfaceMass, f.Mass[ind])
				assert.Equal(t, 1., f.Density[ind])
			case types.NO_SLIP:
				assert.True(t, g.OnHalo(x, y, z))
			case types.EMPTY, types.INFLOW:
			}
		}
	}
	{ // Pool level
		g, _ := lattice.NewGrid(4, 4, 4)
		f := POOL.InitializeFields(g, 0.5, false)
		assert.Equal(t, types.FLUID, f.Flags[g.Index(2, 2, 1)])
		assert.Equal(t, types.INTERFACE, f.Flags[g.Index(2, 2, 2)])
		assert.Equal(t, types.EMPTY, f.Flags[g.Index(2, 2, 3)])
	}
	{ // Inflow face
		g, _ := lattice.NewGrid(4, 4, 4)
		f := POOL.InitializeFields(g, 0.5, true)
		assert.Equal(t, types.INFLOW, f.Flags[g.Index(0, 2, 2)])
		assert.Equal(t, types.NO_SLIP, f.Flags[g.Index(0, 0, 2)])
		assert.Equal(t, 16, f.CountFlags()[types.INFLOW])
	}
}

func newTestSolver(t *testing.T, ip *InputParameters.InputParametersLBM) *FreeSurface {
	ip.SetDefaults()
	require.NoError(t, ip.Validate())
	c, err := NewFreeSurface(ip, 2, false)
	require.NoError(t, err)
	return c
}

func TestFreeSurfacePoolAtRest(t *testing.T) {
	c := newTestSolver(t, &InputParameters.InputParametersLBM{
		InitType:      "Pool",
		Dimensions:    [3]int{6, 5, 8},
		Tau:           0.7,
		AdaptEvery:    1,
		MaxIterations: 20,
	})
	mass, err := c.TotalMass()
	require.NoError(t, err)
	require.NoError(t, c.Run())
	assert.Equal(t, 20, c.Iteration)
	massAfter, err := c.TotalMass()
	require.NoError(t, err)
	assert.InDelta(t, mass, massAfter, 1.e-9*mass)
	uMax, err := c.MaxVelocity()
	require.NoError(t, err)
	assert.InDelta(t, 0., uMax, 1.e-12)
	// Growth is not allowed, the band check is a no-op
	assert.Equal(t, 0.7, c.Tau)
	assert.Equal(t, 1., c.TimeStep)
	assert.Equal(t, 20., c.Time)
}

func TestFreeSurfaceDamBreak(t *testing.T) {
	c := newTestSolver(t, &InputParameters.InputParametersLBM{
		InitType:            "DamBreak",
		Dimensions:          [3]int{10, 4, 10},
		FillHeight:          0.8,
		Tau:                 0.6,
		Gravity:             [3]float64{0, 0, -1.e-4},
		SmagorinskyConstant: 0.03,
		AdaptEvery:          5,
		AllowIncrease:       true,
		MaxIterations:       30,
	})
	require.NoError(t, c.Run())
	uMax, err := c.MaxVelocity()
	require.NoError(t, err)
	assert.True(t, uMax > 0)
	assert.True(t, utils.IsFinite(c.Fields.Density))
	for ind, fl := range c.Fields.Flags {
		if fl.IsFluidLike() {
			assert.True(t, c.Fields.Density[ind] > 0)
		}
	}
	// Nearly at rest, the time step can only have grown
	assert.True(t, c.TimeStep >= 1.)
	assert.True(t, c.Tau >= 0.6)
}

func TestFreeSurfaceStepErrors(t *testing.T) {
	c := newTestSolver(t, &InputParameters.InputParametersLBM{
		InitType:       "Pool",
		Dimensions:     [3]int{4, 4, 4},
		Tau:            0.7,
		InflowVelocity: [3]float64{0.01, 0, 0},
		MaxIterations:  5,
	})
	require.NoError(t, c.Step())
	c.InflowVelocity[0] = math.NaN()
	err := c.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boundaries at iteration 1")
	assert.Equal(t, 1, c.Iteration)
	{ // Invariant errors stay reachable through the stage wrapping
		c.InflowVelocity[0] = 0.01
		c.Fields.Density[c.Grid.Index(2, 2, 2)] = -1
		c.Fields.Flags[c.Grid.Index(2, 2, 2)] = types.INTERFACE
		err = c.Step()
		var ie *InvariantError
		require.True(t, errors.As(err, &ie))
		assert.Contains(t, err.Error(), "streaming at iteration 1")
	}
}

func TestFreeSurfaceInvalidInput(t *testing.T) {
	_, err := NewFreeSurface(&InputParameters.InputParametersLBM{
		InitType:   "Tsunami",
		Dimensions: [3]int{4, 4, 4},
		Tau:        0.7,
	}, 1, false)
	assert.Error(t, err)
	_, err = NewFreeSurface(&InputParameters.InputParametersLBM{
		InitType: "Pool",
		Tau:      0.7,
	}, 1, false)
	assert.Error(t, err)
}

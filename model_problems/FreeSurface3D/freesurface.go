package FreeSurface3D

import (
	"fmt"
	"time"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/lattice"
	"github.com/notargets/golbm/types"
	"github.com/notargets/golbm/utils"
	"github.com/sirupsen/logrus"
)

/*
FreeSurface advances a free surface flow with the Lattice Boltzmann method on a
D3Q19 lattice. Each step streams, collides and regenerates boundary
distributions; every AdaptEvery steps the time step is adapted to the maximum
flow velocity.

Flag conversion and mass exchange across the surface belong to the surface
tracker, the flag field is held fixed here.
*/
type FreeSurface struct {
	Title               string
	Case                InitType
	Grid                lattice.Grid
	Fields              *Fields
	Tau, TimeStep       float64
	Gravity             [3]float64
	SmagorinskyConstant float64
	InflowVelocity      [3]float64
	AdaptEvery          int
	AllowIncrease       bool
	MaxIterations       int
	PrintEvery          int
	ParallelDegree      int // Number of go routines to use for parallel execution
	Partitions          *utils.PartitionMap
	Iteration           int
	Time                float64 // Sum of time steps taken, in units of the initial time step
	Log                 logrus.FieldLogger
	verbose             bool
}

func NewFreeSurface(ip *InputParameters.InputParametersLBM, ProcLimit int, verbose bool) (c *FreeSurface, err error) {
	c = &FreeSurface{
		Title:               ip.Title,
		Tau:                 ip.Tau,
		TimeStep:            ip.TimeStep,
		Gravity:             ip.Gravity,
		SmagorinskyConstant: ip.SmagorinskyConstant,
		InflowVelocity:      ip.InflowVelocity,
		AdaptEvery:          ip.AdaptEvery,
		AllowIncrease:       ip.AllowIncrease,
		MaxIterations:       ip.MaxIterations,
		PrintEvery:          ip.PrintEvery,
		Log:                 logrus.StandardLogger(),
		verbose:             verbose,
	}
	if c.PrintEvery < 1 {
		c.PrintEvery = 1
	}
	if c.Case, err = NewInitType(ip.InitType); err != nil {
		return
	}
	if c.Grid, err = lattice.NewGrid(ip.Dimensions[0], ip.Dimensions[1], ip.Dimensions[2]); err != nil {
		return
	}
	c.SetParallelDegree(ProcLimit)
	inflow := lattice.Norm(c.InflowVelocity) > 0
	c.Fields = c.Case.InitializeFields(c.Grid, ip.FillHeight, inflow)
	if err = c.Fields.ApplyBoundaries(c.Partitions, c.InflowVelocity); err != nil {
		return
	}
	if verbose {
		counts := c.Fields.CountFlags()
		fmt.Printf("Free Surface Lattice Boltzmann in 3 Dimensions (D3Q19)\n")
		fmt.Printf("Using %d go routines in parallel, %d cells in the first partition\n",
			c.Partitions.ParallelDegree, c.Partitions.GetBucketDimension(0))
		fmt.Printf("Solving %s\n", c.Case.Print())
		fmt.Printf("Grid %v with halo, %d fluid, %d interface, %d empty cells\n",
			c.Grid.Dims(), counts[types.FLUID], counts[types.INTERFACE], counts[types.EMPTY])
		fmt.Printf("Tau = %8.5f, Smagorinsky Constant = %8.5f, Gravity = %v\n\n",
			c.Tau, c.SmagorinskyConstant, c.Gravity)
	}
	return
}

func (c *FreeSurface) SetParallelDegree(ProcLimit int) {
	c.Partitions = utils.NewPartitionMapForProcs(ProcLimit, c.Grid.NumCells())
	c.ParallelDegree = c.Partitions.ParallelDegree
}

// Step advances the solution one time step
func (c *FreeSurface) Step() (err error) {
	var (
		f  = c.Fields
		pm = c.Partitions
	)
	if err = f.StreamStep(pm); err != nil {
		return fmt.Errorf("streaming at iteration %d: %w", c.Iteration, err)
	}
	f.Swap()
	if err = f.UpdateDensity(pm); err != nil {
		return fmt.Errorf("density update at iteration %d: %w", c.Iteration, err)
	}
	if err = f.CollideStep(pm, c.Tau, c.SmagorinskyConstant, c.Gravity); err != nil {
		return fmt.Errorf("collision at iteration %d: %w", c.Iteration, err)
	}
	if err = f.ApplyBoundaries(pm, c.InflowVelocity); err != nil {
		return fmt.Errorf("boundaries at iteration %d: %w", c.Iteration, err)
	}
	c.Time += c.TimeStep
	c.Iteration++
	if c.AdaptEvery > 0 && c.Iteration%c.AdaptEvery == 0 {
		if c.Tau, c.TimeStep, err = f.AdaptTimeStep(pm, &c.Gravity, c.Tau, c.TimeStep,
			c.SmagorinskyConstant, c.AllowIncrease, c.Log); err != nil {
			return fmt.Errorf("time step adaption at iteration %d: %w", c.Iteration, err)
		}
	}
	return
}

// Run steps until MaxIterations, printing a report every PrintEvery steps
func (c *FreeSurface) Run() (err error) {
	var (
		start = time.Now()
	)
	if c.verbose {
		fmt.Printf("%8s%14s%14s%12s%12s\n", "Iter", "Total Mass", "Max |u|", "Tau", "dt")
	}
	for c.Iteration < c.MaxIterations {
		if err = c.Step(); err != nil {
			c.Log.WithError(err).Error("simulation aborted")
			return
		}
		if c.verbose && (c.Iteration%c.PrintEvery == 0 || c.Iteration == c.MaxIterations) {
			c.PrintStatus()
		}
	}
	if c.verbose {
		elapsed := time.Since(start)
		fmt.Printf("%d iterations in %v, %8.3f MLUPS\n", c.Iteration, elapsed,
			float64(c.Iteration)*float64(c.Grid.NumCells())/elapsed.Seconds()/1.e6)
		fmt.Println(utils.GetMemUsage())
	}
	return
}

func (c *FreeSurface) TotalMass() (float64, error) {
	return c.Fields.TotalMass(c.Partitions)
}

func (c *FreeSurface) MaxVelocity() (float64, error) {
	return c.Fields.maxVelocity(c.Partitions)
}

func (c *FreeSurface) PrintStatus() {
	uMax, err := c.MaxVelocity()
	if err != nil {
		fmt.Printf("%8d %v\n", c.Iteration, err)
		return
	}
	mass, err := c.TotalMass()
	if err != nil {
		fmt.Printf("%8d %v\n", c.Iteration, err)
		return
	}
	fmt.Printf("%8d%14.6f%14.6f%12.6f%12.6f\n", c.Iteration, mass, uMax, c.Tau, c.TimeStep)
}

package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParametersLBM struct {
	Title               string     `json:"Title"`
	InitType            string     `json:"InitType"`
	Dimensions          [3]int     `json:"Dimensions"`
	FillHeight          float64    `json:"FillHeight"` // Fraction of the domain height filled with fluid
	Tau                 float64    `json:"Tau"`
	TimeStep            float64    `json:"TimeStep"`
	Gravity             [3]float64 `json:"Gravity"` // Lattice units for the initial time step
	SmagorinskyConstant float64    `json:"SmagorinskyConstant"`
	InflowVelocity      [3]float64 `json:"InflowVelocity"`
	AdaptEvery          int        `json:"AdaptEvery"` // 0 disables time step adaption
	AllowIncrease       bool       `json:"AllowIncrease"`
	MaxIterations       int        `json:"MaxIterations"`
	PrintEvery          int        `json:"PrintEvery"`
}

func (ip *InputParametersLBM) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.SetDefaults()
	return ip.Validate()
}

func (ip *InputParametersLBM) SetDefaults() {
	if len(ip.InitType) == 0 {
		ip.InitType = "Pool"
	}
	if ip.FillHeight == 0 {
		ip.FillHeight = 0.5
	}
	if ip.TimeStep == 0 {
		ip.TimeStep = 1
	}
	if ip.MaxIterations == 0 {
		ip.MaxIterations = 100
	}
	if ip.PrintEvery == 0 {
		ip.PrintEvery = 10
	}
}

func (ip *InputParametersLBM) Validate() (err error) {
	for d, l := range ip.Dimensions {
		if l < 1 {
			return fmt.Errorf("dimension %d must be positive, have %v", d, ip.Dimensions)
		}
	}
	switch {
	case ip.Tau <= 0.5:
		err = fmt.Errorf("relaxation time Tau must be larger than 0.5, have %g", ip.Tau)
	case ip.TimeStep <= 0:
		err = fmt.Errorf("TimeStep must be positive, have %g", ip.TimeStep)
	case ip.FillHeight <= 0 || ip.FillHeight > 1:
		err = fmt.Errorf("FillHeight must be in (0,1], have %g", ip.FillHeight)
	case ip.SmagorinskyConstant < 0:
		err = fmt.Errorf("SmagorinskyConstant must not be negative, have %g", ip.SmagorinskyConstant)
	case ip.AdaptEvery < 0:
		err = fmt.Errorf("AdaptEvery must not be negative, have %d", ip.AdaptEvery)
	case ip.MaxIterations < 0:
		err = fmt.Errorf("MaxIterations must not be negative, have %d", ip.MaxIterations)
	}
	return
}

func (ip *InputParametersLBM) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= InitType\n", ip.InitType)
	fmt.Printf("%v\t\t= Dimensions\n", ip.Dimensions)
	fmt.Printf("%8.5f\t\t= FillHeight\n", ip.FillHeight)
	fmt.Printf("%8.5f\t\t= Tau\n", ip.Tau)
	fmt.Printf("%8.5f\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("%v\t= Gravity\n", ip.Gravity)
	fmt.Printf("%8.5f\t\t= Smagorinsky Constant\n", ip.SmagorinskyConstant)
	fmt.Printf("%v\t\t= Inflow Velocity\n", ip.InflowVelocity)
	fmt.Printf("[%d]\t\t\t= Adapt Time Step Every, AllowIncrease = %v\n", ip.AdaptEvery, ip.AllowIncrease)
	fmt.Printf("[%d]\t\t\t= Max Iterations\n", ip.MaxIterations)
}

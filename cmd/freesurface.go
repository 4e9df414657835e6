/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/golbm/InputParameters"
	"github.com/notargets/golbm/model_problems/FreeSurface3D"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ModelFS struct {
	ICFile    string
	ProcLimit int
	Steps     int
	Verbose   bool
	Profile   bool
	Perf      bool
}

// FreeSurfaceCmd represents the freesurface command
var FreeSurfaceCmd = &cobra.Command{
	Use:   "freesurface",
	Short: "Three dimensional free surface flow, Lattice Boltzmann D3Q19",
	Long: `
Runs a free surface Lattice Boltzmann simulation described by a YAML input file,

golbm freesurface -I input.yaml --procLimit 4`,
	Run: func(cmd *cobra.Command, args []string) {
		mfs := &ModelFS{
			ICFile:    viper.GetString("inputConditionsFile"),
			ProcLimit: viper.GetInt("procLimit"),
			Steps:     viper.GetInt("steps"),
			Verbose:   viper.GetBool("verbose"),
			Profile:   viper.GetBool("profile"),
			Perf:      viper.GetBool("perf"),
		}
		ip, err := processInputFS(mfs)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			fmt.Printf("Example File:%s\n", exampleFileFS)
			os.Exit(1)
		}
		if err = RunFreeSurface(mfs, ip); err != nil {
			logrus.WithError(err).Fatal("free surface run failed")
		}
	},
}

const exampleFileFS = `
########################################
Title: "Dam Break"
InitType: DamBreak # Can be "Pool" or "Drop"
Dimensions: [40, 10, 20]
FillHeight: 0.8
Tau: 0.6
Gravity: [0., 0., -1.e-4]
SmagorinskyConstant: 0.03
AdaptEvery: 10
AllowIncrease: true
MaxIterations: 1000
PrintEvery: 100
########################################
`

func init() {
	rootCmd.AddCommand(FreeSurfaceCmd)
	FreeSurfaceCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Dimensions\n\t- Tau\n\t- Gravity")
	FreeSurfaceCmd.Flags().IntP("procLimit", "p", 0, "maximum number of parallel go routines, 0 uses all CPUs")
	FreeSurfaceCmd.Flags().IntP("steps", "s", 0, "number of time steps, overrides MaxIterations of the input file")
	FreeSurfaceCmd.Flags().BoolP("verbose", "v", true, "print the run setup and progress")
	FreeSurfaceCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
	FreeSurfaceCmd.Flags().Bool("perf", false, "count CPU instructions of the run (linux only)")
	for _, name := range []string{"inputConditionsFile", "procLimit", "steps", "verbose", "profile", "perf"} {
		_ = viper.BindPFlag(name, FreeSurfaceCmd.Flags().Lookup(name))
	}
}

func processInputFS(mfs *ModelFS) (ip *InputParameters.InputParametersLBM, err error) {
	var (
		data []byte
	)
	if len(mfs.ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		return
	}
	if data, err = os.ReadFile(mfs.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParametersLBM{}
	if err = ip.Parse(data); err != nil {
		return
	}
	if mfs.Steps > 0 {
		ip.MaxIterations = mfs.Steps
	}
	return
}

func RunFreeSurface(mfs *ModelFS, ip *InputParameters.InputParametersLBM) (err error) {
	var (
		c *FreeSurface3D.FreeSurface
	)
	if mfs.Verbose {
		ip.Print()
	}
	if c, err = FreeSurface3D.NewFreeSurface(ip, mfs.ProcLimit, mfs.Verbose); err != nil {
		return
	}
	if mfs.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if !mfs.Perf {
		return c.Run()
	}
	return countInstructions(c.Run)
}

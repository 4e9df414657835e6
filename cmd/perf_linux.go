//go:build linux

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

	"github.com/hodgesds/perf-utils"
	"github.com/sirupsen/logrus"
)

// countInstructions runs f with the hardware instruction counter enabled
func countInstructions(f func() error) (err error) {
	var runErr error
	pv, err := perf.CPUInstructions(func() error {
		runErr = f()
		return runErr
	})
	if runErr != nil {
		return runErr
	}
	if err != nil {
		// perf events are often unavailable in containers, the run itself succeeded
		logrus.WithError(err).Warn("unable to read CPU instruction counter")
		return nil
	}
	fmt.Printf("%d CPU instructions, enabled %d ns, running %d ns\n",
		pv.Value, pv.TimeEnabled, pv.TimeRunning)
	return
}

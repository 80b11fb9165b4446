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
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	perf "github.com/hodgesds/perf-utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/cardbspline/BSpline"
	"github.com/notargets/cardbspline/utils"
)

type ModelBench struct {
	N, Q, B, Repeats int // Knots, query points, batch slices, repetitions
	Mode             BSpline.Mode
	ProcLimit        int
	Perf             bool
}

type BenchResult struct {
	Construct, Interp    time.Duration // Mean per repetition
	Instructions, Cycles uint64        // Hardware counters for one Interp, zero unless requested
	MaxKnotError         float64
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time construction and evaluation of a batched spline",
	Long: `
Fits B batch slices of N random samples each, then evaluates them at Q random
points, repeating R times and reporting mean times.

cardbspline bench -n 1000 -q 100000 -b 4 -r 10 --mode parallel`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mb := &ModelBench{}
		mb.N, _ = cmd.Flags().GetInt("n")
		mb.Q, _ = cmd.Flags().GetInt("q")
		mb.B, _ = cmd.Flags().GetInt("b")
		mb.Repeats, _ = cmd.Flags().GetInt("r")
		mb.Perf, _ = cmd.Flags().GetBool("perf")
		mode, _ := cmd.Flags().GetString("mode")
		mb.ProcLimit = viper.GetInt("procs")
		if mb.Mode, err = BSpline.NewMode(mode); err == nil {
			_, err = RunBench(mb, os.Stdout)
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("n", "n", 1000, "number of knots")
	BenchCmd.Flags().IntP("q", "q", 100000, "number of query points")
	BenchCmd.Flags().IntP("b", "b", 1, "number of batch slices")
	BenchCmd.Flags().IntP("r", "r", 10, "number of repetitions")
	BenchCmd.Flags().StringP("mode", "m", "serial", "execution mode: serial or parallel")
	BenchCmd.Flags().Bool("perf", false, "count CPU instructions and cycles with Linux perf events")
}

func RunBench(mb *ModelBench, w io.Writer) (res BenchResult, err error) {
	var (
		rng    = rand.New(rand.NewSource(1))
		grid   = utils.Linspace(0, 1, mb.N)
		values = utils.NewNDArray([]int{mb.N, mb.B})
		x      = make([]float64, mb.Q)
		spline *BSpline.Interpolator
		opts   = []BSpline.Option{BSpline.WithMode(mb.Mode), BSpline.WithParallelDegree(mb.ProcLimit)}
	)
	if mb.Repeats < 1 {
		err = fmt.Errorf("repetitions must be positive, have %d", mb.Repeats)
		return
	}
	for i := 0; i < mb.N; i++ {
		for j := 0; j < mb.B; j++ {
			values.Set(math.Sin(float64(j+1)*grid[i])+0.01*rng.Float64(), i, j)
		}
	}
	for i := range x {
		x[i] = rng.Float64()
	}
	start := time.Now()
	for r := 0; r < mb.Repeats; r++ {
		if spline, err = BSpline.NewInterpolator(grid, values, 0, opts...); err != nil {
			return
		}
	}
	res.Construct = time.Since(start) / time.Duration(mb.Repeats)
	start = time.Now()
	for r := 0; r < mb.Repeats; r++ {
		if _, err = spline.Interp(x); err != nil {
			return
		}
	}
	res.Interp = time.Since(start) / time.Duration(mb.Repeats)
	if res.MaxKnotError, _, err = Verify(spline, values); err != nil {
		return
	}
	fmt.Fprintf(w, "%d knots, %d batch slices, %d queries, %s mode\n", mb.N, mb.B, mb.Q, mb.Mode.Print())
	fmt.Fprintf(w, "Construct: %v per fit\n", res.Construct)
	fmt.Fprintf(w, "Interp:    %v per call, %5.2f ns per query per slice\n",
		res.Interp, float64(res.Interp.Nanoseconds())/float64(max(1, mb.Q*mb.B)))
	fmt.Fprintf(w, "Max knot error: %8.5e\n", res.MaxKnotError)
	fmt.Fprintf(w, "%s\n", utils.GetMemUsage())
	if mb.Perf {
		interp := func() error {
			_, err := spline.Interp(x)
			return err
		}
		// Perf events need kernel support and permission, report and go on
		if pv, perr := perf.CPUInstructions(interp); perr != nil {
			fmt.Fprintf(w, "perf unavailable: %s\n", perr.Error())
		} else {
			res.Instructions = pv.Value
			if pv, perr = perf.CPUCycles(interp); perr == nil {
				res.Cycles = pv.Value
			}
			fmt.Fprintf(w, "Interp: %d instructions, %d cycles\n", res.Instructions, res.Cycles)
		}
	}
	return
}

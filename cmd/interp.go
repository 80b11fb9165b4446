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
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/cardbspline/BSpline"
	"github.com/notargets/cardbspline/InputParameters"
	"github.com/notargets/cardbspline/readfiles"
	"github.com/notargets/cardbspline/utils"
)

type ModelInterp struct {
	ICFile    string
	OutFile   string
	Graph     bool
	Verify    bool
	Verbose   bool
	Delay     time.Duration
	ProcLimit int
}

// InterpCmd represents the interp command
var InterpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Interpolate the samples described by an input deck",
	Long: `
Fits a cubic cardinal B-spline to the samples described by a YAML input deck and
writes the interpolated values, one row per query point, the query point first.

cardbspline interp -I deck.yaml -o out.dat`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.InputParameters1D
		)
		mi := &ModelInterp{}
		if mi.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		mi.OutFile, _ = cmd.Flags().GetString("output")
		mi.Graph, _ = cmd.Flags().GetBool("graph")
		mi.Verify, _ = cmd.Flags().GetBool("verify")
		dr, _ := cmd.Flags().GetInt("delay")
		mi.Delay = time.Duration(dr) * time.Millisecond
		mi.Verbose = viper.GetBool("verbose")
		mi.ProcLimit = viper.GetInt("procs")
		if ip, err = processInterpInput(mi); err == nil {
			err = RunInterp(mi, ip, os.Stdout)
		}
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(InterpCmd)
	InterpCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Grid or XMin, XMax, NumKnots\n\t- Values or SamplesFile\n\t- Query or QueryRange")
	InterpCmd.Flags().StringP("output", "o", "", "file for the interpolated table, default is stdout")
	InterpCmd.Flags().BoolP("graph", "g", false, "display a graph of the samples and the spline")
	InterpCmd.Flags().IntP("delay", "d", 5000, "milliseconds to display the graph")
	InterpCmd.Flags().Bool("verify", false, "report knot reproduction error and solver residual")
}

var exampleDeck = `
########################################
Title: "x squared"
XMin: 0
XMax: 5
NumKnots: 6               # or Grid: [0, 1, 2, 3, 4, 5]
Values: [0, 1, 4, 9, 16, 25]   # or SamplesFile: samples.dat
Alpha: 2                  # h^2 y''(XMin)
Beta: 2                   # h^2 y''(XMax)
Extrapolation: ZeroPad    # Clamp, Reject
Mode: Serial              # Parallel
QueryRange:               # or Query: [2.0, 2.5, 3.0]
  Min: 0
  Max: 5
  Count: 11
########################################
`

func processInterpInput(mi *ModelInterp) (ip *InputParameters.InputParameters1D, err error) {
	var (
		data []byte
	)
	if len(mi.ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleDeck)
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	if data, err = os.ReadFile(mi.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters1D{}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", mi.ICFile, err)
		return
	}
	if err = ip.Validate(); err != nil {
		err = fmt.Errorf("%s: %w", mi.ICFile, err)
		return
	}
	// Samples files are found next to the deck
	if len(ip.SamplesFile) != 0 && !filepath.IsAbs(ip.SamplesFile) {
		ip.SamplesFile = filepath.Join(filepath.Dir(mi.ICFile), ip.SamplesFile)
	}
	if mi.Verbose {
		ip.Print()
	}
	return
}

// LoadValues returns the inline values, or the samples file as an n x batch
// array. A single column file is returned as a 1-D array.
func LoadValues(ip *InputParameters.InputParameters1D, verbose bool) (values utils.NDArray, err error) {
	var (
		Y utils.Matrix
	)
	if len(ip.Values) != 0 {
		values = utils.NewNDArray([]int{len(ip.Values)}, append([]float64{}, ip.Values...))
		return
	}
	if Y, err = readfiles.ReadSamples(ip.SamplesFile, verbose); err != nil {
		return
	}
	nr, nc := Y.Dims()
	if nc == 1 {
		values = utils.NDArrayFromMatrix(Y, []int{nr})
	} else {
		values = utils.NDArrayFromMatrix(Y, []int{nr, nc})
	}
	return
}

func RunInterp(mi *ModelInterp, ip *InputParameters.InputParameters1D, w io.Writer) (err error) {
	var (
		values utils.NDArray
		spline *BSpline.Interpolator
		Y      utils.NDArray
		grid   = ip.GetGrid()
		x      = ip.GetQuery()
	)
	if values, err = LoadValues(ip, mi.Verbose); err != nil {
		return
	}
	if nn := utils.CountNaN(values); nn != 0 && mi.Verbose {
		fmt.Printf("Warning: %d NaN samples, every query depending on them will be NaN\n", nn)
	}
	if ip.ProcLimit == 0 {
		ip.ProcLimit = mi.ProcLimit
	}
	if spline, err = BSpline.NewInterpolator(grid, values, ip.Axis, ip.Options()...); err != nil {
		return
	}
	if mi.Verbose {
		fmt.Printf("Fitted %v samples along axis %d, h = %8.5f, %s mode, %s extrapolation\n",
			spline.Shape(), spline.Axis(), spline.Spacing(), spline.Mode().Print(), spline.Extrapolation().Print())
	}
	if Y, err = spline.Interp(x); err != nil {
		return
	}
	table := spline.Layout().ToLeading(Y).AsMatrix()
	if len(mi.OutFile) != 0 {
		err = writeTable(mi.OutFile, x, table)
	} else {
		err = readfiles.WriteSamples(w, x, table)
	}
	if err != nil {
		return
	}
	if mi.Verify {
		var knotErr, residual float64
		if knotErr, residual, err = Verify(spline, values); err != nil {
			return
		}
		fmt.Printf("Knot reproduction error = %8.5e\n", knotErr)
		fmt.Printf("Tridiagonal residual    = %8.5e\n", residual)
	}
	if mi.Graph {
		samples := spline.Layout().ToLeading(values).AsMatrix()
		PlotSpline(mi.Delay, grid, samples, x, table)
	}
	return
}

// writeTable writes the interpolated table to fname, a failed Close is
// returned like a failed write
func writeTable(fname string, x []float64, table utils.Matrix) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(fname); err != nil {
		return
	}
	defer closeKeepErr(file, &err)
	err = readfiles.WriteSamples(file, x, table)
	return
}

// closeKeepErr closes c, reporting its error unless *err is already set
func closeKeepErr(c io.Closer, err *error) {
	if cerr := c.Close(); *err == nil && cerr != nil {
		*err = fmt.Errorf("closing output: %w", cerr)
	}
}

// Verify evaluates the spline at its own knots and returns the largest
// deviation from the fitted values, along with the residual of the
// coefficient system
func Verify(spline *BSpline.Interpolator, values utils.NDArray) (knotErr, residual float64, err error) {
	var (
		Yk utils.NDArray
	)
	if Yk, err = spline.Interp(spline.Grid()); err != nil {
		return
	}
	knotErr = floats.Distance(Yk.Data, values.Data, math.Inf(1))
	y := spline.Layout().ToLeading(values).AsMatrix()
	residual, err = BSpline.CoeffResidual(y, spline.Coefficients())
	return
}

// PlotSpline shows the first batch slice, samples as points and the spline as
// a line
func PlotSpline(delay time.Duration, grid []float64, samples utils.Matrix, x []float64, table utils.Matrix) {
	var (
		fs = columnZero(samples)
		fx = columnZero(table)
	)
	xmin, xmax := math.Min(floats.Min(grid), floats.Min(x)), math.Max(floats.Max(grid), floats.Max(x))
	fmin, fmax := math.Min(floats.Min(fs), floats.Min(fx)), math.Max(floats.Max(fs), floats.Max(fx))
	margin := 0.05 * (fmax - fmin)
	if margin == 0 {
		margin = 1
	}
	lc := utils.NewLineChart(1280, 1024, xmin, xmax, fmin-margin, fmax+margin)
	lc.PlotPoints(0, grid, fs, utils.Red, "samples")
	lc.Plot(delay, x, fx, 1, "spline")
}

func columnZero(A utils.Matrix) (col []float64) {
	nr, _ := A.Dims()
	col = make([]float64, nr)
	for i := range col {
		col[i] = A.At(i, 0)
	}
	return
}

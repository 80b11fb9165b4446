package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/hashicorp/go-multierror"

	"github.com/notargets/cardbspline/BSpline"
	"github.com/notargets/cardbspline/utils"
)

type QueryRange struct {
	Min   float64 `yaml:"Min"`
	Max   float64 `yaml:"Max"`
	Count int     `yaml:"Count"`
}

// Parameters obtained from the YAML input file
type InputParameters1D struct {
	Title         string      `yaml:"Title"`
	XMin          float64     `yaml:"XMin"`
	XMax          float64     `yaml:"XMax"`
	NumKnots      int         `yaml:"NumKnots"` // Used with XMin/XMax when Grid is empty
	Grid          []float64   `yaml:"Grid"`     // Explicit knots, must be uniformly spaced
	Values        []float64   `yaml:"Values"`
	SamplesFile   string      `yaml:"SamplesFile"` // Table of samples, one row per knot, one column per batch slice
	Axis          int         `yaml:"Axis"`
	Alpha         float64     `yaml:"Alpha"`
	Beta          float64     `yaml:"Beta"`
	Extrapolation string      `yaml:"Extrapolation"`
	Mode          string      `yaml:"Mode"`
	ProcLimit     int         `yaml:"ProcLimit"`
	GridTolerance float64     `yaml:"GridTolerance"` // Non zero enables the uniform grid check
	Query         []float64   `yaml:"Query"`
	QueryRange    *QueryRange `yaml:"QueryRange"`
}

func (ip *InputParameters1D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate reports every problem with the parameters at once
func (ip *InputParameters1D) Validate() error {
	var (
		result *multierror.Error
	)
	if len(ip.Grid) == 0 && ip.NumKnots < BSpline.MinGridPoints {
		result = multierror.Append(result,
			fmt.Errorf("need Grid or NumKnots >= %d with XMin/XMax, have NumKnots = %d", BSpline.MinGridPoints, ip.NumKnots))
	}
	if len(ip.Grid) == 0 && ip.NumKnots != 0 && !(ip.XMax > ip.XMin) {
		result = multierror.Append(result, fmt.Errorf("XMax (%g) must be greater than XMin (%g)", ip.XMax, ip.XMin))
	}
	if len(ip.Values) == 0 && len(ip.SamplesFile) == 0 {
		result = multierror.Append(result, fmt.Errorf("need Values or SamplesFile"))
	}
	if len(ip.Values) != 0 && len(ip.SamplesFile) != 0 {
		result = multierror.Append(result, fmt.Errorf("Values and SamplesFile are exclusive"))
	}
	if len(ip.Values) != 0 && ip.Axis != 0 && ip.Axis != -1 {
		result = multierror.Append(result, fmt.Errorf("inline Values are 1-D, Axis must be 0, have %d", ip.Axis))
	}
	if len(ip.Extrapolation) != 0 {
		if _, err := BSpline.NewExtrapolation(ip.Extrapolation); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if len(ip.Mode) != 0 {
		if _, err := BSpline.NewMode(ip.Mode); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if len(ip.Query) == 0 && ip.QueryRange == nil {
		result = multierror.Append(result, fmt.Errorf("need Query or QueryRange"))
	}
	if ip.QueryRange != nil && ip.QueryRange.Count < 1 {
		result = multierror.Append(result, fmt.Errorf("QueryRange.Count must be positive, have %d", ip.QueryRange.Count))
	}
	return result.ErrorOrNil()
}

func (ip *InputParameters1D) GetGrid() (grid []float64) {
	if len(ip.Grid) != 0 {
		return ip.Grid
	}
	return utils.Linspace(ip.XMin, ip.XMax, ip.NumKnots)
}

func (ip *InputParameters1D) GetQuery() (x []float64) {
	if len(ip.Query) != 0 || ip.QueryRange == nil {
		return ip.Query
	}
	return utils.Linspace(ip.QueryRange.Min, ip.QueryRange.Max, ip.QueryRange.Count)
}

// Options translates the parameters into interpolator options, Validate
// should be called first
func (ip *InputParameters1D) Options() (opts []BSpline.Option) {
	opts = append(opts, BSpline.WithBoundary(ip.Alpha, ip.Beta))
	if e, err := BSpline.NewExtrapolation(ip.Extrapolation); err == nil {
		opts = append(opts, BSpline.WithExtrapolation(e))
	}
	if m, err := BSpline.NewMode(ip.Mode); err == nil {
		opts = append(opts, BSpline.WithMode(m), BSpline.WithParallelDegree(ip.ProcLimit))
	}
	if ip.GridTolerance != 0 {
		opts = append(opts, BSpline.WithGridCheck(ip.GridTolerance))
	}
	return
}

func (ip *InputParameters1D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if len(ip.Grid) != 0 {
		fmt.Printf("[%d]\t\t\t= Knots (explicit grid)\n", len(ip.Grid))
	} else {
		fmt.Printf("[%d]\t\t\t= Knots on [%8.5f, %8.5f]\n", ip.NumKnots, ip.XMin, ip.XMax)
	}
	if len(ip.SamplesFile) != 0 {
		fmt.Printf("[%s]\t= Samples File\n", ip.SamplesFile)
	}
	fmt.Printf("[%d]\t\t\t= Axis\n", ip.Axis)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("%8.5f\t\t= Beta\n", ip.Beta)
	fmt.Printf("[%s]\t\t= Extrapolation\n", ip.Extrapolation)
	fmt.Printf("[%s]\t\t= Mode\n", ip.Mode)
	if ip.QueryRange != nil {
		fmt.Printf("[%d]\t\t\t= Query points on [%8.5f, %8.5f]\n", ip.QueryRange.Count, ip.QueryRange.Min, ip.QueryRange.Max)
	} else {
		fmt.Printf("[%d]\t\t\t= Query points\n", len(ip.Query))
	}
}

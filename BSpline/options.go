package BSpline

import (
	"fmt"
	"strings"
)

// Mode selects serial or parallel execution. Parallel results are identical to
// serial ones, only the columns and query points are split across go routines.
type Mode uint8

const (
	ModeSerial Mode = iota
	ModeParallel
)

var (
	ModeNames = map[string]Mode{
		"serial":   ModeSerial,
		"parallel": ModeParallel,
	}
	ModePrintNames = []string{"Serial", "Parallel"}
)

func (m Mode) Print() (txt string) {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", m)
	}
	txt = ModePrintNames[m]
	return
}

func (m Mode) valid() bool { return int(m) < len(ModePrintNames) }

func NewMode(label string) (m Mode, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if m, ok = ModeNames[label]; !ok {
		err = fmt.Errorf("unknown execution mode %q", label)
	}
	return
}

// Extrapolation selects what happens to query points outside [x0, x[n-1]]
type Extrapolation uint8

const (
	// ExtrapolateZeroPad runs the window arithmetic unguarded, coefficient
	// rows that fall outside of the coefficient array contribute zero.
	ExtrapolateZeroPad Extrapolation = iota
	// ExtrapolateClamp moves outside query points onto the nearest end knot
	ExtrapolateClamp
	// ExtrapolateReject fails the whole call with an *OutOfRangeError
	ExtrapolateReject
)

var (
	ExtrapolationNames = map[string]Extrapolation{
		"zeropad": ExtrapolateZeroPad,
		"clamp":   ExtrapolateClamp,
		"reject":  ExtrapolateReject,
	}
	ExtrapolationPrintNames = []string{"ZeroPad", "Clamp", "Reject"}
)

func (e Extrapolation) Print() (txt string) {
	if !e.valid() {
		return fmt.Sprintf("Extrapolation(%d)", e)
	}
	txt = ExtrapolationPrintNames[e]
	return
}

func (e Extrapolation) valid() bool { return int(e) < len(ExtrapolationPrintNames) }

func NewExtrapolation(label string) (e Extrapolation, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(label)
	if e, ok = ExtrapolationNames[label]; !ok {
		err = fmt.Errorf("unknown extrapolation %q", label)
	}
	return
}

type config struct {
	alpha, beta   float64
	extrapolation Extrapolation
	mode          Mode
	procLimit     int
	cache         *Cache
	checkGrid     bool
	gridTolerance float64
}

func defaultConfig() config {
	return config{
		extrapolation: ExtrapolateZeroPad,
		mode:          ModeSerial,
	}
}

func (c config) validate() error {
	if !c.mode.valid() {
		return fmt.Errorf("%w: unknown execution mode %s", ErrOption, c.mode.Print())
	}
	if !c.extrapolation.valid() {
		return fmt.Errorf("%w: unknown extrapolation %s", ErrOption, c.extrapolation.Print())
	}
	return nil
}

type Option func(*config)

// WithBoundary sets the boundary parameters, the second derivative at the
// first and last knot times h². The default 0, 0 is the natural spline.
func WithBoundary(alpha, beta float64) Option {
	return func(c *config) { c.alpha, c.beta = alpha, beta }
}

func WithExtrapolation(e Extrapolation) Option {
	return func(c *config) { c.extrapolation = e }
}

func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithParallelDegree limits the go routines used in ModeParallel, 0 uses all
// CPUs
func WithParallelDegree(np int) Option {
	return func(c *config) { c.procLimit = np }
}

// WithCache shares Layouts between interpolators built with the same cache.
// Without it every interpolator builds its own.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithGridCheck rejects grids that are not increasing with a spacing uniform
// to within tol relative to h. Off by default.
func WithGridCheck(tol float64) Option {
	return func(c *config) { c.checkGrid, c.gridTolerance = true, tol }
}

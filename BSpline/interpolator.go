package BSpline

import (
	"fmt"
	"math"

	"github.com/notargets/cardbspline/utils"
)

/*
Interpolator is a cubic cardinal B-spline fitted to samples on a uniform grid.
The samples may have any number of dimensions, interpolation runs along one of
them and the others are carried through as independent batch slices.

An Interpolator is immutable after construction and safe for concurrent use.
*/
type Interpolator struct {
	xi            []float64
	x0, h         float64
	c             utils.Matrix // (n+3) x batch, see CalcCoeffs
	shape         []int        // shape of the fitted values, original axis order
	trailing      []int        // shape of the fitted values without the interpolation axis
	layout        *Layout
	alpha, beta   float64
	extrapolation Extrapolation
	mode          Mode
	procLimit     int
}

// New1D fits a single sampled function
func New1D(grid, values []float64, opts ...Option) (ip *Interpolator, err error) {
	return NewInterpolator(grid, utils.NewNDArray([]int{len(values)}, values), 0, opts...)
}

// NewInterpolator fits values along axis, values.Shape[axis] must equal the
// number of grid points. A negative axis counts from the last axis. The grid
// must be uniformly spaced and increasing, this is only verified when the
// WithGridCheck option is given.
func NewInterpolator(grid []float64, values utils.NDArray, axis int, opts ...Option) (ip *Interpolator, err error) {
	var (
		cfg    = defaultConfig()
		n      = len(grid)
		layout *Layout
	)
	for _, opt := range opts {
		opt(&cfg)
	}
	if err = cfg.validate(); err != nil {
		return
	}
	if values.Dims() == 0 {
		err = &ShapeError{Op: "NewInterpolator", Want: []int{n}, Got: values.Shape}
		return
	}
	if cfg.cache != nil {
		layout, err = cfg.cache.Get(values.Dims(), axis, cfg.mode)
	} else {
		layout, err = NewLayout(values.Dims(), axis)
	}
	if err != nil {
		return
	}
	if values.Shape[layout.Axis] != n {
		want := append([]int{}, values.Shape...)
		want[layout.Axis] = n
		err = &ShapeError{Op: "NewInterpolator", Want: want, Got: values.Shape}
		return
	}
	if n < MinGridPoints {
		err = &DegenerateGridError{N: n}
		return
	}
	if values.Size() == 0 {
		err = &ShapeError{Op: "NewInterpolator: empty batch", Want: values.Shape, Got: []int{values.Size()}}
		return
	}
	if cfg.checkGrid {
		if err = CheckGrid(grid, cfg.gridTolerance); err != nil {
			return
		}
	}

	ip = &Interpolator{
		xi:            append([]float64{}, grid...),
		x0:            grid[0],
		h:             (grid[n-1] - grid[0]) / float64(n-1),
		shape:         append([]int{}, values.Shape...),
		layout:        layout,
		alpha:         cfg.alpha,
		beta:          cfg.beta,
		extrapolation: cfg.extrapolation,
		mode:          cfg.mode,
		procLimit:     cfg.procLimit,
	}
	leading := layout.ToLeading(values)
	ip.trailing = leading.TrailingShape()
	y := leading.AsMatrix()
	_, nb := y.Dims()
	if ip.c, err = CalcCoeffs(y, cfg.alpha, cfg.beta, ip.partitions(nb)); err != nil {
		ip = nil
		return
	}
	ip.c.SetReadOnly("control coefficients")
	return
}

// CheckGrid verifies that grid is increasing with uniform spacing to within
// tol relative to the mean spacing
func CheckGrid(grid []float64, tol float64) (err error) {
	var (
		n = len(grid)
	)
	if n < 2 {
		return &DegenerateGridError{N: n}
	}
	h := (grid[n-1] - grid[0]) / float64(n-1)
	if !(h > 0) {
		return fmt.Errorf("%w: mean spacing %g", ErrGrid, h)
	}
	for i := 1; i < n; i++ {
		if dx := grid[i] - grid[i-1]; math.Abs(dx-h) > tol*h {
			return fmt.Errorf("%w: spacing %g at index %d, mean spacing %g", ErrGrid, dx, i, h)
		}
	}
	return
}

/*
Window locates the control coefficients for normalized position aux = (x-x0)/h.

With m = floor(aux), dist holds |aux - knot| for knots m-1, m, m+1, m+2 in that
order and rows holds the coefficient rows m, m+1, m+2, m+3 that pair with them.
The row index runs one ahead of the knot index because coefficient row j
belongs to knot j-1.
*/
func Window(aux float64) (dist [4]float64, rows [4]int) {
	k := int(math.Floor(aux)) - 1
	for i := 0; i < 4; i++ {
		dist[i] = math.Abs(aux - float64(k))
		k++ // k must be incremented between the distance and the gather
		rows[i] = k
	}
	return
}

// Interp evaluates the spline at the query points x, shared by every batch
// slice. The result has the shape of the fitted values with the
// interpolation axis resized to len(x).
func (ip *Interpolator) Interp(x []float64) (Y utils.NDArray, err error) {
	var (
		q      = len(x)
		_, nb  = ip.c.Dims()
		xs     []float64
		leadYs = append([]int{q}, ip.trailing...)
	)
	if xs, err = ip.applyExtrapolation(x); err != nil {
		return
	}
	Y = utils.NewNDArray(leadYs)
	ip.partitions(q).Run(func(_, iMin, iMax int) {
		for i := iMin; i < iMax; i++ {
			ip.evalRow(xs[i], Y.Data[i*nb:(i+1)*nb])
		}
	})
	Y = ip.layout.Restore(Y)
	return
}

// InterpND evaluates the spline with separate query points for every batch
// slice. x must have the shape of the fitted values except along the
// interpolation axis, whose length is the number of query points.
func (ip *Interpolator) InterpND(x utils.NDArray) (Y utils.NDArray, err error) {
	var (
		axis  = ip.layout.Axis
		_, nb = ip.c.Dims()
	)
	if x.Dims() != len(ip.shape) {
		err = &ShapeError{Op: "InterpND", Want: ip.shape, Got: x.Shape}
		return
	}
	want := append([]int{}, ip.shape...)
	want[axis] = x.Shape[axis]
	if !utils.ShapeEqual(want, x.Shape) {
		err = &ShapeError{Op: "InterpND", Want: want, Got: x.Shape}
		return
	}
	var (
		xl = ip.layout.ToLeading(x)
		q  = xl.Shape[0]
		xs []float64
	)
	if xs, err = ip.applyExtrapolation(xl.Data); err != nil {
		return
	}
	Y = utils.NewNDArray(xl.Shape)
	ip.partitions(q).Run(func(_, iMin, iMax int) {
		for i := iMin; i < iMax; i++ {
			for j := 0; j < nb; j++ {
				Y.Data[i*nb+j] = ip.evalElement(xs[i*nb+j], j)
			}
		}
	})
	Y = ip.layout.Restore(Y)
	return
}

// evalRow accumulates all batch slices of the spline at x into dst
func (ip *Interpolator) evalRow(x float64, dst []float64) {
	aux := (x - ip.x0) / ip.h
	if math.IsNaN(aux) {
		for j := range dst {
			dst[j] = math.NaN()
		}
		return
	}
	if ip.outsideSupport(aux) {
		return
	}
	dist, rows := Window(aux)
	nr, _ := ip.c.Dims()
	for i := 0; i < 4; i++ {
		if rows[i] < 0 || rows[i] >= nr {
			continue
		}
		utils.AXPY(Kernel(dist[i]), ip.c.Row(rows[i]), dst)
	}
}

// evalElement is the spline of batch slice j at x
func (ip *Interpolator) evalElement(x float64, j int) (y float64) {
	aux := (x - ip.x0) / ip.h
	if math.IsNaN(aux) {
		return math.NaN()
	}
	if ip.outsideSupport(aux) {
		return
	}
	var (
		dist, rows = Window(aux)
		nr, nb     = ip.c.Dims()
	)
	for i := 0; i < 4; i++ {
		if rows[i] < 0 || rows[i] >= nr {
			continue
		}
		y += Kernel(dist[i]) * ip.c.DataP[rows[i]*nb+j]
	}
	return
}

// outsideSupport is true when no coefficient row of the window exists, this
// also keeps the float to int conversion in Window in range
func (ip *Interpolator) outsideSupport(aux float64) bool {
	nr, _ := ip.c.Dims()
	return aux < -3 || aux > float64(nr)
}

func (ip *Interpolator) applyExtrapolation(x []float64) (xs []float64, err error) {
	var (
		xMin, xMax = ip.xi[0], ip.xi[len(ip.xi)-1]
	)
	switch ip.extrapolation {
	case ExtrapolateClamp:
		xs = make([]float64, len(x))
		for i, val := range x {
			xs[i] = math.Max(xMin, math.Min(xMax, val))
			if math.IsNaN(val) {
				xs[i] = val
			}
		}
	case ExtrapolateReject:
		for _, val := range x {
			if !(val >= xMin && val <= xMax) {
				err = &OutOfRangeError{X: val, Min: xMin, Max: xMax}
				return
			}
		}
		xs = x
	default:
		xs = x
	}
	return
}

func (ip *Interpolator) partitions(maxIndex int) *utils.PartitionMap {
	if ip.mode != ModeParallel || maxIndex < 2 {
		return utils.NewPartitionMap(1, maxIndex)
	}
	return utils.NewPartitionMap(utils.ParallelDegreeFor(ip.procLimit, maxIndex), maxIndex)
}

func (ip *Interpolator) Grid() []float64                 { return append([]float64{}, ip.xi...) }
func (ip *Interpolator) NumKnots() int                   { return len(ip.xi) }
func (ip *Interpolator) Spacing() float64                { return ip.h }
func (ip *Interpolator) Axis() int                       { return ip.layout.Axis }
func (ip *Interpolator) Layout() *Layout                 { return ip.layout }
func (ip *Interpolator) Shape() []int                    { return append([]int{}, ip.shape...) }
func (ip *Interpolator) Boundary() (alpha, beta float64) { return ip.alpha, ip.beta }
func (ip *Interpolator) Extrapolation() Extrapolation    { return ip.extrapolation }
func (ip *Interpolator) Mode() Mode                      { return ip.mode }

// Coefficients returns a copy of the (n+3) x batch control coefficients
func (ip *Interpolator) Coefficients() utils.Matrix { return ip.c.Copy() }

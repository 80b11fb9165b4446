package BSpline

import (
	"github.com/notargets/cardbspline/utils"
)

/*
Kernel is the cardinal cubic B-spline basis of the absolute, grid normalized
distance t between a query point and a knot:

	K(t) = 4 - 3(2t² - t³)   t <= 1
	K(t) = (2 - t)³          1 < t <= 2
	K(t) = 0                 t > 2

K(0) = 4 and K(1) = 1, so the weights of the 4 knots around any point sum to 6.
*/
func Kernel(t float64) float64 {
	switch {
	case t > 2:
		return 0
	case t > 1:
		return utils.POW(2-t, 3)
	default:
		return 4 - 3*(2*t*t-utils.POW(t, 3))
	}
}

// KernelApply evaluates the kernel elementwise into a new slice
func KernelApply(t []float64) (k []float64) {
	k = make([]float64, len(t))
	for i, val := range t {
		k[i] = Kernel(val)
	}
	return
}

// KernelMatrix evaluates the kernel elementwise into a new matrix
func KernelMatrix(t utils.Matrix) (K utils.Matrix) {
	return t.Copy().Apply(Kernel)
}

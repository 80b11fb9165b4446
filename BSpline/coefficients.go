package BSpline

import (
	"fmt"

	"github.com/notargets/cardbspline/utils"
)

const (
	offDiagonal = 1.
	onDiagonal  = 3. + offDiagonal
)

// InteriorSystem is the tridiagonal system for control coefficients 2..n-1 of
// an n point grid: c[i] + 4c[i+1] + c[i+2] = y[i]
func InteriorSystem(n int) utils.TridiagonalSystem {
	return utils.NewTridiagonalSystem(n-2, offDiagonal, onDiagonal, offDiagonal)
}

/*
CalcCoeffs computes the control coefficients for samples y (n rows, one column
per batch slice). The result has n+3 rows:

	row 0        boundary coefficient from alpha
	rows 1..n    one per knot, row j belongs to knot j-1
	row n+1      boundary coefficient from beta
	row n+2      zero, so the window of the last knot can be gathered

alpha and beta are the second derivatives at the first and last knot times h².
Passing a PartitionMap over the batch columns solves the columns in parallel.
*/
func CalcCoeffs(y utils.Matrix, alpha, beta float64, pm *utils.PartitionMap) (c utils.Matrix, err error) {
	var (
		n, nb = y.Dims()
	)
	if n < MinGridPoints {
		err = &DegenerateGridError{N: n}
		return
	}
	c = utils.NewMatrix(n+3, nb)
	var (
		c1, cn = c.Row(1), c.Row(n)
		y0, yl = y.Row(0), y.Row(n - 1)
	)
	for j := 0; j < nb; j++ {
		c1[j] = (y0[j] - alpha/6.) / 6.
		cn[j] = (yl[j] - beta/6.) / 6.
	}

	rhs := interiorRHS(y, c)
	sys := InteriorSystem(n)
	if pm != nil {
		_, err = sys.SolveParallel(rhs, pm)
	} else {
		_, err = sys.Solve(rhs)
	}
	if err != nil {
		err = fmt.Errorf("solving for control coefficients: %w", err)
		return
	}
	copy(c.DataP[2*nb:n*nb], rhs.DataP)

	var (
		c0, c2     = c.Row(0), c.Row(2)
		cnp1, cnm1 = c.Row(n + 1), c.Row(n - 1)
	)
	for j := 0; j < nb; j++ {
		c0[j] = alpha/6. + 2.*c1[j] - c2[j]
		cnp1[j] = beta/6. + 2.*cn[j] - cnm1[j]
	}
	return
}

// interiorRHS is y[1:n-1] with the fixed coefficients c[1] and c[n] moved to
// the right hand side
func interiorRHS(y, c utils.Matrix) (rhs utils.Matrix) {
	var (
		n, nb = y.Dims()
	)
	rhs = y.SliceRows(1, n-1)
	var (
		first, last = rhs.Row(0), rhs.Row(-1)
		c1, cn      = c.Row(1), c.Row(n)
	)
	for j := 0; j < nb; j++ {
		first[j] -= c1[j]
		last[j] -= cn[j]
	}
	return
}

// CoeffResidual reassembles the interior system for samples y and returns
// max |A c[2:n] - y'| for the coefficients c returned by CalcCoeffs.
func CoeffResidual(y, c utils.Matrix) (res float64, err error) {
	var (
		n, nb   = y.Dims()
		nc, ncb = c.Dims()
	)
	if n < MinGridPoints {
		err = &DegenerateGridError{N: n}
		return
	}
	if nc != n+3 || ncb != nb {
		err = &ShapeError{Op: "CoeffResidual", Want: []int{n + 3, nb}, Got: []int{nc, ncb}}
		return
	}
	return InteriorSystem(n).Residual(c.SliceRows(2, n), interiorRHS(y, c))
}

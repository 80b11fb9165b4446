package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N points evenly spaced over [xmin, xmax], endpoints included
func Linspace(xmin, xmax float64, N int) (x []float64) {
	if N < 1 {
		return
	}
	x = make([]float64, N)
	if N == 1 {
		x[0] = xmin
		return
	}
	dx := (xmax - xmin) / float64(N-1)
	for i := range x {
		x[i] = xmin + float64(i)*dx
	}
	x[N-1] = xmax
	return
}

func vec(x []float64) blas64.Vector { return blas64.Vector{N: len(x), Data: x, Inc: 1} }

// AXPY is y += alpha*x over equal length slices
func AXPY(alpha float64, x, y []float64) {
	if len(x) != len(y) {
		panic(fmt.Errorf("AXPY: length mismatch %d != %d", len(x), len(y)))
	}
	if len(y) == 0 {
		return
	}
	blas64.Axpy(alpha, vec(x), vec(y))
}

// SCAL is x *= alpha
func SCAL(alpha float64, x []float64) {
	if len(x) == 0 {
		return
	}
	blas64.Scal(alpha, vec(x))
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

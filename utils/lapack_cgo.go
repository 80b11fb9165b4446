//go:build cgo && netlib
// +build cgo,netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lgfortran -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes AXPY and SCAL, which carry the tridiagonal
// sweeps and the spline evaluation, to OpenBLAS.
func init() {
	blas64.Use(netblas.Implementation{})
}

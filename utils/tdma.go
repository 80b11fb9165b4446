package utils

import (
	"fmt"
)

/*
TDMA solves A x = d where A is tridiagonal, using the Thomas algorithm.

	a[i] is A[i+1,i] (a[m-1] is unused)
	b[i] is A[i,i]
	c[i] is A[i,i+1] (c[m-1] is unused)

d is m rows by any number of columns, each column is an independent right hand
side. The recurrences run over the rows only, so the numerics of a column do
not depend on how many other columns are present.

b and d are overwritten, the solution is written into d's storage and returned.
Stable when A is diagonally dominant, there is no pivoting.
*/
func TDMA(a, b, c []float64, d Matrix) (x Matrix, err error) {
	if err = checkTDMA(a, b, c, d); err != nil {
		return
	}
	var (
		m, nc = d.Dims()
	)
	tdmaSweep(a, b, c, d.DataP, nc, m, 0, nc)
	x = d
	return
}

// TDMAColumns is TDMA with the columns of d split into the partitions of pm,
// each partition solved in its own go routine. b is not modified.
func TDMAColumns(a, b, c []float64, d Matrix, pm *PartitionMap) (x Matrix, err error) {
	if err = checkTDMA(a, b, c, d); err != nil {
		return
	}
	var (
		m, nc = d.Dims()
	)
	if pm == nil || pm.ParallelDegree < 2 || pm.MaxIndex != nc {
		bb := make([]float64, len(b))
		copy(bb, b)
		tdmaSweep(a, bb, c, d.DataP, nc, m, 0, nc)
		x = d
		return
	}
	pm.Run(func(np, jMin, jMax int) {
		if jMax == jMin {
			return
		}
		// The forward sweep modifies the diagonal, each partition needs its own
		bb := make([]float64, len(b))
		copy(bb, b)
		tdmaSweep(a, bb, c, d.DataP, nc, m, jMin, jMax)
	})
	x = d
	return
}

func checkTDMA(a, b, c []float64, d Matrix) (err error) {
	if d.IsEmpty() {
		err = fmt.Errorf("TDMA: right hand side is empty")
		return
	}
	var (
		m, _ = d.Dims()
	)
	if len(a) != m || len(b) != m || len(c) != m {
		err = fmt.Errorf("TDMA: diagonal lengths (%d, %d, %d) do not match %d rows in right hand side",
			len(a), len(b), len(c), m)
	}
	return
}

func tdmaSweep(a, b, c, d []float64, stride, m, j0, j1 int) {
	var (
		row = func(i int) []float64 { return d[i*stride+j0 : i*stride+j1] }
	)
	// Forward elimination
	for i := 0; i < m-1; i++ {
		mlt := a[i] / b[i]
		b[i+1] -= mlt * c[i]
		AXPY(-mlt, row(i), row(i+1))
	}
	// Back substitution
	SCAL(1./b[m-1], row(m-1))
	for i := m - 2; i >= 0; i-- {
		di := row(i)
		AXPY(-c[i], row(i+1), di)
		SCAL(1./b[i], di)
	}
}

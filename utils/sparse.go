package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// TridiagonalSystem holds the three diagonals of a tridiagonal matrix using the
// TDMA convention: A[i+1,i] = A[i], A[i,i] = B[i], A[i,i+1] = C[i].
type TridiagonalSystem struct {
	A, B, C []float64
}

func NewTridiagonalSystem(m int, sub, diag, super float64) (ts TridiagonalSystem) {
	ts = TridiagonalSystem{
		A: ConstArray(m, sub),
		B: ConstArray(m, diag),
		C: ConstArray(m, super),
	}
	return
}

func (ts TridiagonalSystem) Len() int { return len(ts.B) }

// Solve leaves the system intact and overwrites d with the solution
func (ts TridiagonalSystem) Solve(d Matrix) (x Matrix, err error) {
	b := make([]float64, len(ts.B))
	copy(b, ts.B)
	return TDMA(ts.A, b, ts.C, d)
}

// SolveParallel splits the columns of d over the partitions of pm
func (ts TridiagonalSystem) SolveParallel(d Matrix, pm *PartitionMap) (x Matrix, err error) {
	return TDMAColumns(ts.A, ts.B, ts.C, d, pm)
}

// DOK assembles the system as a sparse dictionary of keys matrix
func (ts TridiagonalSystem) DOK() (R DOK) {
	var (
		m = ts.Len()
	)
	R = NewDOK(m, m)
	for i := 0; i < m; i++ {
		R.M.Set(i, i, ts.B[i])
		if i < m-1 {
			R.M.Set(i, i+1, ts.C[i])
			R.M.Set(i+1, i, ts.A[i])
		}
	}
	return
}

func (ts TridiagonalSystem) CSR() (R CSR) {
	return ts.DOK().ToCSR()
}

// Residual returns max |A x - d| over all entries, columns of x and d are
// independent right hand sides.
func (ts TridiagonalSystem) Residual(x, d Matrix) (res float64, err error) {
	var (
		m        = ts.Len()
		nrX, ncX = x.Dims()
		nrD, ncD = d.Dims()
	)
	if nrX != m || nrD != m || ncX != ncD {
		err = fmt.Errorf("residual dimensions mismatch: system %d, x %d x %d, d %d x %d",
			m, nrX, ncX, nrD, ncD)
		return
	}
	Ax := NewMatrix(m, ncX)
	Ax.M.Mul(ts.CSR().M, x.M)
	res = Ax.Subtract(d).MaxAbs()
	return
}

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

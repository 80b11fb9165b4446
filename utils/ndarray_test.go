package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNDArray(t *testing.T) {
	A := NewNDArray([]int{2, 3, 4})
	for i := range A.Data {
		A.Data[i] = float64(i)
	}
	assert.Equal(t, 3, A.Dims())
	assert.Equal(t, 24, A.Size())
	assert.Equal(t, []int{12, 4, 1}, A.Strides())
	assert.Equal(t, []int{3, 4}, A.TrailingShape())
	assert.Equal(t, 17., A.At(1, 1, 1))
	A.Set(-1, 0, 2, 3)
	assert.Equal(t, -1., A.Data[11])
	assert.Panics(t, func() { A.At(2, 0, 0) })
	assert.Panics(t, func() { A.At(0, 0) })
	assert.Panics(t, func() { NewNDArray([]int{2, 2}, []float64{1, 2, 3}) })

	{ // Transpose follows numpy: R.Shape[i] = A.Shape[perm[i]]
		R := A.Transpose([]int{2, 0, 1})
		require.Equal(t, []int{4, 2, 3}, R.Shape)
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 4; k++ {
					assert.Equal(t, A.At(i, j, k), R.At(k, i, j))
				}
			}
		}
		// Identity permutation copies
		I := A.Transpose([]int{0, 1, 2})
		assert.Equal(t, A.Data, I.Data)
		I.Data[0] = 100
		assert.Equal(t, 0., A.Data[0])
		assert.Panics(t, func() { A.Transpose([]int{0, 0, 1}) })
		assert.Panics(t, func() { A.Transpose([]int{0, 1}) })
	}
	{ // Zero length axis
		Z := NewNDArray([]int{0, 3})
		R := Z.Transpose([]int{1, 0})
		assert.Equal(t, []int{3, 0}, R.Shape)
		assert.Equal(t, 0, R.Size())
	}
	{ // Matrix view shares storage
		M := A.AsMatrix()
		nr, nc := M.Dims()
		assert.Equal(t, 2, nr)
		assert.Equal(t, 12, nc)
		M.Set(1, 0, 42)
		assert.Equal(t, 42., A.At(1, 0, 0))
		B := NDArrayFromMatrix(M, []int{4, 6})
		assert.Equal(t, 42., B.At(2, 0))
		V := NewNDArray([]int{5}).AsMatrix()
		nr, nc = V.Dims()
		assert.Equal(t, 5, nr)
		assert.Equal(t, 1, nc)
	}
	assert.True(t, ShapeEqual([]int{1, 2}, []int{1, 2}))
	assert.False(t, ShapeEqual([]int{1, 2}, []int{2, 1}))
	assert.False(t, ShapeEqual([]int{1}, []int{1, 1}))
	assert.Equal(t, 1, ShapeSize(nil))
}

func TestMatrix(t *testing.T) {
	M := NewMatrix(3, 2, []float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []float64{3, 4}, M.Row(1))
	assert.Equal(t, []float64{5, 6}, M.Row(-1))
	S := M.SliceRows(1, -1)
	nr, nc := S.Dims()
	assert.Equal(t, 1, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, []float64{3, 4}, S.DataP)
	S.Set(0, 0, 100)
	assert.Equal(t, 3., M.At(1, 0))
	assert.Panics(t, func() { M.SliceRows(2, 1) })

	C := M.Copy().Apply(func(x float64) float64 { return 1 - 2*x })
	assert.Equal(t, 11., C.MaxAbs())
	assert.Equal(t, []float64{-1, -3, -5, -7, -9, -11}, C.DataP)
	C.Subtract(C.Copy())
	assert.Equal(t, 0., C.MaxAbs())
	assert.Equal(t, 1., M.At(0, 0))

	R := M.Copy()
	M.SetReadOnly("M")
	assert.Panics(t, func() { M.Set(0, 0, 1) })
	assert.Panics(t, func() { M.Subtract(R) })
	R.SetRow(0, []float64{7, 8})
	assert.Equal(t, 8., R.At(0, 1))
	assert.Equal(t, 2., M.At(0, 1))
	assert.Contains(t, M.Print("M"), "M = ")

	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{3}, Linspace(3, 4, 1))
	assert.Empty(t, Linspace(3, 4, 0))
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 0.25, POW(2, -2))
}

func TestCountNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 1, CountNaN(nan))
	assert.Equal(t, 0, CountNaN(1.))
	assert.Equal(t, 2, CountNaN([]float64{nan, 1, nan}))
	assert.Equal(t, 1, CountNaN(NewMatrix(2, 1, []float64{0, nan})))
	assert.Equal(t, 1, CountNaN(NewNDArray([]int{1, 2}, []float64{nan, 0})))
	assert.Equal(t, 0, CountNaN("none"))
	assert.Contains(t, GetMemUsage(), "Alloc = ")
}

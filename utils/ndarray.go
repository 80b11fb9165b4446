package utils

import (
	"fmt"
)

// NDArray is a row-major N dimensional array of float64. The last axis is
// contiguous in Data.
type NDArray struct {
	Shape []int
	Data  []float64
}

func NewNDArray(shape []int, dataO ...[]float64) (R NDArray) {
	var (
		size = ShapeSize(shape)
	)
	for _, s := range shape {
		if s < 0 {
			panic(fmt.Errorf("negative dimension in shape %v", shape))
		}
	}
	R.Shape = append([]int{}, shape...)
	if len(dataO) != 0 {
		if len(dataO[0]) != size {
			err := fmt.Errorf("mismatch in allocation: NewNDArray shape = %v, len(data[0]) = %v\n", shape, len(dataO[0]))
			panic(err)
		}
		R.Data = dataO[0]
	} else {
		R.Data = make([]float64, size)
	}
	return
}

// NDArrayFromMatrix reinterprets the row-major storage of m with the given
// shape, the storage is shared.
func NDArrayFromMatrix(m Matrix, shape []int) (R NDArray) {
	return NewNDArray(shape, m.DataP)
}

func (a NDArray) Dims() int     { return len(a.Shape) }
func (a NDArray) Size() int     { return len(a.Data) }
func (a NDArray) Len() int      { return a.Shape[0] }
func (a NDArray) IsEmpty() bool { return len(a.Data) == 0 }

// TrailingShape is the shape of the array with the leading axis removed
func (a NDArray) TrailingShape() []int {
	if len(a.Shape) == 0 {
		return nil
	}
	return append([]int{}, a.Shape[1:]...)
}

func (a NDArray) Strides() (strides []int) {
	strides = make([]int, len(a.Shape))
	stride := 1
	for i := len(a.Shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= a.Shape[i]
	}
	return
}

func (a NDArray) offset(idx []int) (ind int) {
	if len(idx) != len(a.Shape) {
		panic(fmt.Errorf("index %v has wrong rank for shape %v", idx, a.Shape))
	}
	strides := a.Strides()
	for i, ii := range idx {
		if ii < 0 || ii >= a.Shape[i] {
			panic(fmt.Errorf("index %v out of bounds for shape %v", idx, a.Shape))
		}
		ind += ii * strides[i]
	}
	return
}

func (a NDArray) At(idx ...int) float64 { return a.Data[a.offset(idx)] }

func (a NDArray) Set(val float64, idx ...int) NDArray { // Changes receiver
	a.Data[a.offset(idx)] = val
	return a
}

func (a NDArray) Copy() (R NDArray) {
	R = NewNDArray(a.Shape)
	copy(R.Data, a.Data)
	return
}

// AsMatrix views the array as a (Shape[0] x product(Shape[1:])) matrix
// sharing storage. A 1-D array becomes a single column.
func (a NDArray) AsMatrix() (R Matrix) {
	var (
		nr = a.Shape[0]
		nc = ShapeSize(a.Shape[1:])
	)
	return NewMatrix(nr, nc, a.Data)
}

// Transpose permutes the axes so that R.Shape[i] == a.Shape[perm[i]], the
// same convention as numpy.transpose. The receiver is unchanged.
func (a NDArray) Transpose(perm []int) (R NDArray) {
	var (
		nd      = len(a.Shape)
		strides = a.Strides()
		shapeR  = make([]int, nd)
		srcStr  = make([]int, nd)
	)
	if !IsPermutation(perm, nd) {
		panic(fmt.Errorf("invalid axis permutation %v for shape %v", perm, a.Shape))
	}
	for i, p := range perm {
		shapeR[i] = a.Shape[p]
		srcStr[i] = strides[p]
	}
	R = NewNDArray(shapeR)
	if R.Size() == 0 {
		return
	}
	var (
		counter = make([]int, nd)
		src     int
	)
	for dst := range R.Data {
		R.Data[dst] = a.Data[src]
		// Odometer increment over the output shape, tracking the source offset
		for i := nd - 1; i >= 0; i-- {
			counter[i]++
			src += srcStr[i]
			if counter[i] < shapeR[i] {
				break
			}
			src -= counter[i] * srcStr[i]
			counter[i] = 0
		}
	}
	return
}

func ShapeSize(shape []int) (size int) {
	size = 1
	for _, s := range shape {
		size *= s
	}
	return
}

func ShapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func IsPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

package BSpline

import (
	"github.com/notargets/cardbspline/utils"
)

// Layout is the axis bookkeeping for interpolating along one axis of an
// NDim array. Forward moves Axis to position 0, Inverse restores the original
// order. A Layout is immutable once built.
type Layout struct {
	NDim, Axis       int
	Ordered          bool // Axis == 0, no transposes are needed
	Forward, Inverse []int
}

// NewLayout normalizes a negative axis the way numpy does
func NewLayout(ndim, axis int) (l *Layout, err error) {
	if axis < 0 {
		axis += ndim
	}
	if ndim < 1 || axis < 0 || axis >= ndim {
		err = &ShapeError{Op: "axis", Want: []int{ndim}, Got: []int{axis}}
		return
	}
	l = &Layout{
		NDim:    ndim,
		Axis:    axis,
		Ordered: axis == 0,
		Forward: make([]int, 0, ndim),
		Inverse: make([]int, 0, ndim),
	}
	l.Forward = append(l.Forward, axis)
	for a := 0; a < ndim; a++ {
		if a != axis {
			l.Forward = append(l.Forward, a)
		}
	}
	for a := 1; a <= axis; a++ {
		l.Inverse = append(l.Inverse, a)
	}
	l.Inverse = append(l.Inverse, 0)
	for a := axis + 1; a < ndim; a++ {
		l.Inverse = append(l.Inverse, a)
	}
	return
}

// ToLeading moves the interpolation axis of A to position 0
func (l *Layout) ToLeading(A utils.NDArray) utils.NDArray {
	if l.Ordered {
		return A
	}
	return A.Transpose(l.Forward)
}

// Restore undoes ToLeading
func (l *Layout) Restore(A utils.NDArray) utils.NDArray {
	if l.Ordered {
		return A
	}
	return A.Transpose(l.Inverse)
}

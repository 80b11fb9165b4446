package BSpline

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is matched by every *ShapeError
	ErrShape = errors.New("bspline: shape mismatch")
	// ErrDegenerateGrid is matched by every *DegenerateGridError
	ErrDegenerateGrid = errors.New("bspline: degenerate grid")
	// ErrOutOfRange is matched by every *OutOfRangeError
	ErrOutOfRange = errors.New("bspline: query point outside of grid")
	// ErrGrid is returned by the optional grid check for non uniform or non
	// increasing grids
	ErrGrid = errors.New("bspline: grid is not uniform and increasing")
	// ErrOption is returned for a Mode or Extrapolation outside of the
	// defined constants
	ErrOption = errors.New("bspline: invalid option")
)

// MinGridPoints is the shortest grid for which the interior system has at
// least two unknowns
const MinGridPoints = 4

type ShapeError struct {
	Op        string
	Want, Got []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bspline: %s: shape mismatch, want %v, got %v", e.Op, e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

type DegenerateGridError struct {
	N int
}

func (e *DegenerateGridError) Error() string {
	return fmt.Sprintf("bspline: grid has %d points, need at least %d", e.N, MinGridPoints)
}

func (e *DegenerateGridError) Is(target error) bool { return target == ErrDegenerateGrid }

type OutOfRangeError struct {
	X, Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bspline: query point %g outside of grid [%g, %g]", e.X, e.Min, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

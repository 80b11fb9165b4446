package BSpline

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cardbspline/utils"
)

func TestCalcCoeffs(t *testing.T) {
	{ // x² on [0,5], natural boundary
		y := utils.NewMatrix(6, 1, []float64{0, 1, 4, 9, 16, 25})
		c, err := CalcCoeffs(y, 0, 0, nil)
		require.NoError(t, err)
		nr, nc := c.Dims()
		require.Equal(t, 9, nr)
		require.Equal(t, 1, nc)
		assert.InDeltaSlice(t, []float64{
			-0.09649122807017546, 0, 0.09649122807017546, 0.6140350877192982,
			1.4473684210526319, 2.596491228070175, 4.166666666666667,
			5.736842105263159, 0}, c.DataP, 1.e-12)
		// Input is untouched
		assert.Equal(t, []float64{0, 1, 4, 9, 16, 25}, y.DataP)
	}
	{ // Boundary parameters equal to h² y'' give the exact quadratic
		y := utils.NewMatrix(6, 1, []float64{0, 1, 4, 9, 16, 25})
		c, err := CalcCoeffs(y, 2, 2, nil)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{
			1. / 9, -1. / 18, 1. / 9, 11. / 18, 26. / 18, 47. / 18, 74. / 18, 107. / 18, 0}, c.DataP, 1.e-12)
	}
	{ // Every knot is reproduced by c[j] + 4c[j+1] + c[j+2]
		n := 9
		y := utils.NewMatrix(n, 2)
		for i := 0; i < n; i++ {
			y.Set(i, 0, math.Sin(0.25*float64(i)))
			y.Set(i, 1, math.Exp(-0.5*float64(i)))
		}
		c, err := CalcCoeffs(y, 0.3, -0.7, nil)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			for j := 0; j < 2; j++ {
				assert.InDelta(t, y.At(i, j), c.At(i, j)+4*c.At(i+1, j)+c.At(i+2, j), 1.e-12)
			}
		}
		// The boundary rows encode the second derivative parameters
		assert.InDelta(t, 0.3/6, c.At(0, 0)-2*c.At(1, 0)+c.At(2, 0), 1.e-12)
		assert.InDelta(t, -0.7/6, c.At(n+1, 1)-2*c.At(n, 1)+c.At(n-1, 1), 1.e-12)
		// Padding row
		assert.Equal(t, []float64{0, 0}, c.Row(n+2))

		res, err := CoeffResidual(y, c)
		require.NoError(t, err)
		assert.Less(t, res, 1.e-12)
	}
}

func TestCalcCoeffsParallel(t *testing.T) {
	var (
		n, nb = 40, 13
		y     = utils.NewMatrix(n, nb)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < nb; j++ {
			y.Set(i, j, math.Cos(0.1*float64(i*(j+1))))
		}
	}
	cSerial, err := CalcCoeffs(y, 0, 0, nil)
	require.NoError(t, err)
	for _, np := range []int{1, 2, 3, 13} {
		cPar, err := CalcCoeffs(y, 0, 0, utils.NewPartitionMap(np, nb))
		require.NoError(t, err)
		assert.Equal(t, cSerial.DataP, cPar.DataP, "parallel degree %d", np)
	}
}

func TestCalcCoeffsDegenerate(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		_, err := CalcCoeffs(utils.NewMatrix(n, 1), 0, 0, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerateGrid))
		var dge *DegenerateGridError
		require.ErrorAs(t, err, &dge)
		assert.Equal(t, n, dge.N)
	}
	// Smallest supported grid
	y := utils.NewMatrix(4, 1, []float64{1, 2, 3, 4})
	c, err := CalcCoeffs(y, 0, 0, nil)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, y.At(i, 0), c.At(i, 0)+4*c.At(i+1, 0)+c.At(i+2, 0), 1.e-12)
	}
}

func TestCoeffResidualShape(t *testing.T) {
	y := utils.NewMatrix(6, 2)
	_, err := CoeffResidual(y, utils.NewMatrix(8, 2))
	assert.ErrorIs(t, err, ErrShape)
	_, err = CoeffResidual(y, utils.NewMatrix(9, 1))
	assert.ErrorIs(t, err, ErrShape)
}

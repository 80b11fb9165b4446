package BSpline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cardbspline/utils"
)

func TestLayout(t *testing.T) {
	{
		l, err := NewLayout(1, 0)
		require.NoError(t, err)
		assert.True(t, l.Ordered)
		assert.Equal(t, []int{0}, l.Forward)
		assert.Equal(t, []int{0}, l.Inverse)
	}
	{
		l, err := NewLayout(4, 2)
		require.NoError(t, err)
		assert.False(t, l.Ordered)
		assert.Equal(t, []int{2, 0, 1, 3}, l.Forward)
		assert.Equal(t, []int{1, 2, 0, 3}, l.Inverse)
	}
	{
		l, err := NewLayout(3, -1)
		require.NoError(t, err)
		assert.Equal(t, 2, l.Axis)
		assert.Equal(t, []int{2, 0, 1}, l.Forward)
		assert.Equal(t, []int{1, 2, 0}, l.Inverse)
	}
	{ // Inverse undoes Forward for every axis
		A := utils.NewNDArray([]int{2, 3, 4, 5})
		for i := range A.Data {
			A.Data[i] = float64(i)
		}
		for axis := 0; axis < 4; axis++ {
			l, err := NewLayout(4, axis)
			require.NoError(t, err)
			L := l.ToLeading(A)
			assert.Equal(t, A.Shape[axis], L.Shape[0])
			assert.Equal(t, A.Data, l.Restore(L).Data)
			assert.Equal(t, A.Shape, l.Restore(L).Shape)
		}
	}
	for _, bad := range [][2]int{{3, 3}, {3, -4}, {0, 0}} {
		_, err := NewLayout(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrShape)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	l1, err := c.Get(3, 1, ModeSerial)
	require.NoError(t, err)
	l2, err := c.Get(3, 1, ModeSerial)
	require.NoError(t, err)
	assert.Same(t, l1, l2)
	// A negative axis shares the entry of its normalized form
	l3, err := c.Get(3, -2, ModeSerial)
	require.NoError(t, err)
	assert.Same(t, l1, l3)
	l4, err := c.Get(3, 1, ModeParallel)
	require.NoError(t, err)
	assert.NotSame(t, l1, l4)
	assert.Equal(t, 2, c.Len())

	_, err = c.Get(2, 5, ModeSerial)
	assert.ErrorIs(t, err, ErrShape)
	assert.Equal(t, 2, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())

	{ // Concurrent first use inserts one entry per key
		c := NewCache()
		var (
			wg      = sync.WaitGroup{}
			layouts = make([]*Layout, 64)
		)
		for i := range layouts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				layouts[i], _ = c.Get(4, 3, ModeSerial)
			}(i)
		}
		wg.Wait()
		for _, l := range layouts {
			assert.Same(t, layouts[0], l)
		}
		assert.Equal(t, 1, c.Len())
	}
	{ // Interpolators built through one cache share the layout
		c := NewCache()
		xi := []float64{0, 1, 2, 3, 4}
		V := utils.NewNDArray([]int{2, 5})
		ip1, err := NewInterpolator(xi, V, 1, WithCache(c))
		require.NoError(t, err)
		ip2, err := NewInterpolator(xi, V, -1, WithCache(c))
		require.NoError(t, err)
		assert.Same(t, ip1.Layout(), ip2.Layout())
		ip3, err := NewInterpolator(xi, V, 1, WithCache(nil))
		require.NoError(t, err)
		assert.NotSame(t, ip1.Layout(), ip3.Layout())
		assert.Equal(t, 1, c.Len())
		// No cache unless one is given
		ip4, err := NewInterpolator(xi, V, 1)
		require.NoError(t, err)
		ip5, err := NewInterpolator(xi, V, 1)
		require.NoError(t, err)
		assert.NotSame(t, ip4.Layout(), ip5.Layout())
		assert.Equal(t, ip4.Layout(), ip5.Layout())
		assert.Equal(t, 1, c.Len())
	}
}

func TestModeAndExtrapolationNames(t *testing.T) {
	m, err := NewMode("Parallel")
	require.NoError(t, err)
	assert.Equal(t, ModeParallel, m)
	assert.Equal(t, "Serial", ModeSerial.Print())
	_, err = NewMode("jit")
	assert.Error(t, err)

	e, err := NewExtrapolation("CLAMP")
	require.NoError(t, err)
	assert.Equal(t, ExtrapolateClamp, e)
	assert.Equal(t, "ZeroPad", ExtrapolateZeroPad.Print())
	_, err = NewExtrapolation("linear")
	assert.Error(t, err)
}

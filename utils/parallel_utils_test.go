package utils

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	// Buckets tile [0, n) in order and their sizes differ by at most one
	for _, np := range []int{1, 5, 32} {
		for n := 0; n < 700; n++ {
			var (
				pm       = NewPartitionMap(np, n)
				next     int
				big, low = 0, n + 1
			)
			for b := 0; b < pm.ParallelDegree; b++ {
				kMin, kMax := pm.GetBucketRange(b)
				assert.Equal(t, next, kMin, "n = %d, np = %d, bucket %d", n, np, b)
				assert.LessOrEqual(t, kMin, kMax)
				next = kMax
				big, low = max(big, kMax-kMin), min(low, kMax-kMin)
			}
			assert.Equal(t, n, next, "n = %d, np = %d", n, np)
			assert.LessOrEqual(t, big-low, 1, "n = %d, np = %d", n, np)
		}
	}
	pm := NewPartitionMap(32, 287)
	kMin, kMax := pm.GetBucketRange(0)
	assert.Equal(t, 9, kMax-kMin)
	kMin, kMax = pm.GetBucketRange(31)
	assert.Equal(t, 287, kMax)
	assert.Equal(t, 8, kMax-kMin)
}

func TestPartitionMapRun(t *testing.T) {
	for _, np := range []int{1, 3, 8} {
		var (
			pm      = NewPartitionMap(np, 1000)
			visited = make([]int32, 1000)
			calls   int32
		)
		pm.Run(func(n, kMin, kMax int) {
			atomic.AddInt32(&calls, 1)
			bMin, bMax := pm.GetBucketRange(n)
			assert.Equal(t, bMin, kMin)
			assert.Equal(t, bMax, kMax)
			for k := kMin; k < kMax; k++ {
				atomic.AddInt32(&visited[k], 1)
			}
		})
		assert.Equal(t, int32(np), calls)
		for k := range visited {
			assert.Equal(t, int32(1), visited[k])
		}
	}
	// Empty range still calls once
	var calls int
	NewPartitionMap(1, 0).Run(func(_, kMin, kMax int) {
		calls++
		assert.Equal(t, kMin, kMax)
	})
	assert.Equal(t, 1, calls)
}

func TestParallelDegreeFor(t *testing.T) {
	assert.Equal(t, 4, ParallelDegreeFor(4, 100))
	assert.Equal(t, 3, ParallelDegreeFor(4, 3))
	assert.Equal(t, 1, ParallelDegreeFor(4, 0))
	assert.Equal(t, min(runtime.NumCPU(), 100000), ParallelDegreeFor(0, 100000))
}

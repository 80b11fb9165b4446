package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cardbspline/utils"
)

var samplesFile = []byte(`# x^2 and x^3 sampled on 0..4
% alternate comment
0 0
1 1

4 8
9 27
16 64`)

func TestReadSamples(t *testing.T) {
	{ // Test reading from a stream, no trailing newline
		Y, err := ReadSamplesFrom(bytes.NewReader(samplesFile))
		require.NoError(t, err)
		nr, nc := Y.Dims()
		assert.Equal(t, 5, nr)
		assert.Equal(t, 2, nc)
		assert.Equal(t, []float64{9, 27}, Y.Row(3))
		assert.Equal(t, []float64{16, 64}, Y.Row(-1))
	}
	{ // Test reading from a file
		fname := filepath.Join(t.TempDir(), "samples.dat")
		require.NoError(t, os.WriteFile(fname, samplesFile, 0644))
		Y, err := ReadSamples(fname, true)
		require.NoError(t, err)
		assert.Equal(t, 10, len(Y.DataP))
		_, err = ReadSamples(filepath.Join(t.TempDir(), "missing.dat"), false)
		assert.Error(t, err)
	}
	{ // Ragged and malformed tables
		_, err := ReadSamplesFrom(strings.NewReader("1 2\n3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		_, err = ReadSamplesFrom(strings.NewReader("1 2\n3 x\n"))
		assert.Error(t, err)
		_, err = ReadSamplesFrom(strings.NewReader("# nothing\n\n"))
		assert.Error(t, err)
	}
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer
	Y := utils.NewMatrix(2, 2, []float64{1, 2, 0.25, -1})
	require.NoError(t, WriteSamples(&buf, []float64{0, 0.5}, Y))
	assert.Equal(t, "0 1 2\n0.5 0.25 -1\n", buf.String())
	// What is written reads back as a table with the abscissa prepended
	R, err := ReadSamplesFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 0.5, 0.25, -1}, R.DataP)

	assert.Error(t, WriteSamples(&buf, []float64{0}, Y))
}

package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/cardbspline/utils"
)

// ReadSamples reads a whitespace delimited table of samples, one row per line.
// Blank lines and lines starting with "#" or "%" are skipped.
func ReadSamples(filename string, verbose bool) (Y utils.Matrix, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading samples file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s\n %s", filename, err)
		return
	}
	defer file.Close()
	if Y, err = ReadSamplesFrom(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
		return
	}
	if verbose {
		nr, nc := Y.Dims()
		fmt.Printf("Read %d rows of %d samples\n", nr, nc)
	}
	return
}

func ReadSamplesFrom(r io.Reader) (Y utils.Matrix, err error) {
	var (
		reader = bufio.NewReader(r)
		data   []float64
		nc     int
		nr     int
		lineNo int
		line   string
		done   bool
	)
	for !done {
		if line, done, err = getLine(reader); err != nil {
			return
		}
		lineNo++
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if nc == 0 {
			nc = len(fields)
		} else if len(fields) != nc {
			err = fmt.Errorf("line %d: have %d columns, expected %d", lineNo, len(fields), nc)
			return
		}
		for _, f := range fields {
			var val float64
			if val, err = strconv.ParseFloat(f, 64); err != nil {
				err = fmt.Errorf("line %d: %w", lineNo, err)
				return
			}
			data = append(data, val)
		}
		nr++
	}
	if nr == 0 {
		err = fmt.Errorf("no samples found")
		return
	}
	Y = utils.NewMatrix(nr, nc, data)
	return
}

// WriteSamples writes x as the first column followed by one column per batch
// slice of Y, which has one row per x value
func WriteSamples(w io.Writer, x []float64, Y utils.Matrix) (err error) {
	nr, nc := Y.Dims()
	if nr != len(x) {
		err = fmt.Errorf("have %d rows for %d abscissae", nr, len(x))
		return
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < nr; i++ {
		fmt.Fprintf(bw, "%.17g", x[i])
		for j := 0; j < nc; j++ {
			fmt.Fprintf(bw, " %.17g", Y.At(i, j))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// getLine returns the next trimmed line, done is set at the end of input
func getLine(reader *bufio.Reader) (line string, done bool, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF {
		done, err = true, nil
	}
	line = strings.TrimSpace(line)
	return
}

package spatialmath

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedMatrix is returned when a text matrix does not have 4 rows of 4 numbers.
var ErrMalformedMatrix = errors.New("malformed matrix")

func newMatrixDimError(n int) error {
	return errors.Wrapf(ErrMalformedMatrix, "expected 16 values but got %d", n)
}

// WriteText writes the matrix as 4 lines of 4 space-separated values, row by row.
// precision is the number of decimal digits; a negative precision prints the
// shortest representation that reads back exactly.
func (m Matrix) WriteText(w io.Writer, precision int) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < 4; row++ {
		fields := make([]string, 4)
		for col := 0; col < 4; col++ {
			fields[col] = strconv.FormatFloat(m.mat.At(row, col), 'f', precision, 64)
		}
		if _, err := bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText parses a matrix written by WriteText. Blank lines are ignored; anything
// other than exactly 4 rows of exactly 4 finite numbers is ErrMalformedMatrix.
func ReadText(r io.Reader) (Matrix, error) {
	var m Matrix
	row := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if row == 4 {
			return Matrix{}, errors.Wrap(ErrMalformedMatrix, "more than 4 rows")
		}
		values, err := spaceDelimitedStringToSlice(line)
		if err != nil {
			return Matrix{}, errors.Wrapf(ErrMalformedMatrix, "row %d: %v", row+1, err)
		}
		if len(values) != 4 {
			return Matrix{}, errors.Wrapf(ErrMalformedMatrix, "row %d has %d values", row+1, len(values))
		}
		for col, v := range values {
			m.mat.Set(row, col, v)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Matrix{}, errors.Wrapf(ErrMalformedMatrix, "row %d: %v", row+1, err)
		}
		return Matrix{}, err
	}
	if row != 4 {
		return Matrix{}, errors.Wrapf(ErrMalformedMatrix, "expected 4 rows but got %d", row)
	}
	return m, nil
}

// spaceDelimitedStringToSlice splits up a line of space-delimited numbers.
func spaceDelimitedStringToSlice(s string) ([]float64, error) {
	slice := strings.Fields(s)
	converted := make([]float64, 0, len(slice))
	for _, field := range slice {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, errors.Errorf("value %q is not finite", field)
		}
		converted = append(converted, value)
	}
	return converted, nil
}

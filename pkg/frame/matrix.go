package frame

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Dense copies the frame's values into a row-major matrix in column order.
// Nulls become NaN. Every column must be numeric.
func (f *Frame) Dense() (*mat.Dense, error) {
	for _, c := range f.cols {
		if !c.Kind().Numeric() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotNumeric, c.Name(), c.Kind())
		}
	}
	if f.nrows == 0 || len(f.cols) == 0 {
		return &mat.Dense{}, nil
	}
	data := make([]float64, f.nrows*len(f.cols))
	for j, c := range f.cols {
		for i := 0; i < f.nrows; i++ {
			data[i*len(f.cols)+j], _ = floatAt(c, i)
		}
	}
	return mat.NewDense(f.nrows, len(f.cols), data), nil
}

// FromMatrix labels an anonymous matrix. A nil names slice produces
// placeholder names "0".."c-1"; a nil index means RangeIndex.
func FromMatrix(m mat.Matrix, idx Index, names []string) (*Frame, error) {
	r, c := m.Dims()
	if names == nil {
		names = PlaceholderNames(c)
	}
	if len(names) != c {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrLengthMismatch, len(names), c)
	}
	if idx != nil && len(idx) != r {
		return nil, fmt.Errorf("%w: index has %d labels for %d rows", ErrLengthMismatch, len(idx), r)
	}
	cols := make([]Column, c)
	buf := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			buf[i] = m.At(i, j)
		}
		cols[j] = FloatColumnOf(names[j], buf)
	}
	if idx == nil {
		idx = RangeIndex(r)
	}
	return FromColumns(idx, cols...)
}

// PlaceholderNames returns "0".."n-1".
func PlaceholderNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

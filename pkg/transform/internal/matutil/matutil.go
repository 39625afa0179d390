// Package matutil holds the column-wise matrix helpers shared by the
// transform packages.
package matutil

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when a matrix does not have the fitted width.
var ErrShape = errors.New("matrix shape mismatch")

// Column returns the non-NaN values of column j.
func Column(X mat.Matrix, j int) []float64 {
	r, _ := X.Dims()
	out := make([]float64, 0, r)
	for i := 0; i < r; i++ {
		if v := X.At(i, j); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// PerColumn applies stat to the non-NaN values of every column. Columns
// with no values get NaN.
func PerColumn(X mat.Matrix, stat func([]float64) float64) []float64 {
	_, c := X.Dims()
	out := make([]float64, c)
	for j := range out {
		vals := Column(X, j)
		if len(vals) == 0 {
			out[j] = math.NaN()
			continue
		}
		out[j] = stat(vals)
	}
	return out
}

// Map returns a new matrix with fn applied to every cell.
func Map(X mat.Matrix, fn func(j int, v float64) float64) mat.Matrix {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, fn(j, X.At(i, j)))
		}
	}
	return out
}

// CheckWidth errors unless X has exactly want columns.
func CheckWidth(X mat.Matrix, want int) error {
	if _, c := X.Dims(); c != want {
		return fmt.Errorf("%w: got %d columns, fitted on %d", ErrShape, c, want)
	}
	return nil
}

// Clone copies a float slice.
func Clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

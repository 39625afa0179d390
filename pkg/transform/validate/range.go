// Package validate checks values without changing them.
package validate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrOutOfRange is returned when cells fall outside the allowed range.
var ErrOutOfRange = errors.New("values out of range")

// Range passes X through unchanged if every non-NaN cell lies in
// [Min, Max]. A nil bound is open.
type Range struct {
	Min *float64
	Max *float64
}

func (t *Range) Fit(X mat.Matrix) error { return nil }

func (t *Range) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	bad := make([]int, c)
	var total int
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if (t.Min != nil && v < *t.Min) || (t.Max != nil && v > *t.Max) {
				bad[j]++
				total++
			}
		}
	}
	if total > 0 {
		return nil, fmt.Errorf("validate_range: %w: %d cells (per column %v)", ErrOutOfRange, total, bad)
	}
	return X, nil
}

func (t *Range) FeatureNamesOut(in []string) []string { return in }

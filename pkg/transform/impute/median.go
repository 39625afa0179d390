package impute

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Median fills NaN with the column median seen at fit.
type Median struct{ filler }

func (t *Median) Fit(X mat.Matrix) error {
	t.fit(X, median)
	return nil
}

func (t *Median) Transform(X mat.Matrix) (mat.Matrix, error) { return t.transform(X) }

func median(vals []float64) float64 {
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2
	}
	return vals[mid]
}

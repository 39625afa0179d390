package impute

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Mean fills NaN with the column mean seen at fit.
type Mean struct{ filler }

func (t *Mean) Fit(X mat.Matrix) error {
	t.fit(X, func(v []float64) float64 { return stat.Mean(v, nil) })
	return nil
}

func (t *Mean) Transform(X mat.Matrix) (mat.Matrix, error) { return t.transform(X) }

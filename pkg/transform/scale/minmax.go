package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/transform/internal/matutil"
)

// MinMax maps each column onto [0, 1] using the range seen at fit.
type MinMax struct {
	min []float64
	max []float64
}

func (t *MinMax) Fit(X mat.Matrix) error {
	t.min = matutil.PerColumn(X, floats.Min)
	t.max = matutil.PerColumn(X, floats.Max)
	return nil
}

// FitTransform fits and rescales X in one pass over the learned ranges.
func (t *MinMax) FitTransform(X mat.Matrix, y []float64) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

func (t *MinMax) Transform(X mat.Matrix) (mat.Matrix, error) {
	if t.min == nil {
		return nil, framelearn.ErrNotFitted
	}
	if err := matutil.CheckWidth(X, len(t.min)); err != nil {
		return nil, err
	}
	return matutil.Map(X, func(j int, v float64) float64 {
		span := t.max[j] - t.min[j]
		if span == 0 || math.IsNaN(span) {
			span = 1
		}
		return (v - t.min[j]) / span
	}), nil
}

func (t *MinMax) FeatureNamesOut(in []string) []string { return in }

// Attribute exposes "min" and "max".
func (t *MinMax) Attribute(name string) (any, error) {
	var v []float64
	switch name {
	case "min":
		v = t.min
	case "max":
		v = t.max
	default:
		return nil, fmt.Errorf("%w: %s", framelearn.ErrNoAttribute, name)
	}
	if v == nil {
		return nil, framelearn.ErrNotFitted
	}
	return matutil.Clone(v), nil
}

// Package scale rescales matrix columns.
package scale

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/transform/internal/matutil"
)

// Standard centers columns on their mean and divides by the population
// standard deviation. NaN cells are ignored at fit and stay NaN. A column
// with zero spread is only centered.
type Standard struct {
	mean  []float64
	scale []float64
}

func (t *Standard) Fit(X mat.Matrix) error {
	t.mean = matutil.PerColumn(X, func(v []float64) float64 { return stat.Mean(v, nil) })
	t.scale = matutil.PerColumn(X, func(v []float64) float64 {
		m := stat.Mean(v, nil)
		var ss float64
		for _, x := range v {
			ss += (x - m) * (x - m)
		}
		sd := math.Sqrt(ss / float64(len(v)))
		if sd == 0 {
			return 1
		}
		return sd
	})
	return nil
}

func (t *Standard) Transform(X mat.Matrix) (mat.Matrix, error) {
	if t.mean == nil {
		return nil, framelearn.ErrNotFitted
	}
	if err := matutil.CheckWidth(X, len(t.mean)); err != nil {
		return nil, err
	}
	return matutil.Map(X, func(j int, v float64) float64 {
		return (v - t.mean[j]) / t.scale[j]
	}), nil
}

func (t *Standard) FeatureNamesOut(in []string) []string { return in }

// Attribute exposes "mean" and "scale".
func (t *Standard) Attribute(name string) (any, error) {
	var v []float64
	switch name {
	case "mean":
		v = t.mean
	case "scale":
		v = t.scale
	default:
		return nil, fmt.Errorf("%w: %s", framelearn.ErrNoAttribute, name)
	}
	if v == nil {
		return nil, framelearn.ErrNotFitted
	}
	return matutil.Clone(v), nil
}

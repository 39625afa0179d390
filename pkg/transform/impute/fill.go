// Package impute fills missing (NaN) values column by column.
package impute

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/transform/internal/matutil"
)

// filler holds one learned fill value per column.
type filler struct {
	stats []float64
}

func (f *filler) fit(X mat.Matrix, stat func([]float64) float64) {
	f.stats = matutil.PerColumn(X, stat)
}

func (f *filler) transform(X mat.Matrix) (mat.Matrix, error) {
	if f.stats == nil {
		return nil, framelearn.ErrNotFitted
	}
	if err := matutil.CheckWidth(X, len(f.stats)); err != nil {
		return nil, err
	}
	return matutil.Map(X, func(j int, v float64) float64 {
		if math.IsNaN(v) {
			return f.stats[j]
		}
		return v
	}), nil
}

// Attribute exposes "statistics", the per-column fill values.
func (f *filler) Attribute(name string) (any, error) {
	if name != "statistics" {
		return nil, fmt.Errorf("%w: %s", framelearn.ErrNoAttribute, name)
	}
	if f.stats == nil {
		return nil, framelearn.ErrNotFitted
	}
	return matutil.Clone(f.stats), nil
}

// FeatureNamesOut keeps the input names.
func (f *filler) FeatureNamesOut(in []string) []string { return in }

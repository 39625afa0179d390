// Package outliers clips extreme values.
package outliers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/transform/internal/matutil"
)

// Cap clips every cell into [Min, Max]. A nil bound is open. NaN cells are
// left alone.
type Cap struct {
	Min *float64
	Max *float64
}

func (t *Cap) Fit(X mat.Matrix) error { return nil }

func (t *Cap) Transform(X mat.Matrix) (mat.Matrix, error) {
	if t.Min != nil && t.Max != nil && *t.Min > *t.Max {
		return nil, fmt.Errorf("cap_range: min %v above max %v", *t.Min, *t.Max)
	}
	return matutil.Map(X, func(_ int, v float64) float64 {
		if math.IsNaN(v) {
			return v
		}
		if t.Min != nil && v < *t.Min {
			v = *t.Min
		}
		if t.Max != nil && v > *t.Max {
			v = *t.Max
		}
		return v
	}), nil
}

func (t *Cap) FeatureNamesOut(in []string) []string { return in }

// GetParams reports unset bounds as nil.
func (t *Cap) GetParams() map[string]any {
	return map[string]any{"min": bound(t.Min), "max": bound(t.Max)}
}

// SetParams accepts "min" and "max"; nil clears a bound.
func (t *Cap) SetParams(params map[string]any) error {
	for k, v := range params {
		var dst **float64
		switch k {
		case "min":
			dst = &t.Min
		case "max":
			dst = &t.Max
		default:
			return fmt.Errorf("cap_range: unknown param %q", k)
		}
		if v == nil {
			*dst = nil
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("cap_range: %s expects a number, got %T", k, v)
		}
		*dst = &f
	}
	return nil
}

func bound(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

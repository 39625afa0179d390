package impute

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/transform/internal/matutil"
)

// Constant fills NaN with Value. Fitting learns nothing.
type Constant struct {
	Value float64
}

func (t *Constant) Fit(X mat.Matrix) error { return nil }

func (t *Constant) Transform(X mat.Matrix) (mat.Matrix, error) {
	return matutil.Map(X, func(_ int, v float64) float64 {
		if math.IsNaN(v) {
			return t.Value
		}
		return v
	}), nil
}

func (t *Constant) FeatureNamesOut(in []string) []string { return in }

func (t *Constant) GetParams() map[string]any { return map[string]any{"value": t.Value} }

func (t *Constant) SetParams(params map[string]any) error {
	for k, v := range params {
		if k != "value" {
			return fmt.Errorf("impute_constant: unknown param %q", k)
		}
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("impute_constant: value expects a number, got %T", v)
		}
		t.Value = f
	}
	return nil
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

package framelearn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// MatrixStep exposes a Step through the matrix-level component protocol,
// so a whole chain can itself be wrapped by New. Matrices are labeled with
// placeholder column names "0".."p-1" and a positional row index before
// they reach the step.
type MatrixStep struct {
	step Step
}

// AsComponent wraps s. It panics on a nil step, like Pipe.
func AsComponent(s Step) *MatrixStep {
	if s == nil {
		panic("framelearn: AsComponent of nil step")
	}
	return &MatrixStep{step: s}
}

// Step returns the wrapped step.
func (m *MatrixStep) Step() Step { return m.step }

// Fit fits the step. A nil y is passed on as an absent target.
func (m *MatrixStep) Fit(X mat.Matrix, y []float64) error {
	x, ys, err := labelMatrix(X, y)
	if err != nil {
		return err
	}
	return m.step.Fit(x, ys)
}

func (m *MatrixStep) FitTransform(X mat.Matrix, y []float64) (mat.Matrix, error) {
	x, ys, err := labelMatrix(X, y)
	if err != nil {
		return nil, err
	}
	out, err := m.step.FitTransform(x, ys)
	if err != nil {
		return nil, err
	}
	return out.Dense()
}

func (m *MatrixStep) Transform(X mat.Matrix) (mat.Matrix, error) {
	x, _, err := labelMatrix(X, nil)
	if err != nil {
		return nil, err
	}
	out, err := m.step.Transform(x)
	if err != nil {
		return nil, err
	}
	return out.Dense()
}

// Predict fails with ErrNotPredictor unless the step is an Estimator.
func (m *MatrixStep) Predict(X mat.Matrix) ([]float64, error) {
	est, ok := m.step.(Estimator)
	if !ok {
		return nil, fmt.Errorf("%T: %w", m.step, ErrNotPredictor)
	}
	x, _, err := labelMatrix(X, nil)
	if err != nil {
		return nil, err
	}
	pred, err := est.Predict(x)
	if err != nil {
		return nil, err
	}
	return pred.Float64s()
}

func (m *MatrixStep) GetParams() map[string]any {
	pg, ok := m.step.(ParamGetter)
	if !ok {
		return map[string]any{}
	}
	return pg.GetParams()
}

func (m *MatrixStep) SetParams(params map[string]any) error { return setParams(m.step, params) }

// EstimatorKind is the wrapped step's kind.
func (m *MatrixStep) EstimatorKind() EstimatorKind { return KindOf(m.step) }

func labelMatrix(X mat.Matrix, y []float64) (*frame.Frame, *frame.Series, error) {
	x, err := frame.FromMatrix(X, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	if y == nil {
		return x, nil, nil
	}
	ys, err := frame.NewSeries("", y, x.Index())
	if err != nil {
		return nil, nil, err
	}
	return x, ys, nil
}

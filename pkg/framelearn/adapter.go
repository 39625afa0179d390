package framelearn

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/logger"
)

// DefaultPredictionName names predictions when the fit target was unnamed
// or absent.
const DefaultPredictionName = "prediction"

// Adapter wraps a matrix component so it consumes and produces frames.
type Adapter struct {
	component any

	// set by a successful fit
	columns    []string
	outputName string
	fitted     bool
}

// New wraps component. It must implement Fitter or UnsupervisedFitter and
// at least one of Transformer or Predictor.
func New(component any) (*Adapter, error) {
	if component == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedComponent)
	}
	_, sup := component.(Fitter)
	_, unsup := component.(UnsupervisedFitter)
	if !sup && !unsup {
		return nil, fmt.Errorf("%w: %T has no Fit method", ErrUnsupportedComponent, component)
	}
	_, tr := component.(Transformer)
	_, pr := component.(Predictor)
	if !tr && !pr {
		return nil, fmt.Errorf("%w: %T neither transforms nor predicts", ErrUnsupportedComponent, component)
	}
	return &Adapter{component: component}, nil
}

// MustNew is New that panics on an unsupported component.
func MustNew(component any) *Adapter {
	a, err := New(component)
	if err != nil {
		panic(err)
	}
	return a
}

// Component returns the wrapped component.
func (a *Adapter) Component() any { return a.component }

// IsFitted reports whether Fit or FitTransform has succeeded.
func (a *Adapter) IsFitted() bool { return a.fitted }

// Columns returns the column layout recorded at fit time.
func (a *Adapter) Columns() ([]string, error) {
	if !a.fitted {
		return nil, a.notFitted()
	}
	out := make([]string, len(a.columns))
	copy(out, a.columns)
	return out, nil
}

// OutputName is the name given to predictions: the fit target's name, or
// DefaultPredictionName.
func (a *Adapter) OutputName() (string, error) {
	if !a.fitted {
		return "", a.notFitted()
	}
	return a.outputName, nil
}

// EstimatorKind forwards the wrapped component's kind.
func (a *Adapter) EstimatorKind() EstimatorKind { return KindOf(a.component) }

// Fit records x's column layout and fits the component on x's values.
func (a *Adapter) Fit(x *frame.Frame, y *frame.Series) error {
	X, yv, err := prepareFit(x, y)
	if err != nil {
		return err
	}
	switch c := a.component.(type) {
	case Fitter:
		err = c.Fit(X, yv)
	case UnsupervisedFitter:
		err = c.Fit(X)
	}
	if err != nil {
		return fmt.Errorf("fit %T: %w", a.component, err)
	}
	a.record(x, y)
	return nil
}

// FitTransform fits on x and returns x transformed. A component with its
// own FitTransform is called directly; the output is labeled the same way
// as Transform would label it.
func (a *Adapter) FitTransform(x *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	ft, ok := a.component.(FitTransformer)
	if !ok {
		if _, ok := a.component.(Transformer); !ok {
			return nil, fmt.Errorf("%T: %w", a.component, ErrNotTransformer)
		}
		if err := a.Fit(x, y); err != nil {
			return nil, err
		}
		return a.Transform(x)
	}
	X, yv, err := prepareFit(x, y)
	if err != nil {
		return nil, err
	}
	out, err := ft.FitTransform(X, yv)
	if err != nil {
		return nil, fmt.Errorf("fit_transform %T: %w", a.component, err)
	}
	a.record(x, y)
	return a.relabel(out, x.Index())
}

// Transform realigns x to the fit-time layout and transforms it. The result
// is always a Frame over x's row index, even when the component returns a
// single column; call Squeeze on it to get the Series.
func (a *Adapter) Transform(x *frame.Frame) (*frame.Frame, error) {
	t, ok := a.component.(Transformer)
	if !ok {
		return nil, fmt.Errorf("%T: %w", a.component, ErrNotTransformer)
	}
	X, err := a.realign(x)
	if err != nil {
		return nil, err
	}
	out, err := t.Transform(X)
	if err != nil {
		return nil, fmt.Errorf("transform %T: %w", a.component, err)
	}
	return a.relabel(out, x.Index())
}

// Predict realigns x to the fit-time layout and returns predictions
// labeled by x's row index.
func (a *Adapter) Predict(x *frame.Frame) (*frame.Series, error) {
	p, ok := a.component.(Predictor)
	if !ok {
		return nil, fmt.Errorf("%T: %w", a.component, ErrNotPredictor)
	}
	X, err := a.realign(x)
	if err != nil {
		return nil, err
	}
	vals, err := p.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("predict %T: %w", a.component, err)
	}
	if len(vals) != x.Rows() {
		return nil, fmt.Errorf("predict %T: %w: %d predictions for %d rows", a.component, frame.ErrLengthMismatch, len(vals), x.Rows())
	}
	return frame.NewSeries(a.outputName, vals, x.Index())
}

// Attribute reads a learned attribute from the component. Reads before
// the component is fit match both ErrNoAttribute and ErrNotFitted.
func (a *Adapter) Attribute(name string) (any, error) {
	ag, ok := a.component.(AttributeGetter)
	if !ok {
		return nil, fmt.Errorf("%T: %w: %s", a.component, ErrNoAttribute, name)
	}
	v, err := ag.Attribute(name)
	if err != nil {
		return nil, fmt.Errorf("%T: %w: %s: %w", a.component, ErrNoAttribute, name, err)
	}
	return v, nil
}

// GetParams returns the component's configuration, or an empty map if it
// exposes none.
func (a *Adapter) GetParams() map[string]any {
	pg, ok := a.component.(ParamGetter)
	if !ok {
		return map[string]any{}
	}
	return pg.GetParams()
}

// SetParams forwards to the component, or fails with ErrNoParams.
func (a *Adapter) SetParams(params map[string]any) error {
	ps, ok := a.component.(ParamSetter)
	if !ok {
		return fmt.Errorf("%T: %w", a.component, ErrNoParams)
	}
	return ps.SetParams(params)
}

func (a *Adapter) Pipe(next Step, more ...Step) *Chain { return Pipe(a, next, more...) }
func (a *Adapter) Add(other Step, more ...Step) *Union { return Add(a, other, more...) }

func (a *Adapter) record(x *frame.Frame, y *frame.Series) {
	a.columns = x.Names()
	a.outputName = DefaultPredictionName
	if y != nil && y.Name() != "" {
		a.outputName = y.Name()
	}
	a.fitted = true
	logger.Get().Debug("fit",
		zap.String("component", fmt.Sprintf("%T", a.component)),
		zap.Strings("columns", a.columns),
		zap.Int("rows", x.Rows()),
	)
}

func (a *Adapter) realign(x *frame.Frame) (*mat.Dense, error) {
	if !a.fitted {
		return nil, a.notFitted()
	}
	sel, err := x.Select(a.columns...)
	if err != nil {
		return nil, fmt.Errorf("%T: %w", a.component, err)
	}
	if extra := x.Cols() - sel.Cols(); extra > 0 {
		logger.Get().Debug("dropping columns not seen at fit",
			zap.String("component", fmt.Sprintf("%T", a.component)),
			zap.Int("extra", extra),
		)
	}
	return sel.Dense()
}

func (a *Adapter) relabel(out mat.Matrix, idx frame.Index) (*frame.Frame, error) {
	r, c := out.Dims()
	if r != len(idx) {
		return nil, fmt.Errorf("%T: %w: %d output rows for %d input rows", a.component, frame.ErrLengthMismatch, r, len(idx))
	}
	var names []string
	if fn, ok := a.component.(FeatureNamer); ok {
		names = fn.FeatureNamesOut(a.columns)
		if len(names) != c {
			return nil, fmt.Errorf("%T: %w: %d output names for %d columns", a.component, frame.ErrLengthMismatch, len(names), c)
		}
	}
	return frame.FromMatrix(out, idx, names)
}

func (a *Adapter) notFitted() error {
	return fmt.Errorf("%T: %w", a.component, ErrNotFitted)
}

func prepareFit(x *frame.Frame, y *frame.Series) (*mat.Dense, []float64, error) {
	X, err := x.Dense()
	if err != nil {
		return nil, nil, err
	}
	if y == nil {
		return X, nil, nil
	}
	if y.Len() != x.Rows() {
		return nil, nil, fmt.Errorf("target %s: %w: %d values for %d rows", y.Name(), frame.ErrLengthMismatch, y.Len(), x.Rows())
	}
	yv, err := y.Float64s()
	if err != nil {
		return nil, nil, err
	}
	return X, yv, nil
}

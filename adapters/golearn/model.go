package golearn

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// classAttr names the target attribute of instances built from a matrix.
const classAttr = "target"

// Model is the fit/predict surface shared by golearn estimators.
type Model interface {
	Fit(base.FixedDataGrid) error
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)
}

// Component runs a golearn model on matrices so it can be wrapped by
// framelearn.New. Features are passed as float attributes named by
// position; predictions are read from the first class attribute.
type Component struct {
	model Model
	kind  framelearn.EstimatorKind
	width int
	// fit-time class labels, classifier mode only
	labels []string
}

// Option configures Wrap.
type Option func(*Component)

// Classifier passes the target to the model as a categorical class
// attribute whose values are the formatted target numbers, and reports
// the component as a classifier. Predicted categories are parsed back to
// numbers.
func Classifier() Option {
	return func(c *Component) { c.kind = framelearn.KindClassifier }
}

// Wrap returns a supervised framelearn component backed by m. Without
// options the target is a float class attribute and the component is a
// regressor.
func Wrap(m Model, opts ...Option) *Component {
	c := &Component{model: m, kind: framelearn.KindRegressor, width: -1}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Model returns the wrapped golearn model.
func (c *Component) Model() Model { return c.model }

func (c *Component) EstimatorKind() framelearn.EstimatorKind { return c.kind }

func (c *Component) Fit(X mat.Matrix, y []float64) error {
	if y == nil {
		return fmt.Errorf("golearn: %T needs a target", c.model)
	}
	var target frame.Column
	if c.kind == framelearn.KindClassifier {
		sc, labels, err := classLabels(y)
		if err != nil {
			return err
		}
		target, c.labels = sc, labels
	} else {
		target = frame.FloatColumnOf(classAttr, y)
	}
	inst, err := matrixInstances(X, target)
	if err != nil {
		return err
	}
	if err := c.model.Fit(inst); err != nil {
		return err
	}
	_, c.width = X.Dims()
	return nil
}

func (c *Component) Predict(X mat.Matrix) ([]float64, error) {
	if c.width < 0 {
		return nil, framelearn.ErrNotFitted
	}
	r, w := X.Dims()
	if w != c.width {
		return nil, fmt.Errorf("golearn: %d columns, fitted on %d", w, c.width)
	}
	// the class column of prediction instances is a placeholder
	var target frame.Column
	if c.kind == framelearn.KindClassifier {
		sc := frame.NewStringColumn(classAttr, r)
		for i := 0; i < r; i++ {
			sc.Set(i, c.labels[0])
		}
		target = sc
	} else {
		target = frame.FloatColumnOf(classAttr, make([]float64, r))
	}
	inst, err := matrixInstances(X, target)
	if err != nil {
		return nil, err
	}
	out, err := c.model.Predict(inst)
	if err != nil {
		return nil, err
	}
	return classValues(out)
}

// classLabels formats y as category labels and returns them with the
// distinct labels in first-seen order.
func classLabels(y []float64) (*frame.StringColumn, []string, error) {
	sc := frame.NewStringColumn(classAttr, len(y))
	seen := map[string]struct{}{}
	var labels []string
	for i, v := range y {
		if math.IsNaN(v) {
			return nil, nil, fmt.Errorf("golearn: missing class at row %d", i)
		}
		l := strconv.FormatFloat(v, 'g', -1, 64)
		sc.Set(i, l)
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return nil, nil, fmt.Errorf("golearn: empty target")
	}
	return sc, labels, nil
}

func matrixInstances(X mat.Matrix, target frame.Column) (*base.DenseInstances, error) {
	r, p := X.Dims()
	idx := frame.RangeIndex(r)
	cols := make([]frame.Column, 0, p+1)
	for j, name := range frame.PlaceholderNames(p) {
		vals := make([]float64, r)
		mat.Col(vals, j, X)
		cols = append(cols, frame.FloatColumnOf("x"+name, vals))
	}
	cols = append(cols, target)
	f, err := frame.FromColumns(idx, cols...)
	if err != nil {
		return nil, err
	}
	return ToDenseInstances(f, classAttr)
}

func classValues(grid base.FixedDataGrid) ([]float64, error) {
	classes := grid.AllClassAttributes()
	if len(classes) == 0 {
		return nil, fmt.Errorf("golearn: predictions carry no class attribute")
	}
	a := classes[0]
	spec, err := grid.GetAttribute(a)
	if err != nil {
		return nil, err
	}
	_, n := grid.Size()
	out := make([]float64, n)
	_, float := a.(*base.FloatAttribute)
	for i := range out {
		raw := grid.Get(spec, i)
		if float {
			out[i] = base.UnpackBytesToFloat(raw)
			continue
		}
		v, err := strconv.ParseFloat(a.GetStringFromSysVal(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("golearn: class %s row %d: %w", a.GetName(), i, err)
		}
		out[i] = v
	}
	return out, nil
}

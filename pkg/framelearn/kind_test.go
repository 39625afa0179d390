package framelearn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/model/linear"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
)

// majority predicts the most frequent class seen at fit.
type majority struct{ class float64 }

func (m *majority) Fit(X mat.Matrix, y []float64) error {
	counts := map[float64]int{}
	for _, v := range y {
		counts[v]++
		if counts[v] > counts[m.class] {
			m.class = v
		}
	}
	return nil
}

func (m *majority) Predict(X mat.Matrix) ([]float64, error) {
	r, _ := X.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = m.class
	}
	return out, nil
}

func (m *majority) EstimatorKind() framelearn.EstimatorKind { return framelearn.KindClassifier }

// guess predicts zero and declares no kind.
type guess struct{}

func (guess) Fit(X mat.Matrix, y []float64) error { return nil }

func (guess) Predict(X mat.Matrix) ([]float64, error) {
	r, _ := X.Dims()
	return make([]float64, r), nil
}

func TestAdapterKeepsKind(t *testing.T) {
	reg := framelearn.MustNew(linear.NewRegression())
	clf := framelearn.MustNew(&majority{})

	assert.True(t, framelearn.IsRegressor(reg))
	assert.False(t, framelearn.IsClassifier(reg))
	assert.True(t, framelearn.IsClassifier(clf))
	assert.False(t, framelearn.IsRegressor(clf))

	assert.Equal(t, framelearn.KindTransformer, framelearn.KindOf(framelearn.MustNew(&scale.Standard{})))
	assert.Equal(t, framelearn.KindUnknown, framelearn.KindOf(framelearn.MustNew(guess{})))
	assert.Equal(t, framelearn.KindTransformer, framelearn.KindOf(&framelearn.Trans{}))
	assert.Equal(t, "classifier", clf.EstimatorKind().String())
}

func TestComposedKind(t *testing.T) {
	ch := framelearn.MustNew(&scale.Standard{}).Pipe(framelearn.MustNew(&majority{}))
	assert.True(t, framelearn.IsClassifier(ch))

	u := framelearn.Add(&framelearn.Trans{}, framelearn.MustNew(linear.NewRegression()))
	assert.Equal(t, framelearn.KindTransformer, framelearn.KindOf(u))

	wrapped := framelearn.MustNew(framelearn.AsComponent(framelearn.Pipe(&framelearn.Trans{}, framelearn.MustNew(linear.NewRegression()))))
	assert.True(t, framelearn.IsRegressor(wrapped))
}

func TestClassifierPredicts(t *testing.T) {
	x, _ := makeData(t, 9, 2, 60)
	labels, err := framelearn.Elementwise(func(v float64) float64 {
		if v > 3 {
			return 1
		}
		return 0
	})(mustColumn(t, x, "c0"))
	require.NoError(t, err)

	clf := framelearn.MustNew(&majority{})
	require.NoError(t, clf.Fit(x, labels.Rename("label")))
	pred, err := clf.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, "label", pred.Name())
	assert.Equal(t, x.Index(), pred.Index())
}

func TestWrapWholeChain(t *testing.T) {
	x, y := makeData(t, 30, 3, 61)
	inner := framelearn.Pipe(framelearn.MustNew(&scale.Standard{}), framelearn.MustNew(linear.NewRegression()))
	a := framelearn.MustNew(framelearn.AsComponent(inner))
	require.NoError(t, a.Fit(x, y))

	pred, err := a.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, x.Index(), pred.Index())
	assert.Equal(t, "y", pred.Name())
	assert.InDeltaSlice(t, seriesValues(t, y), seriesValues(t, pred), 1e-6)

	// the outer adapter still realigns by name
	permuted, err := x.Select(reversed(x.Names())...)
	require.NoError(t, err)
	again, err := a.Predict(permuted)
	require.NoError(t, err)
	assert.InDeltaSlice(t, seriesValues(t, pred), seriesValues(t, again), 1e-9)

	assert.Equal(t, map[string]any{"1__fit_intercept": true, "1__alpha": 0.0}, a.GetParams())
}

func TestWrapChainOfAdapters(t *testing.T) {
	x, y := makeData(t, 20, 2, 62)
	inner, err := framelearn.NewChain(framelearn.MustNew(linear.NewRegression()))
	require.NoError(t, err)
	a := framelearn.MustNew(framelearn.AsComponent(inner))
	require.NoError(t, a.Fit(x, y))
	pred, err := a.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, x.Rows(), pred.Len())
}

func TestWrappedTransformerChain(t *testing.T) {
	x, y := makeData(t, 10, 2, 63)
	a := framelearn.MustNew(framelearn.AsComponent(framelearn.Pipe(
		framelearn.MustNew(&scale.MinMax{}),
		&framelearn.Trans{Columns: []string{"1"}},
	)))
	out, err := a.FitTransform(x, y)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, out.Names())
	assert.Equal(t, x.Index(), out.Index())

	_, err = a.Predict(x)
	assert.ErrorIs(t, err, framelearn.ErrNotPredictor)
	assert.Panics(t, func() { framelearn.AsComponent(nil) })
}

package framelearn_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/model/linear"
	"github.com/wdm0006/framelearn/pkg/transform/impute"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
)

func TestPredictKeepsIndex(t *testing.T) {
	x, y := makeData(t, 50, 3, 1)
	a := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, a.Fit(x, y))

	pred, err := a.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, x.Index(), pred.Index())
	assert.Equal(t, x.Rows(), pred.Len())
	assert.Equal(t, "y", pred.Name())
	assert.InDeltaSlice(t, seriesValues(t, y), seriesValues(t, pred), 1e-6)
}

func TestPredictPermutedColumns(t *testing.T) {
	x, y := makeData(t, 40, 4, 2)
	a := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, a.Fit(x, y))

	permuted, err := x.Select(reversed(x.Names())...)
	require.NoError(t, err)
	want, err := a.Predict(x)
	require.NoError(t, err)
	got, err := a.Predict(permuted)
	require.NoError(t, err)
	assert.InDeltaSlice(t, seriesValues(t, want), seriesValues(t, got), 1e-12)
}

func TestPredictDropsExtraColumns(t *testing.T) {
	x, y := makeData(t, 30, 3, 3)
	fitOn, err := x.Select("c0", "c1")
	require.NoError(t, err)
	a := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, a.Fit(fitOn, y))

	pred, err := a.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 30, pred.Len())
	cols, err := a.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1"}, cols)
}

func TestPredictRenamedColumn(t *testing.T) {
	x, y := makeData(t, 30, 3, 4)
	a := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, a.Fit(x, y))

	renamed, err := x.Rename("c1", "c1_new")
	require.NoError(t, err)
	_, err = a.Predict(renamed)
	require.ErrorIs(t, err, frame.ErrMissingColumn)
	var missing *frame.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"c1"}, missing.Names)
}

func TestAttributeBeforeAndAfterFit(t *testing.T) {
	x, y := makeData(t, 30, 3, 5)
	a := framelearn.MustNew(linear.NewRegression())

	_, err := a.Attribute("coef")
	assert.ErrorIs(t, err, framelearn.ErrNotFitted)
	assert.ErrorIs(t, err, framelearn.ErrNoAttribute)

	require.NoError(t, a.Fit(x, y))
	coef, err := a.Attribute("coef")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, coef, 1e-6)

	_, err = a.Attribute("weights")
	assert.ErrorIs(t, err, framelearn.ErrNoAttribute)
	assert.NotErrorIs(t, err, framelearn.ErrNotFitted)

	_, err = framelearn.MustNew(&pair{}).Attribute("anything")
	assert.ErrorIs(t, err, framelearn.ErrNoAttribute)
}

func TestTransformBeforeFit(t *testing.T) {
	x, _ := makeData(t, 10, 2, 6)
	a := framelearn.MustNew(&scale.Standard{})
	_, err := a.Transform(x)
	assert.ErrorIs(t, err, framelearn.ErrNotFitted)
	_, err = a.Columns()
	assert.ErrorIs(t, err, framelearn.ErrNotFitted)
	_, err = a.OutputName()
	assert.ErrorIs(t, err, framelearn.ErrNotFitted)
	assert.False(t, a.IsFitted())
}

func TestNewRejectsIncapableComponents(t *testing.T) {
	_, err := framelearn.New(nil)
	assert.ErrorIs(t, err, framelearn.ErrUnsupportedComponent)
	_, err = framelearn.New(struct{}{})
	assert.ErrorIs(t, err, framelearn.ErrUnsupportedComponent)
	assert.Panics(t, func() { framelearn.MustNew(42) })
}

func TestWrongCapability(t *testing.T) {
	x, y := makeData(t, 10, 2, 7)
	s := framelearn.MustNew(&scale.Standard{})
	require.NoError(t, s.Fit(x, y))
	_, err := s.Predict(x)
	assert.ErrorIs(t, err, framelearn.ErrNotPredictor)

	r := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, r.Fit(x, y))
	_, err = r.Transform(x)
	assert.ErrorIs(t, err, framelearn.ErrNotTransformer)
	_, err = r.FitTransform(x, y)
	assert.ErrorIs(t, err, framelearn.ErrNotTransformer)
}

func TestFitTransformMatchesFitThenTransform(t *testing.T) {
	x, y := makeData(t, 60, 4, 8)
	for name, mk := range map[string]func() any{
		"native":   func() any { return &scale.MinMax{} },
		"fallback": func() any { return &scale.Standard{} },
	} {
		t.Run(name, func(t *testing.T) {
			once, err := framelearn.MustNew(mk()).FitTransform(x, y)
			require.NoError(t, err)

			a := framelearn.MustNew(mk())
			require.NoError(t, a.Fit(x, y))
			twice, err := a.Transform(x)
			require.NoError(t, err)

			requireSameFrame(t, once, twice)
			assert.Equal(t, x.Names(), once.Names())
		})
	}
}

func TestOutputNames(t *testing.T) {
	x, _ := makeData(t, 12, 3, 9)
	a := framelearn.MustNew(&pair{})
	out, err := a.FitTransform(x, nil)
	require.NoError(t, err)
	assert.Equal(t, frame.PlaceholderNames(2), out.Names())
	assert.Equal(t, x.Index(), out.Index())

	one, err := framelearn.MustNew(sum{}).FitTransform(x, nil)
	require.NoError(t, err)
	s, err := one.Squeeze()
	require.NoError(t, err)
	assert.Equal(t, x.Index(), s.Index())
	assert.Equal(t, 12, s.Len())
}

func TestTargetLength(t *testing.T) {
	x, _ := makeData(t, 10, 2, 10)
	short, err := frame.NewSeries("y", []float64{1, 2}, nil)
	require.NoError(t, err)
	err = framelearn.MustNew(linear.NewRegression()).Fit(x, short)
	assert.ErrorIs(t, err, frame.ErrLengthMismatch)
}

func TestDefaultPredictionName(t *testing.T) {
	x, y := makeData(t, 20, 2, 11)
	unnamed := y.Rename("")
	a := framelearn.MustNew(linear.NewRegression())
	require.NoError(t, a.Fit(x, unnamed))
	pred, err := a.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, framelearn.DefaultPredictionName, pred.Name())
	name, err := a.OutputName()
	require.NoError(t, err)
	assert.Equal(t, framelearn.DefaultPredictionName, name)
}

func TestParamsForwarded(t *testing.T) {
	r := linear.NewRegression()
	a := framelearn.MustNew(r)
	assert.Equal(t, map[string]any{"fit_intercept": true, "alpha": 0.0}, a.GetParams())

	require.NoError(t, a.SetParams(map[string]any{"alpha": 0.5}))
	assert.Equal(t, 0.5, r.Alpha)
	assert.Error(t, a.SetParams(map[string]any{"depth": 3}))

	p := framelearn.MustNew(&pair{})
	assert.Empty(t, p.GetParams())
	assert.ErrorIs(t, p.SetParams(map[string]any{"k": 1}), framelearn.ErrNoParams)
}

func TestNonNumericInput(t *testing.T) {
	f, err := frame.FromColumns(nil, frame.StringColumnOf("s", []string{"a", "b"}))
	require.NoError(t, err)
	err = framelearn.MustNew(&impute.Mean{}).Fit(f, nil)
	assert.ErrorIs(t, err, frame.ErrNotNumeric)
}

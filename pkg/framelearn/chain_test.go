package framelearn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/model/linear"
	"github.com/wdm0006/framelearn/pkg/transform/impute"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
)

// stages returns fresh scaler, column transform and regressor steps.
func stages() (framelearn.Step, framelearn.Step, framelearn.Step) {
	return framelearn.MustNew(&scale.Standard{}),
		&framelearn.Trans{Columns: []string{"c0", "c2", "c4"}},
		framelearn.MustNew(&linear.Regression{FitIntercept: true, Alpha: 0.1})
}

func TestChainAssociativity(t *testing.T) {
	x, y := makeData(t, 80, 6, 40)

	a, b, c := stages()
	flat := framelearn.Pipe(a, b, c)
	a, b, c = stages()
	right := framelearn.Pipe(a, framelearn.Pipe(b, c))
	a, b, c = stages()
	left := framelearn.Pipe(framelearn.Pipe(a, b), c)
	a, b, c = stages()
	nested, err := framelearn.NewChain(a, framelearn.Pipe(b, c))
	require.NoError(t, err)

	assert.Equal(t, 3, flat.Len())
	assert.Equal(t, 3, right.Len())
	assert.Equal(t, 3, left.Len())
	assert.Equal(t, 2, nested.Len())

	var preds [][]float64
	for _, ch := range []*framelearn.Chain{flat, right, left, nested} {
		require.NoError(t, ch.Fit(x, y))
		p, err := ch.Predict(x)
		require.NoError(t, err)
		assert.Equal(t, x.Index(), p.Index())
		preds = append(preds, seriesValues(t, p))
	}
	for _, p := range preds[1:] {
		assert.InDeltaSlice(t, preds[0], p, 1e-9)
	}
}

func TestChainThreeStagePredict(t *testing.T) {
	x, y := makeData(t, 120, 6, 41)
	a, b, c := stages()
	ch := a.(*framelearn.Adapter).Pipe(b).Pipe(c)
	require.NoError(t, ch.Fit(x, y))
	pred, err := ch.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, x.Rows(), pred.Len())
	assert.Equal(t, "y", pred.Name())
}

func TestChainFitTransformMatchesTransform(t *testing.T) {
	x, y := makeData(t, 50, 4, 42)
	ch := framelearn.Pipe(
		framelearn.MustNew(&impute.Mean{}),
		framelearn.MustNew(&scale.MinMax{}),
		&framelearn.Trans{Columns: []string{"c1", "c3"}},
	)
	once, err := ch.FitTransform(x, y)
	require.NoError(t, err)
	twice, err := ch.Transform(x)
	require.NoError(t, err)
	requireSameFrame(t, once, twice)
	assert.Equal(t, []string{"c1", "c3"}, once.Names())
}

func TestChainNotPredictor(t *testing.T) {
	x, y := makeData(t, 10, 2, 43)
	ch := framelearn.Pipe(&framelearn.Trans{}, &framelearn.Trans{Columns: []string{"c0"}})
	require.NoError(t, ch.Fit(x, y))
	_, err := ch.Predict(x)
	assert.ErrorIs(t, err, framelearn.ErrNotPredictor)
}

func TestChainStageErrors(t *testing.T) {
	x, y := makeData(t, 10, 2, 44)
	ch := framelearn.Pipe(&framelearn.Trans{Columns: []string{"zz"}}, framelearn.MustNew(linear.NewRegression()))
	err := ch.Fit(x, y)
	require.ErrorIs(t, err, frame.ErrMissingColumn)
	assert.Contains(t, err.Error(), "chain step 0")

	fresh := framelearn.Pipe(framelearn.MustNew(&scale.Standard{}), framelearn.MustNew(linear.NewRegression()))
	_, err = fresh.Predict(x)
	assert.ErrorIs(t, err, framelearn.ErrNotFitted)

	_, err = framelearn.NewChain()
	assert.Error(t, err)
	assert.Panics(t, func() { framelearn.Pipe(&framelearn.Trans{}, nil) })
}

func TestChainRefitOverwrites(t *testing.T) {
	x, y := makeData(t, 40, 2, 45)
	reg := framelearn.MustNew(linear.NewRegression())
	ch := framelearn.Pipe(&framelearn.Trans{}, reg)
	require.NoError(t, ch.Fit(x, y))
	first, err := reg.Attribute("coef")
	require.NoError(t, err)

	doubled, err := framelearn.Elementwise(func(v float64) float64 { return 2 * v })(y)
	require.NoError(t, err)
	require.NoError(t, ch.Fit(x, doubled))
	second, err := reg.Attribute("coef")
	require.NoError(t, err)
	for i, v := range first.([]float64) {
		assert.InDelta(t, 2*v, second.([]float64)[i], 1e-6)
	}
}

func TestChainParams(t *testing.T) {
	reg := &linear.Regression{}
	ch := framelearn.Pipe(framelearn.MustNew(&scale.Standard{}), framelearn.MustNew(reg))
	assert.Equal(t, map[string]any{"1__fit_intercept": false, "1__alpha": 0.0}, ch.GetParams())

	require.NoError(t, ch.SetParams(map[string]any{"1__fit_intercept": true}))
	assert.True(t, reg.FitIntercept)
	assert.ErrorIs(t, ch.SetParams(map[string]any{"5__alpha": 1.0}), framelearn.ErrUnknownParam)
	assert.ErrorIs(t, ch.SetParams(map[string]any{"0__alpha": 1.0}), framelearn.ErrNoParams)

	// nothing is applied when any key fails to resolve
	assert.Error(t, ch.SetParams(map[string]any{"1__alpha": 4.0, "9__alpha": 1.0}))
	assert.Error(t, ch.SetParams(map[string]any{"1__alpha": 4.0, "0__alpha": 1.0}))
	assert.Equal(t, 0.0, reg.Alpha)
}

func TestZeroValueChain(t *testing.T) {
	x, y := makeData(t, 5, 2, 47)
	var ch framelearn.Chain
	assert.ErrorIs(t, ch.Fit(x, y), framelearn.ErrEmptyChain)
	_, err := ch.Predict(x)
	assert.ErrorIs(t, err, framelearn.ErrEmptyChain)
	_, err = ch.Transform(x)
	assert.ErrorIs(t, err, framelearn.ErrEmptyChain)
	_, err = ch.FitTransform(x, y)
	assert.ErrorIs(t, err, framelearn.ErrEmptyChain)
	assert.Equal(t, framelearn.KindUnknown, ch.EstimatorKind())
}

func TestPipeAddTrans(t *testing.T) {
	x, y := makeData(t, 100, 3, 46)
	model := framelearn.Pipe(
		framelearn.MustNew(&scale.MinMax{}),
		framelearn.Add(&framelearn.Trans{}, &framelearn.Trans{
			Columns: []string{"c0"},
			Outputs: []framelearn.Output{{Name: "sqrt_c0", Fn: framelearn.Elementwise(math.Sqrt)}},
		}),
		framelearn.MustNew(linear.NewRegression()),
	)
	require.NoError(t, model.Fit(x, y))
	pred, err := model.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, x.Index(), pred.Index())

	features, err := framelearn.Pipe(model.Steps()[0], model.Steps()[1]).Transform(x)
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1", "c2", "sqrt_c0"}, features.Names())

	coef, err := model.Steps()[2].(*framelearn.Adapter).Attribute("coef")
	require.NoError(t, err)
	assert.Len(t, coef, 4)
}

// Min-max scaling a=[1,2,3], b=[2,3,4] gives identical columns, so the
// regressor sees rank-deficient features.
func TestPipeAddTransCollinear(t *testing.T) {
	x, err := frame.FromColumns(nil,
		frame.IntColumnOf("a", []int64{1, 2, 3}),
		frame.IntColumnOf("b", []int64{2, 3, 4}),
	)
	require.NoError(t, err)
	y, err := frame.NewSeries("", []float64{1, 2, 3}, nil)
	require.NoError(t, err)

	model := framelearn.MustNew(&scale.MinMax{}).
		Pipe(framelearn.Add(&framelearn.Trans{}, &framelearn.Trans{
			Columns: []string{"a"},
			Outputs: []framelearn.Output{
				{Name: "sqrt_a", Fn: framelearn.Elementwise(math.Sqrt)},
				{Name: "sqr_a", Fn: framelearn.Elementwise(func(v float64) float64 { return v * v })},
			},
		})).
		Pipe(framelearn.MustNew(linear.NewRegression()))

	require.NoError(t, model.Fit(x, y))
	pred, err := model.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, framelearn.DefaultPredictionName, pred.Name())
	assert.Equal(t, x.Index(), pred.Index())
	assert.InDeltaSlice(t, []float64{1, 2, 3}, seriesValues(t, pred), 1e-9)
}

// Package framelearn lets fit/transform/predict components that work on
// anonymous matrices operate on labeled frames.
//
// An Adapter remembers the column layout seen at fit time, realigns later
// inputs to it by name, and restores row labels and column names on the
// component's outputs. Trans selects and maps columns directly on frames.
// Steps compose sequentially with Pipe into a Chain and side by side with
// Add into a Union:
//
//	model := framelearn.Pipe(
//		framelearn.MustNew(&scale.MinMax{}),
//		framelearn.Add(&framelearn.Trans{}, &framelearn.Trans{
//			Columns: []string{"a"},
//			Outputs: []framelearn.Output{{Name: "sqrt_a", Fn: framelearn.Elementwise(math.Sqrt)}},
//		}),
//		framelearn.MustNew(&linear.Regression{FitIntercept: true}),
//	)
//	if err := model.Fit(x, y); err != nil { ... }
//	yHat, err := model.Predict(x)
//
// Nothing in this package is safe for concurrent use.
package framelearn

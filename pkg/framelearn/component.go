package framelearn

import "gonum.org/v1/gonum/mat"

// The interfaces below describe what a wrapped component may implement.
// A component implements exactly one of Fitter or UnsupervisedFitter and
// at least one of Transformer or Predictor; New checks this.

// Fitter is a component that learns from features and a target.
type Fitter interface {
	Fit(X mat.Matrix, y []float64) error
}

// UnsupervisedFitter is a component that learns from features alone.
type UnsupervisedFitter interface {
	Fit(X mat.Matrix) error
}

// Transformer maps features to new features.
type Transformer interface {
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// Predictor maps features to one value per row.
type Predictor interface {
	Predict(X mat.Matrix) ([]float64, error)
}

// FitTransformer fits and transforms in one call. Its result must equal
// Fit followed by Transform on the same input; Adapter relies on this.
type FitTransformer interface {
	FitTransform(X mat.Matrix, y []float64) (mat.Matrix, error)
}

// FeatureNamer names a transformer's output columns given the fit-time
// input names.
type FeatureNamer interface {
	FeatureNamesOut(in []string) []string
}

// ParamGetter exposes a component's configuration.
type ParamGetter interface {
	GetParams() map[string]any
}

// ParamSetter changes a component's configuration.
type ParamSetter interface {
	SetParams(params map[string]any) error
}

// AttributeGetter exposes learned attributes by name. Implementations
// return an error matching ErrNotFitted before fit and ErrNoAttribute for
// names they do not know.
type AttributeGetter interface {
	Attribute(name string) (any, error)
}

// EstimatorKind says what a step's predictions mean.
type EstimatorKind int

const (
	KindUnknown EstimatorKind = iota
	KindTransformer
	KindRegressor
	KindClassifier
)

func (k EstimatorKind) String() string {
	switch k {
	case KindTransformer:
		return "transformer"
	case KindRegressor:
		return "regressor"
	case KindClassifier:
		return "classifier"
	default:
		return "unknown"
	}
}

// KindReporter is implemented by components and steps that declare their
// kind. Adapter, Chain and Union forward or derive it.
type KindReporter interface {
	EstimatorKind() EstimatorKind
}

// KindOf returns v's declared kind. Values that declare none are
// KindTransformer when they cannot predict and KindUnknown otherwise.
func KindOf(v any) EstimatorKind {
	if kr, ok := v.(KindReporter); ok {
		return kr.EstimatorKind()
	}
	switch v.(type) {
	case Predictor, Estimator:
		return KindUnknown
	case Transformer, Step:
		return KindTransformer
	default:
		return KindUnknown
	}
}

func IsRegressor(v any) bool  { return KindOf(v) == KindRegressor }
func IsClassifier(v any) bool { return KindOf(v) == KindClassifier }

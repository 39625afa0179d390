package main

import (
	"fmt"
	"strconv"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/model/linear"
	"github.com/wdm0006/framelearn/pkg/transform/impute"
	"github.com/wdm0006/framelearn/pkg/transform/outliers"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
	"github.com/wdm0006/framelearn/pkg/transform/standardize"
	"github.com/wdm0006/framelearn/pkg/transform/validate"
)

// buildChain turns the configured steps into a chain.
func buildChain(steps []StepConfig) (*framelearn.Chain, error) {
	built := make([]framelearn.Step, len(steps))
	for i, sc := range steps {
		s, err := buildStep(sc)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		built[i] = s
	}
	return framelearn.NewChain(built...)
}

func buildStep(sc StepConfig) (framelearn.Step, error) {
	var component any
	switch sc.Type {
	case "select":
		if len(sc.Columns) == 0 {
			return nil, fmt.Errorf("select: no columns")
		}
		return &framelearn.Trans{Columns: sc.Columns}, nil
	case "union":
		if len(sc.Steps) == 0 {
			return nil, framelearn.ErrEmptyUnion
		}
		members := make([]framelearn.Member, len(sc.Steps))
		for i, m := range sc.Steps {
			s, err := buildStep(m)
			if err != nil {
				return nil, fmt.Errorf("union member %d: %w", i, err)
			}
			name := m.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			members[i] = framelearn.Member{Name: name, Step: s}
		}
		return framelearn.NewUnion(members...)
	case "trim", "lower", "regex_replace", "map_values", "validate_in":
		return stringStep(sc)
	case "standard_scaler":
		component = &scale.Standard{}
	case "minmax_scaler":
		component = &scale.MinMax{}
	case "impute_mean":
		component = &impute.Mean{}
	case "impute_median":
		component = &impute.Median{}
	case "impute_mode":
		component = &impute.Mode{}
	case "impute_constant":
		c := &impute.Constant{}
		if sc.Value != nil {
			c.Value = *sc.Value
		}
		component = c
	case "cap_range":
		component = &outliers.Cap{Min: sc.Min, Max: sc.Max}
	case "validate_range":
		component = &validate.Range{Min: sc.Min, Max: sc.Max}
	case "linear_regression":
		r := linear.NewRegression()
		if sc.FitIntercept != nil {
			r.FitIntercept = *sc.FitIntercept
		}
		r.Alpha = sc.Alpha
		component = r
	default:
		return nil, fmt.Errorf("unknown step type %q", sc.Type)
	}
	a, err := framelearn.New(component)
	if err != nil {
		return nil, err
	}
	if len(sc.Columns) == 0 {
		return a, nil
	}
	// columns on a component step restrict its input
	return framelearn.Pipe(&framelearn.Trans{Columns: sc.Columns}, a), nil
}

// stringStep builds a step that rewrites or checks the named string
// columns in place and keeps the rest of the frame.
func stringStep(sc StepConfig) (framelearn.Step, error) {
	if len(sc.Columns) == 0 {
		return nil, fmt.Errorf("%s: no columns", sc.Type)
	}
	var fn framelearn.SeriesFunc
	switch sc.Type {
	case "trim":
		fn = standardize.Trim()
	case "lower":
		fn = standardize.Lower()
	case "regex_replace":
		if sc.Pattern == "" {
			return nil, fmt.Errorf("regex_replace: no pattern")
		}
		var err error
		if fn, err = standardize.RegexReplace(sc.Pattern, sc.Replace); err != nil {
			return nil, err
		}
	case "map_values":
		fn = standardize.MapValues(sc.Map)
	case "validate_in":
		fn = validate.InSet(sc.Values...)
	}
	return &framelearn.Trans{Func: framelearn.MapColumns(fn, sc.Columns...)}, nil
}

// predicts reports whether a step type ends a chain with predictions
// rather than a transformed frame.
func predicts(sc StepConfig) bool { return sc.Type == "linear_regression" }

package framelearn

import (
	"fmt"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// DefaultTransName names the column produced by an unnamed Func result.
const DefaultTransName = "trans"

// Func maps the selected columns to a frame or a series.
type Func func(x *frame.Frame) (frame.Labeled, error)

// SeriesFunc maps one column to another of the same length.
type SeriesFunc func(s *frame.Series) (*frame.Series, error)

// Output is one entry of an ordered output-name to function mapping.
type Output struct {
	Name string
	Fn   SeriesFunc
}

// Trans selects columns and optionally maps them, keeping the input's row
// index. It has no fitted state.
//
// With neither Func nor Outputs set, Transform returns the selection
// unchanged. Func and Outputs are mutually exclusive; Outputs requires the
// selection to be a single column.
type Trans struct {
	// Columns restricts the input. Empty means all columns.
	Columns []string
	Func    Func
	Outputs []Output
	// Name labels a Func result that is an unnamed series. Defaults to
	// DefaultTransName.
	Name string
}

// Fit is a no-op.
func (t *Trans) Fit(x *frame.Frame, y *frame.Series) error { return nil }

func (t *Trans) FitTransform(x *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	return t.Transform(x)
}

func (t *Trans) Transform(x *frame.Frame) (*frame.Frame, error) {
	if t.Func != nil && len(t.Outputs) > 0 {
		return nil, fmt.Errorf("%w: both Func and Outputs set", ErrInvalidTrans)
	}
	sel := x
	if len(t.Columns) > 0 {
		var err error
		if sel, err = x.Select(t.Columns...); err != nil {
			return nil, fmt.Errorf("trans: %w", err)
		}
	}
	switch {
	case t.Func != nil:
		return t.applyFunc(sel)
	case len(t.Outputs) > 0:
		return t.applyOutputs(sel)
	default:
		return sel, nil
	}
}

func (t *Trans) Pipe(next Step, more ...Step) *Chain { return Pipe(t, next, more...) }
func (t *Trans) Add(other Step, more ...Step) *Union { return Add(t, other, more...) }

func (t *Trans) applyFunc(sel *frame.Frame) (*frame.Frame, error) {
	res, err := t.Func(sel)
	if err != nil {
		return nil, fmt.Errorf("trans: %w", err)
	}
	switch r := res.(type) {
	case nil:
		return nil, fmt.Errorf("%w: Func returned nil", ErrInvalidTrans)
	case *frame.Frame:
		return r, nil
	case *frame.Series:
		name := r.Name()
		if name == "" {
			name = t.Name
		}
		if name == "" {
			name = DefaultTransName
		}
		s, err := frame.SeriesOf(r.Rename(name).Column(), sel.Index())
		if err != nil {
			return nil, fmt.Errorf("trans: %w", err)
		}
		return s.ToFrame(), nil
	default:
		return r.ToFrame(), nil
	}
}

func (t *Trans) applyOutputs(sel *frame.Frame) (*frame.Frame, error) {
	in, err := sel.Squeeze()
	if err != nil {
		return nil, fmt.Errorf("%w: outputs need exactly one input column: %v", ErrInvalidTrans, err)
	}
	cols := make([]frame.Column, 0, len(t.Outputs))
	for _, o := range t.Outputs {
		res, err := o.Fn(in)
		if err != nil {
			return nil, fmt.Errorf("trans output %s: %w", o.Name, err)
		}
		if res.Len() != sel.Rows() {
			return nil, fmt.Errorf("trans output %s: %w: %d values for %d rows", o.Name, frame.ErrLengthMismatch, res.Len(), sel.Rows())
		}
		cols = append(cols, res.Rename(o.Name).Column())
	}
	return frame.FromColumns(sel.Index(), cols...)
}

// Elementwise lifts a scalar function to a SeriesFunc over numeric
// series. Nulls are passed in as NaN.
func Elementwise(fn func(float64) float64) SeriesFunc {
	return func(s *frame.Series) (*frame.Series, error) {
		vals, err := s.Float64s()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			vals[i] = fn(v)
		}
		return frame.NewSeries(s.Name(), vals, s.Index())
	}
}

// MapColumns returns a Func that replaces each named column with fn of it
// and keeps the other columns where they are. No names maps every column.
func MapColumns(fn SeriesFunc, names ...string) Func {
	return func(x *frame.Frame) (frame.Labeled, error) {
		target := make(map[string]bool, len(names))
		if len(names) > 0 {
			if _, err := x.Select(names...); err != nil {
				return nil, err
			}
			for _, n := range names {
				target[n] = true
			}
		}
		cols := make([]frame.Column, x.Cols())
		for j := range cols {
			col := x.Column(j)
			if len(names) == 0 || target[col.Name()] {
				s, err := frame.SeriesOf(col, x.Index())
				if err != nil {
					return nil, err
				}
				res, err := fn(s)
				if err != nil {
					return nil, fmt.Errorf("column %s: %w", col.Name(), err)
				}
				if res.Len() != x.Rows() {
					return nil, fmt.Errorf("column %s: %w: %d values for %d rows", col.Name(), frame.ErrLengthMismatch, res.Len(), x.Rows())
				}
				col = res.Rename(col.Name()).Column()
			}
			cols[j] = col
		}
		out, err := frame.FromColumns(x.Index(), cols...)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

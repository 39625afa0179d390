// Package golearn bridges frames and github.com/sjwhitworth/golearn/base
// instances, and wraps golearn models as framelearn components.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// ToDenseInstances converts f into golearn DenseInstances. Numeric columns
// become float attributes with nulls stored as NaN; string columns become
// categorical. A non-empty class names the column marked as the class
// attribute.
func ToDenseInstances(f *frame.Frame, class string) (*base.DenseInstances, error) {
	cols := f.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	classAt := -1
	for i, cs := range cols {
		switch {
		case cs.Type.Numeric():
			attrs[i] = base.NewFloatAttribute(cs.Name)
		case cs.Type == frame.KindString:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		default:
			return nil, fmt.Errorf("golearn: column %s: unsupported kind %s", cs.Name, cs.Type)
		}
		if cs.Name == class {
			classAt = i
		}
	}
	if class != "" && classAt < 0 {
		return nil, &frame.MissingColumnsError{Names: []string{class}}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if classAt >= 0 {
		if err := inst.AddClassAttribute(attrs[classAt]); err != nil {
			return nil, err
		}
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for c, cs := range cols {
		col := f.Column(c)
		if cs.Type.Numeric() {
			s, err := frame.SeriesOf(col, f.Index())
			if err != nil {
				return nil, err
			}
			vals, err := s.Float64s()
			if err != nil {
				return nil, err
			}
			for r, v := range vals {
				inst.Set(specs[c], r, base.PackFloatToBytes(v))
			}
			continue
		}
		sc := col.(*frame.StringColumn)
		for r := 0; r < sc.Len(); r++ {
			v, _ := sc.Get(r)
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(v))
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn instances into a frame labeled by
// idx. A nil idx means RangeIndex. Float attributes become float columns
// with NaN read as null; everything else becomes a string column.
func FromDenseInstances(inst base.FixedDataGrid, idx frame.Index) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	_, nrows := inst.Size()
	cols := make([]frame.Column, len(attrs))
	for i, a := range attrs {
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		if _, ok := a.(*base.FloatAttribute); ok {
			vals := make([]float64, nrows)
			for r := range vals {
				vals[r] = base.UnpackBytesToFloat(inst.Get(spec, r))
			}
			cols[i] = frame.FloatColumnOf(a.GetName(), vals)
			continue
		}
		sc := frame.NewStringColumn(a.GetName(), nrows)
		for r := 0; r < nrows; r++ {
			sc.Set(r, a.GetStringFromSysVal(inst.Get(spec, r)))
		}
		cols[i] = sc
	}
	return frame.FromColumns(idx, cols...)
}

package frame

import (
	"math"
	"time"
)

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Numeric reports whether values of this kind convert to float64.
func (k Kind) Numeric() bool {
	return k == KindBool || k == KindInt || k == KindFloat
}

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}

// BoolColumnOf builds a column holding a copy of vals with no nulls.
func BoolColumnOf(name string, vals []bool) *BoolColumn {
	c := NewBoolColumn(name, len(vals))
	copy(c.data, vals)
	return c
}

func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}

// IntColumnOf builds a column holding a copy of vals with no nulls.
func IntColumnOf(name string, vals []int64) *IntColumn {
	c := NewIntColumn(name, len(vals))
	copy(c.data, vals)
	return c
}

func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}

// FloatColumnOf builds a column holding a copy of vals. NaN entries become nulls.
func FloatColumnOf(name string, vals []float64) *FloatColumn {
	c := NewFloatColumn(name, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			c.nulls[i] = true
			continue
		}
		c.data[i] = v
	}
	return c
}

func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}

// StringColumnOf builds a column holding a copy of vals with no nulls.
func StringColumnOf(name string, vals []string) *StringColumn {
	c := NewStringColumn(name, len(vals))
	copy(c.data, vals)
	return c
}

func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: make([]bool, n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}

// renamed returns a column sharing c's storage under a new name.
func renamed(c Column, name string) Column {
	switch col := c.(type) {
	case *BoolColumn:
		return &BoolColumn{name: name, data: col.data, nulls: col.nulls}
	case *IntColumn:
		return &IntColumn{name: name, data: col.data, nulls: col.nulls}
	case *FloatColumn:
		return &FloatColumn{name: name, data: col.data, nulls: col.nulls}
	case *StringColumn:
		return &StringColumn{name: name, data: col.data, nulls: col.nulls}
	case *TimeColumn:
		return &TimeColumn{name: name, data: col.data, nulls: col.nulls}
	default:
		panic("unknown column type")
	}
}

// floatAt reads row i of a numeric column. Nulls read as NaN.
func floatAt(c Column, i int) (float64, bool) {
	if c.IsNull(i) {
		return math.NaN(), c.Kind().Numeric()
	}
	switch col := c.(type) {
	case *FloatColumn:
		return col.data[i], true
	case *IntColumn:
		return float64(col.data[i]), true
	case *BoolColumn:
		if col.data[i] {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func newColumn(cs ColumnSchema, n int) Column {
	switch cs.Type {
	case KindBool:
		return NewBoolColumn(cs.Name, n)
	case KindInt:
		return NewIntColumn(cs.Name, n)
	case KindFloat:
		return NewFloatColumn(cs.Name, n)
	case KindString:
		return NewStringColumn(cs.Name, n)
	case KindTime:
		return NewTimeColumn(cs.Name, n)
	default:
		panic("invalid column kind")
	}
}

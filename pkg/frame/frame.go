package frame

import (
	"fmt"
	"strconv"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, cs := range s.Columns {
		out[i] = cs.Name
	}
	return out
}

// Labeled is implemented by *Frame and *Series: row-indexed data that can
// be viewed as a Frame.
type Labeled interface {
	Index() Index
	Rows() int
	ToFrame() *Frame
}

// Frame is a columnar container for tabular data. All columns share one
// row index.
type Frame struct {
	schema Schema
	cols   []Column
	byName map[string]int // name -> col index
	index  Index
	nrows  int
}

// NewFrame returns an empty frame with the given schema. Rows appended with
// AppendNullRow are labeled by their position.
func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), byName: make(map[string]int)}
	for i, cs := range s.Columns {
		f.cols[i] = newColumn(cs, 0)
		f.byName[cs.Name] = i
	}
	return f
}

// FromColumns assembles a frame from existing columns. A nil index means
// RangeIndex over the column length.
func FromColumns(idx Index, cols ...Column) (*Frame, error) {
	n := len(idx)
	if idx == nil {
		n = 0
		if len(cols) > 0 {
			n = cols[0].Len()
		}
		idx = RangeIndex(n)
	}
	f := &Frame{
		schema: Schema{Columns: make([]ColumnSchema, len(cols))},
		cols:   make([]Column, len(cols)),
		byName: make(map[string]int, len(cols)),
		index:  idx.Clone(),
		nrows:  n,
	}
	for i, c := range cols {
		if c.Len() != n {
			return nil, fmt.Errorf("column %s: %w: %d values for %d rows", c.Name(), ErrLengthMismatch, c.Len(), n)
		}
		if _, dup := f.byName[c.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Name())
		}
		f.cols[i] = c
		f.byName[c.Name()] = i
		f.schema.Columns[i] = ColumnSchema{Name: c.Name(), Type: c.Kind(), Nullable: true}
	}
	return f, nil
}

func (f *Frame) Schema() Schema  { return f.schema }
func (f *Frame) Rows() int       { return f.nrows }
func (f *Frame) Cols() int       { return len(f.cols) }
func (f *Frame) Index() Index    { return f.index }
func (f *Frame) Names() []string { return f.schema.Names() }
func (f *Frame) ToFrame() *Frame { return f }

// Column returns the i-th column.
func (f *Frame) Column(i int) Column { return f.cols[i] }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// WithIndex returns a frame sharing f's columns under a new row index.
func (f *Frame) WithIndex(idx Index) (*Frame, error) {
	if len(idx) != f.nrows {
		return nil, fmt.Errorf("%w: index has %d labels for %d rows", ErrLengthMismatch, len(idx), f.nrows)
	}
	out := f.shallow()
	out.index = idx.Clone()
	return out, nil
}

// Select returns a frame holding exactly the named columns, in the order
// given. Every missing name is reported in a single MissingColumnsError.
func (f *Frame) Select(names ...string) (*Frame, error) {
	var missing []string
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := f.ColumnByName(n)
		if !ok {
			missing = append(missing, n)
			continue
		}
		cols = append(cols, c)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Names: missing}
	}
	return FromColumns(f.index, cols...)
}

// Rename returns a frame with column old renamed to name.
func (f *Frame) Rename(old, name string) (*Frame, error) {
	i, ok := f.byName[old]
	if !ok {
		return nil, &MissingColumnsError{Names: []string{old}}
	}
	if old == name {
		return f, nil
	}
	cols := make([]Column, len(f.cols))
	copy(cols, f.cols)
	cols[i] = renamed(cols[i], name)
	return FromColumns(f.index, cols...)
}

// Squeeze views a single-column frame as a Series.
func (f *Frame) Squeeze() (*Series, error) {
	if len(f.cols) != 1 {
		return nil, fmt.Errorf("squeeze: frame has %d columns, want 1", len(f.cols))
	}
	return &Series{col: f.cols[0], index: f.index}, nil
}

// Concat joins frames column-wise. Every frame must carry the same row
// index and column names must not repeat.
func Concat(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return FromColumns(Index{})
	}
	idx := frames[0].index
	var cols []Column
	for i, f := range frames {
		if !f.index.Equal(idx) {
			return nil, &IndexMismatchError{Position: i, Want: idx, Got: f.index}
		}
		cols = append(cols, f.cols...)
	}
	return FromColumns(idx, cols...)
}

func (f *Frame) shallow() *Frame {
	return &Frame{schema: f.schema, cols: f.cols, byName: f.byName, index: f.index, nrows: f.nrows}
}

// AppendNullRow appends a row with all-null values, labeled by its position.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.index = append(f.index, strconv.Itoa(f.nrows))
	f.nrows++
}

// SetLabel relabels row i.
func (f *Frame) SetLabel(row int, label string) { f.index[row] = label }

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.byName[name]
	if !ok {
		return &MissingColumnsError{Names: []string{name}}
	}
	c := f.cols[i]
	switch col := c.(type) {
	case *BoolColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

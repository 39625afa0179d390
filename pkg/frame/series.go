package frame

import (
	"fmt"
	"math"
)

// Series is a single named column aligned to a row index.
type Series struct {
	col   Column
	index Index
}

// NewSeries builds a float series. A nil index means RangeIndex. NaN
// values are stored as nulls.
func NewSeries(name string, vals []float64, idx Index) (*Series, error) {
	return SeriesOf(FloatColumnOf(name, vals), idx)
}

// SeriesOf aligns an existing column to a row index.
func SeriesOf(c Column, idx Index) (*Series, error) {
	if idx == nil {
		idx = RangeIndex(c.Len())
	}
	if len(idx) != c.Len() {
		return nil, fmt.Errorf("series %s: %w: %d values for %d labels", c.Name(), ErrLengthMismatch, c.Len(), len(idx))
	}
	return &Series{col: c, index: idx.Clone()}, nil
}

func (s *Series) Name() string   { return s.col.Name() }
func (s *Series) Kind() Kind     { return s.col.Kind() }
func (s *Series) Len() int       { return s.col.Len() }
func (s *Series) Rows() int      { return s.col.Len() }
func (s *Series) Index() Index   { return s.index }
func (s *Series) Column() Column { return s.col }

// Rename returns a series sharing s's values under a new name.
func (s *Series) Rename(name string) *Series {
	if name == s.col.Name() {
		return s
	}
	return &Series{col: renamed(s.col, name), index: s.index}
}

// ToFrame views the series as a one-column frame.
func (s *Series) ToFrame() *Frame {
	f, err := FromColumns(s.index, s.col)
	if err != nil {
		// lengths were checked when the series was built
		panic(err)
	}
	return f
}

// Float64s copies the values out as float64, nulls as NaN.
func (s *Series) Float64s() ([]float64, error) {
	out := make([]float64, s.col.Len())
	for i := range out {
		v, ok := floatAt(s.col, i)
		if !ok {
			return nil, fmt.Errorf("series %s: %w (%s)", s.col.Name(), ErrNotNumeric, s.col.Kind())
		}
		out[i] = v
	}
	return out, nil
}

// At returns the value at row i as float64. Non-numeric or null rows read
// as NaN.
func (s *Series) At(i int) float64 {
	v, ok := floatAt(s.col, i)
	if !ok {
		return math.NaN()
	}
	return v
}

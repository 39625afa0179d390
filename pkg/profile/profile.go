// Package profile summarizes the columns of a frame.
package profile

import (
	"math"
	"sort"

	"go.uber.org/zap/zapcore"

	"github.com/wdm0006/framelearn/pkg/frame"
)

type NumStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

type ColumnProfile struct {
	Name  string    `json:"name"`
	Kind  string    `json:"kind"`
	Count int       `json:"count"`
	Nulls int       `json:"nulls"`
	Num   *NumStats `json:"num,omitempty"`
	// Top holds the most frequent string values, most frequent first.
	Top []string `json:"top,omitempty"`
}

// Profile is one entry per column, in frame order.
type Profile []ColumnProfile

// Describe profiles every column of f. String columns keep up to topK
// most frequent values; ties are broken by value.
func Describe(f *frame.Frame, topK int) Profile {
	out := make(Profile, f.Cols())
	for j := range out {
		col := f.Column(j)
		cp := ColumnProfile{Name: col.Name(), Kind: col.Kind().String()}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				cp.Nulls++
			}
		}
		cp.Count = col.Len() - cp.Nulls
		switch c := col.(type) {
		case *frame.StringColumn:
			cp.Top = top(c, topK)
		default:
			if col.Kind().Numeric() {
				cp.Num = numStats(col, f.Index())
			}
		}
		out[j] = cp
	}
	return out
}

func numStats(col frame.Column, idx frame.Index) *NumStats {
	s, err := frame.SeriesOf(col, idx)
	if err != nil {
		return nil
	}
	vals, err := s.Float64s()
	if err != nil {
		return nil
	}
	ns := &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	var n int
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		ns.Min = math.Min(ns.Min, v)
		ns.Max = math.Max(ns.Max, v)
		sum += v
		n++
	}
	if n == 0 {
		return &NumStats{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
	}
	ns.Mean = sum / float64(n)
	return ns
}

func top(c *frame.StringColumn, k int) []string {
	if k <= 0 {
		return nil
	}
	freqs := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			freqs[v]++
		}
	}
	keys := make([]string, 0, len(freqs))
	for v := range freqs {
		keys = append(keys, v)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freqs[keys[i]] != freqs[keys[j]] {
			return freqs[keys[i]] > freqs[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > k {
		keys = keys[:k]
	}
	return keys
}

func (cp ColumnProfile) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", cp.Name)
	enc.AddString("kind", cp.Kind)
	enc.AddInt("count", cp.Count)
	enc.AddInt("nulls", cp.Nulls)
	if cp.Num != nil {
		enc.AddFloat64("min", cp.Num.Min)
		enc.AddFloat64("max", cp.Num.Max)
		enc.AddFloat64("mean", cp.Num.Mean)
	}
	if len(cp.Top) > 0 {
		return enc.AddArray("top", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
			for _, v := range cp.Top {
				ae.AppendString(v)
			}
			return nil
		}))
	}
	return nil
}

func (p Profile) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, cp := range p {
		if err := enc.AppendObject(cp); err != nil {
			return err
		}
	}
	return nil
}

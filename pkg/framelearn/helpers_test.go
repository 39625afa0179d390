package framelearn_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// makeData returns an n×p frame with non-positional row labels and a
// target that is an exact linear function of the columns.
func makeData(t testing.TB, n, p int, seed int64) (*frame.Frame, *frame.Series) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	idx := make(frame.Index, n)
	for i := range idx {
		idx[i] = fmt.Sprintf("id-%04d", 3*i+7)
	}
	y := make([]float64, n)
	cols := make([]frame.Column, p)
	for j := 0; j < p; j++ {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rng.Float64()*10 + float64(j)
			y[i] += float64(j+1) * vals[i]
		}
		cols[j] = frame.FloatColumnOf(fmt.Sprintf("c%d", j), vals)
	}
	for i := range y {
		y[i] += 0.5
	}
	x, err := frame.FromColumns(idx, cols...)
	require.NoError(t, err)
	target, err := frame.NewSeries("y", y, idx)
	require.NoError(t, err)
	return x, target
}

func reversed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}

func values(t testing.TB, f *frame.Frame) [][]float64 {
	t.Helper()
	out := make([][]float64, f.Cols())
	for j := range out {
		s, err := frame.SeriesOf(f.Column(j), f.Index())
		require.NoError(t, err)
		out[j], err = s.Float64s()
		require.NoError(t, err)
	}
	return out
}

func seriesValues(t testing.TB, s *frame.Series) []float64 {
	t.Helper()
	v, err := s.Float64s()
	require.NoError(t, err)
	return v
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func requireSameFrame(t testing.TB, want, got *frame.Frame) {
	t.Helper()
	require.Equal(t, want.Names(), got.Names())
	if diff := cmp.Diff(want.Index(), got.Index()); diff != "" {
		t.Fatalf("index mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(values(t, want), values(t, got), approx); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

// pair emits its first input column and twice that column. It exposes no
// output names.
type pair struct{ fitted bool }

func (p *pair) Fit(X mat.Matrix) error { p.fitted = true; return nil }

func (p *pair) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	out := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, X.At(i, 0))
		out.Set(i, 1, 2*X.At(i, 0))
	}
	return out, nil
}

// sum emits the row sum as a single column.
type sum struct{}

func (sum) Fit(X mat.Matrix) error { return nil }

func (sum) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		var s float64
		for j := 0; j < c; j++ {
			s += X.At(i, j)
		}
		out.Set(i, 0, s)
	}
	return out, nil
}

func mustColumn(t testing.TB, f *frame.Frame, name string) *frame.Series {
	t.Helper()
	c, ok := f.ColumnByName(name)
	require.True(t, ok, "no column %s", name)
	s, err := frame.SeriesOf(c, f.Index())
	require.NoError(t, err)
	return s
}

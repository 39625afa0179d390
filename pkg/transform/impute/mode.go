package impute

import "gonum.org/v1/gonum/mat"

// Mode fills NaN with the most frequent column value seen at fit. Ties go
// to the value that reached the top count first.
type Mode struct{ filler }

func (t *Mode) Fit(X mat.Matrix) error {
	t.fit(X, mode)
	return nil
}

func (t *Mode) Transform(X mat.Matrix) (mat.Matrix, error) { return t.transform(X) }

func mode(vals []float64) float64 {
	counts := map[float64]int{}
	var best float64
	var bestc int
	for _, v := range vals {
		counts[v]++
		if counts[v] > bestc {
			bestc = counts[v]
			best = v
		}
	}
	return best
}

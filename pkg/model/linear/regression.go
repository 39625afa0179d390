// Package linear implements ordinary and ridge least squares on gonum.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// ErrBadInput is returned for empty, NaN-bearing or mis-sized training data.
var ErrBadInput = errors.New("linear: bad input")

// Regression fits y ≈ Aβ + c by least squares. With FitIntercept, A and y
// are centered first and c recovered from the means. Alpha > 0 adds a
// ridge penalty. Rank-deficient A gets the minimum-norm solution.
type Regression struct {
	FitIntercept bool
	Alpha        float64

	coef      []float64
	intercept float64
}

// NewRegression returns a regression that fits an intercept.
func NewRegression() *Regression { return &Regression{FitIntercept: true} }

func (r *Regression) Fit(X mat.Matrix, y []float64) error {
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return fmt.Errorf("%w: empty matrix", ErrBadInput)
	}
	if len(y) != n {
		return fmt.Errorf("%w: %d targets for %d rows", ErrBadInput, len(y), n)
	}
	if r.Alpha < 0 {
		return fmt.Errorf("%w: negative alpha %g", ErrBadInput, r.Alpha)
	}
	// Rows n..n+p-1 hold the ridge penalty and stay zero when Alpha is 0.
	rows := n
	if r.Alpha > 0 {
		rows += p
	}
	A := mat.NewDense(rows, p, nil)
	b := mat.NewVecDense(rows, nil)
	for i := 0; i < n; i++ {
		if math.IsNaN(y[i]) {
			return fmt.Errorf("%w: NaN target at row %d", ErrBadInput, i)
		}
		b.SetVec(i, y[i])
		for j := 0; j < p; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				return fmt.Errorf("%w: NaN at (%d,%d)", ErrBadInput, i, j)
			}
			A.Set(i, j, v)
		}
	}

	xmean := make([]float64, p)
	var ymean float64
	if r.FitIntercept {
		col := make([]float64, n)
		for j := 0; j < p; j++ {
			for i := range col {
				col[i] = A.At(i, j)
			}
			xmean[j] = stat.Mean(col, nil)
			for i := 0; i < n; i++ {
				A.Set(i, j, A.At(i, j)-xmean[j])
			}
		}
		ymean = stat.Mean(y, nil)
		for i := 0; i < n; i++ {
			b.SetVec(i, b.AtVec(i)-ymean)
		}
	}
	if r.Alpha > 0 {
		sq := math.Sqrt(r.Alpha)
		for j := 0; j < p; j++ {
			A.Set(n+j, j, sq)
		}
	}

	beta, err := lstsq(A, b)
	if err != nil {
		return err
	}
	r.coef = make([]float64, p)
	r.intercept = ymean
	for j := range r.coef {
		r.coef[j] = beta.AtVec(j)
		r.intercept -= r.coef[j] * xmean[j]
	}
	return nil
}

// lstsq returns the minimum-norm β minimising |Aβ - b|. Singular values
// below max(rows, cols)·eps·σmax are treated as zero.
func lstsq(A *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	m, p := A.Dims()
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, errors.New("linear: svd did not converge")
	}
	sv := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	tol := float64(max(m, p)) * eps * sv[0]
	var ub mat.VecDense
	ub.MulVec(u.T(), b)
	for i, s := range sv {
		if s <= tol || s == 0 {
			ub.SetVec(i, 0)
			continue
		}
		ub.SetVec(i, ub.AtVec(i)/s)
	}
	var beta mat.VecDense
	beta.MulVec(&v, &ub)
	return &beta, nil
}

// eps is float64 machine epsilon.
const eps = 0x1p-52

func (r *Regression) Predict(X mat.Matrix) ([]float64, error) {
	if r.coef == nil {
		return nil, framelearn.ErrNotFitted
	}
	n, p := X.Dims()
	if p != len(r.coef) {
		return nil, fmt.Errorf("%w: %d columns, fitted on %d", ErrBadInput, p, len(r.coef))
	}
	out := make([]float64, n)
	for i := range out {
		v := r.intercept
		for j, c := range r.coef {
			v += c * X.At(i, j)
		}
		out[i] = v
	}
	return out, nil
}

// EstimatorKind reports KindRegressor.
func (r *Regression) EstimatorKind() framelearn.EstimatorKind { return framelearn.KindRegressor }

// Attribute exposes "coef" and "intercept".
func (r *Regression) Attribute(name string) (any, error) {
	switch name {
	case "coef", "intercept":
	default:
		return nil, fmt.Errorf("%w: %s", framelearn.ErrNoAttribute, name)
	}
	if r.coef == nil {
		return nil, framelearn.ErrNotFitted
	}
	if name == "intercept" {
		return r.intercept, nil
	}
	return append([]float64(nil), r.coef...), nil
}

func (r *Regression) GetParams() map[string]any {
	return map[string]any{"fit_intercept": r.FitIntercept, "alpha": r.Alpha}
}

func (r *Regression) SetParams(params map[string]any) error {
	for k, v := range params {
		switch k {
		case "fit_intercept":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("linear: fit_intercept expects bool, got %T", v)
			}
			r.FitIntercept = b
		case "alpha":
			switch t := v.(type) {
			case float64:
				r.Alpha = t
			case int:
				r.Alpha = float64(t)
			default:
				return fmt.Errorf("linear: alpha expects a number, got %T", v)
			}
		default:
			return fmt.Errorf("linear: unknown param %q", k)
		}
	}
	return nil
}

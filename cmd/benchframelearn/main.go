// Command benchframelearn measures fit and predict throughput of an
// impute, scale and regress chain over generated data.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/model/linear"
	"github.com/wdm0006/framelearn/pkg/transform/impute"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
)

// generate builds rows x cols features with a linear target. Each feature
// cell is missing with probability missp.
func generate(rows, cols int, missp float64, rnd *rand.Rand) (*frame.Frame, *frame.Series, error) {
	weights := make([]float64, cols)
	for j := range weights {
		weights[j] = rnd.Float64()*2 - 1
	}
	data := make([][]float64, cols)
	for j := range data {
		data[j] = make([]float64, rows)
	}
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := rnd.NormFloat64()
			y[i] += weights[j] * v
			if rnd.Float64() < missp {
				v = math.NaN()
			}
			data[j][i] = v
		}
	}
	idx := make(frame.Index, rows)
	for i := range idx {
		idx[i] = "row" + strconv.Itoa(i)
	}
	fc := make([]frame.Column, cols)
	for j := range fc {
		fc[j] = frame.FloatColumnOf(fmt.Sprintf("f%d", j), data[j])
	}
	x, err := frame.FromColumns(idx, fc...)
	if err != nil {
		return nil, nil, err
	}
	target, err := frame.NewSeries("y", y, idx)
	if err != nil {
		return nil, nil, err
	}
	return x, target, nil
}

func main() {
	var (
		rows    = flag.Int("rows", 200_000, "rows to generate")
		cols    = flag.Int("cols", 8, "number of feature columns")
		missp   = flag.Float64("missing", 0.05, "probability of missing values in each cell")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	x, y, err := generate(*rows, *cols, *missp, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	chain := framelearn.MustNew(&impute.Mean{}).
		Pipe(framelearn.MustNew(&scale.Standard{})).
		Pipe(framelearn.MustNew(linear.NewRegression()))

	// Warm up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	if err := chain.Fit(x, y); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fitElapsed := time.Since(start)
	start = time.Now()
	pred, err := chain.Predict(x)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	predictElapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	var sse float64
	for i := 0; i < pred.Len(); i++ {
		d := pred.At(i) - y.At(i)
		sse += d * d
	}

	summary := map[string]any{
		"rows":                  *rows,
		"cols":                  *cols,
		"fit_ms":                fitElapsed.Milliseconds(),
		"predict_ms":            predictElapsed.Milliseconds(),
		"fit_rows_per_sec":      float64(*rows) / fitElapsed.Seconds(),
		"predict_rows_per_sec":  float64(*rows) / predictElapsed.Seconds(),
		"rmse":                  math.Sqrt(sse / float64(pred.Len())),
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"missing_prob":          *missp,
	}

	if *jsonOut {
		b, _ := gojson.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d x %d\n", *rows, *cols)
	fmt.Printf("Fit: %s (%.0f rows/s)\n", fitElapsed, summary["fit_rows_per_sec"])
	fmt.Printf("Predict: %s (%.0f rows/s)\n", predictElapsed, summary["predict_rows_per_sec"])
	fmt.Printf("RMSE: %.4f\n", summary["rmse"])
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}

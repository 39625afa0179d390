package jsonlio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/wdm0006/framelearn/pkg/frame"
	iox "github.com/wdm0006/framelearn/pkg/io/ioutils"
)

type WriterOptions struct {
	// IndexColumn, when set, writes the row labels as the first key.
	IndexColumn string
}

// WriteAll writes a Frame as JSON Lines. A ".gz" path is gzip compressed
// and "-" writes to stdout.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if err := Write(out, f, opt); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write writes one object per row with keys in column order. Null cells
// are written as null.
func Write(w io.Writer, f *frame.Frame, opt WriterOptions) error {
	if opt.IndexColumn != "" {
		if _, clash := f.ColumnByName(opt.IndexColumn); clash {
			return fmt.Errorf("jsonl: %w: index column %s", frame.ErrDuplicateColumn, opt.IndexColumn)
		}
	}
	keys := make([][]byte, 0, f.Cols()+1)
	if opt.IndexColumn != "" {
		k, err := gojson.Marshal(opt.IndexColumn)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}
	for _, name := range f.Names() {
		k, err := gojson.Marshal(name)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}
	lead := len(keys) - f.Cols()
	bw := bufio.NewWriter(w)
	for r := 0; r < f.Rows(); r++ {
		_ = bw.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				_ = bw.WriteByte(',')
			}
			_, _ = bw.Write(k)
			_ = bw.WriteByte(':')
			var v any
			if i < lead {
				v = f.Index()[r]
			} else {
				v = value(f.Column(i-lead), r)
			}
			b, err := gojson.Marshal(v)
			if err != nil {
				return fmt.Errorf("jsonl row %d: %w", r, err)
			}
			_, _ = bw.Write(b)
		}
		if _, err := bw.WriteString("}\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func value(col frame.Column, r int) any {
	switch c := col.(type) {
	case *frame.FloatColumn:
		// JSON has no NaN or infinities
		if v, ok := c.Get(r); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	case *frame.IntColumn:
		if v, ok := c.Get(r); ok {
			return v
		}
	case *frame.BoolColumn:
		if v, ok := c.Get(r); ok {
			return v
		}
	case *frame.StringColumn:
		if v, ok := c.Get(r); ok {
			return v
		}
	case *frame.TimeColumn:
		if v, ok := c.Get(r); ok {
			return v.Format(time.RFC3339)
		}
	}
	return nil
}

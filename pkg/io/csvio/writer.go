package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/wdm0006/framelearn/pkg/frame"
	iox "github.com/wdm0006/framelearn/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
	// IndexColumn, when set, writes the row labels first under this name.
	IndexColumn string
}

// WriteAll writes a Frame to a CSV file with headers. A ".gz" path is
// gzip compressed and "-" writes to stdout.
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

// Write writes f as CSV to w.
func Write(w io.Writer, f *frame.Frame, opt WriterOptions) error {
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	lead := 0
	if opt.IndexColumn != "" {
		lead = 1
	}

	hdr := make([]string, 0, lead+f.Cols())
	if lead == 1 {
		hdr = append(hdr, opt.IndexColumn)
	}
	hdr = append(hdr, f.Names()...)
	if err := cw.Write(hdr); err != nil {
		return err
	}

	row := make([]string, len(hdr))
	for r := 0; r < f.Rows(); r++ {
		if lead == 1 {
			row[0] = f.Index()[r]
		}
		for c := 0; c < f.Cols(); c++ {
			row[lead+c] = format(f.Column(c), r)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// format renders row r of col; nulls are empty.
func format(col frame.Column, r int) string {
	switch c := col.(type) {
	case *frame.FloatColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	case *frame.IntColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatInt(v, 10)
		}
	case *frame.BoolColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatBool(v)
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
	return ""
}

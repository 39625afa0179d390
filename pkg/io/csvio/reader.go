// Package csvio loads and saves frames as CSV, optionally gzip compressed.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/wdm0006/framelearn/pkg/frame"
	iox "github.com/wdm0006/framelearn/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records
	// IndexColumn names a column read as row labels instead of data.
	IndexColumn string
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (or stdin for "-") and returns a Reader and the
// closer for the underlying stream.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	rr := csv.NewReader(rc)
	if opt.Delimiter == 0 && path != "-" && path != "" {
		if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
			rr.Comma = d
			rr.LazyQuotes = lazy
		}
	} else if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}, rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.FieldsPerRecord = -1
	return &Reader{r: rr, opt: opt}
}

// ReadFile infers the schema of the CSV at path and loads it.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	schema, _, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	return f, nil
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. The index column, if any, is always a string column.
func (r *Reader) InferSchema() (frame.Schema, []string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return frame.Schema{}, nil, err
	}
	names := make([]string, len(rec))
	if r.opt.HasHeader {
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
		if rec, err = r.r.Read(); err != nil && err != io.EOF {
			return frame.Schema{}, nil, err
		}
	} else {
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	var sample [][]string
	if rec != nil && err == nil {
		sample = append(sample, append([]string(nil), rec...))
		max := r.opt.SampleRows
		if max <= 0 {
			max = 100
		}
		for i := 1; i < max; i++ {
			rr, err := r.r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return frame.Schema{}, nil, err
			}
			sample = append(sample, rr)
		}
	}

	kinds := inferKinds(sample, len(names))
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i := range names {
		k := kinds[i]
		if names[i] == r.opt.IndexColumn {
			k = frame.KindString
		}
		schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: k, Nullable: true}
	}
	// retain sampled rows for subsequent ReadAll
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

// ReadAll loads the rest of the CSV into a Frame. Rows are labeled by the
// index column when one is configured, by position otherwise.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	labelAt := -1
	data := frame.Schema{}
	for i, cs := range schema.Columns {
		if cs.Name == r.opt.IndexColumn {
			labelAt = i
			continue
		}
		data.Columns = append(data.Columns, cs)
	}
	if r.opt.IndexColumn != "" && labelAt < 0 {
		return nil, &frame.MissingColumnsError{Names: []string{r.opt.IndexColumn}}
	}
	f := frame.NewFrame(data)
	for {
		var rec []string
		if len(r.buf) > 0 {
			rec, r.buf = r.buf[0], r.buf[1:]
		} else {
			var err error
			rec, err = r.r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		if err := r.setRecord(f, schema, labelAt, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// setRecord appends a null row then sets the non-empty fields of rec.
func (r *Reader) setRecord(f *frame.Frame, schema frame.Schema, labelAt int, rec []string) error {
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows(), len(schema.Columns), len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			r.shortRecords++
			if r.opt.Strict {
				return fmt.Errorf("csv short record at row %d: need %d fields, got %d", row, len(schema.Columns), len(rec))
			}
			break
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if i == labelAt {
			f.SetLabel(row, val)
			continue
		}
		if val == "" {
			continue
		}
		var err error
		switch cs.Type {
		case frame.KindFloat:
			if x, perr := strconv.ParseFloat(val, 64); perr == nil {
				err = f.SetCell(row, cs.Name, x)
			}
		case frame.KindInt:
			if x, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				err = f.SetCell(row, cs.Name, x)
			}
		case frame.KindBool:
			if x, perr := strconv.ParseBool(strings.ToLower(val)); perr == nil {
				err = f.SetCell(row, cs.Name, x)
			}
		default:
			err = f.SetCell(row, cs.Name, val)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string, ncol int) []frame.Kind {
	kinds := make([]frame.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
				continue
			}
			if lv := strings.ToLower(v); lv == "true" || lv == "false" {
				boolean++
				continue
			}
			str++
		}
		switch {
		case str > 0 || (num == 0 && boolean == 0):
			kinds[c] = frame.KindString
		case boolean > 0 && num == 0:
			kinds[c] = frame.KindBool
		case boolean > 0:
			kinds[c] = frame.KindString
		case integer == num:
			kinds[c] = frame.KindInt
		default:
			kinds[c] = frame.KindFloat
		}
	}
	return kinds
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	best := byte(',')
	bestCount := -1
	for _, c := range []byte{',', '\t', ';', '|'} {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	return rune(best), quoteCount > 0, nil
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}

// Package parquetio loads and saves frames as Parquet files.
package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	"github.com/wdm0006/framelearn/pkg/frame"
)

type ReaderOptions struct {
	// SampleRows bounds schema inference; default 100.
	SampleRows int
	// IndexColumn names a column read as row labels instead of data.
	IndexColumn string
}

type Reader struct {
	file   *os.File
	reader *parquet.Reader
	names  []string
	schema frame.Schema
	opt    ReaderOptions
}

// OpenReader opens path and infers a frame schema from its first rows.
// Columns keep the file's field order.
func OpenReader(path string, opt ReaderOptions) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet %s: %w", path, err)
	}
	if opt.SampleRows <= 0 {
		opt.SampleRows = 100
	}
	r := &Reader{file: f, reader: parquet.NewReader(pf), opt: opt}
	for _, fld := range pf.Schema().Fields() {
		r.names = append(r.names, fld.Name())
	}
	var sample []map[string]any
	buf := make([]parquet.Row, opt.SampleRows)
	for len(sample) < opt.SampleRows {
		n, err := r.reader.ReadRows(buf[:opt.SampleRows-len(sample)])
		for _, row := range buf[:n] {
			sample = append(sample, r.record(row))
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			_ = r.Close()
			return nil, err
		}
	}
	r.schema = inferSchema(r.names, sample, opt.IndexColumn)
	if err := r.reader.SeekToRow(0); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// ReadFile opens path, loads every row and closes it.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	r, err := OpenReader(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}

func (r *Reader) Close() error {
	return errors.Join(r.reader.Close(), r.file.Close())
}

func (r *Reader) Schema() frame.Schema { return r.schema }

func (r *Reader) ReadAll() (*frame.Frame, error) {
	data := frame.Schema{}
	found := false
	for _, cs := range r.schema.Columns {
		if cs.Name == r.opt.IndexColumn {
			found = true
			continue
		}
		data.Columns = append(data.Columns, cs)
	}
	if r.opt.IndexColumn != "" && !found {
		return nil, &frame.MissingColumnsError{Names: []string{r.opt.IndexColumn}}
	}
	f := frame.NewFrame(data)
	buf := make([]parquet.Row, 1024)
	for {
		n, err := r.reader.ReadRows(buf)
		for _, row := range buf[:n] {
			m := r.record(row)
			f.AppendNullRow()
			i := f.Rows() - 1
			if r.opt.IndexColumn != "" {
				if v, ok := m[r.opt.IndexColumn]; ok {
					f.SetLabel(i, fmt.Sprint(v))
				}
			}
			setRow(f, i, m)
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// record maps the non-null leaf values of a flat row to their field names.
func (r *Reader) record(row parquet.Row) map[string]any {
	m := make(map[string]any, len(r.names))
	for _, v := range row {
		c := v.Column()
		if v.IsNull() || c < 0 || c >= len(r.names) {
			continue
		}
		m[r.names[c]] = goValue(v)
	}
	return m
}

func goValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	}
	return v.String()
}

func inferSchema(names []string, rows []map[string]any, index string) frame.Schema {
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i, k := range names {
		kind := frame.KindString
		if k != index {
			kind = inferKind(k, rows)
		}
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kind, Nullable: true}
	}
	return schema
}

func inferKind(k string, rows []map[string]any) frame.Kind {
	nNum, nInt, nBool, nStr := 0, 0, 0, 0
	for _, m := range rows {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float32, float64:
			nNum++
		case int, int32, int64:
			nNum++
			nInt++
		case bool:
			nBool++
		case string, []byte:
			s := strings.TrimSpace(fmt.Sprintf("%s", t))
			if s == "" {
				continue
			}
			if x, err := strconv.ParseFloat(s, 64); err == nil {
				nNum++
				if float64(int64(x)) == x && !strings.ContainsAny(s, ".eE") {
					nInt++
				}
			} else {
				nStr++
			}
		default:
			nStr++
		}
	}
	switch {
	case nBool > nNum && nBool >= nStr:
		return frame.KindBool
	case nNum > nStr:
		if nInt == nNum {
			return frame.KindInt
		}
		return frame.KindFloat
	default:
		return frame.KindString
	}
}

func setRow(f *frame.Frame, row int, m map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		if x, ok := convert(cs.Type, v); ok {
			_ = f.SetCell(row, cs.Name, x)
		}
	}
}

// convert coerces a decoded parquet value to the Go type SetCell expects
// for kind.
func convert(kind frame.Kind, v any) (any, bool) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		switch kind {
		case frame.KindFloat:
			x, err := strconv.ParseFloat(s, 64)
			return x, err == nil
		case frame.KindInt:
			x, err := strconv.ParseInt(s, 10, 64)
			return x, err == nil
		case frame.KindBool:
			x, err := strconv.ParseBool(strings.ToLower(s))
			return x, err == nil
		default:
			return s, true
		}
	}
	switch kind {
	case frame.KindFloat:
		switch t := v.(type) {
		case float32:
			return float64(t), true
		case float64, int, int64:
			return t, true
		case int32:
			return int64(t), true
		}
	case frame.KindInt:
		switch t := v.(type) {
		case int, int64, float64:
			return t, true
		case int32:
			return int64(t), true
		}
	case frame.KindBool:
		b, ok := v.(bool)
		return b, ok
	default:
		return fmt.Sprintf("%v", v), true
	}
	return nil, false
}

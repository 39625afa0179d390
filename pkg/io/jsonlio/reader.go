// Package jsonlio loads and saves frames as JSON Lines, one object per row.
package jsonlio

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/wdm0006/framelearn/pkg/frame"
	iox "github.com/wdm0006/framelearn/pkg/io/ioutils"
)

type ReaderOptions struct {
	// SampleRows bounds schema inference; default 100.
	SampleRows int
	// IndexColumn names a key read as row labels instead of data.
	IndexColumn string
}

// object is one decoded line with its keys in document order.
type object struct {
	keys []string
	vals map[string]any
}

type Reader struct {
	dec  *gojson.Decoder
	opt  ReaderOptions
	buf  []object
	keys []string
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Open opens a JSONL file (or stdin for "-"), gzip aware, and returns a
// Reader and the closer for the underlying stream.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	return &Reader{dec: gojson.NewDecoder(r), opt: opt}
}

// ReadFile infers the schema of the JSONL at path and loads it.
func ReadFile(path string, opt ReaderOptions) (*frame.Frame, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, fmt.Errorf("jsonl %s: %w", path, err)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		return nil, fmt.Errorf("jsonl %s: %w", path, err)
	}
	return f, nil
}

// InferSchema samples objects to determine column kinds. Columns follow
// the order in which keys are first seen; the index key is always a
// string column.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	seen := map[string]struct{}{}
	r.keys = r.keys[:0]
	for len(r.buf) < max {
		obj, err := r.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frame.Schema{}, err
		}
		r.buf = append(r.buf, obj)
		for _, k := range obj.keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				r.keys = append(r.keys, k)
			}
		}
	}
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		kind := frame.KindString
		if k != r.opt.IndexColumn {
			kind = inferKind(k, r.buf)
		}
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kind, Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the sampled objects and the rest of the stream. Keys
// absent from schema are ignored and values that do not fit their
// column's kind are left null.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	data := frame.Schema{}
	found := false
	for _, cs := range schema.Columns {
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
	for _, obj := range r.buf {
		r.appendRow(f, obj)
	}
	r.buf = nil
	for {
		obj, err := r.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", f.Rows(), err)
		}
		r.appendRow(f, obj)
	}
	return f, nil
}

// next decodes one top-level object token by token so key order survives.
func (r *Reader) next() (object, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return object{}, err
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '{' {
		return object{}, fmt.Errorf("expected JSON object, got %v", tok)
	}
	obj := object{vals: map[string]any{}}
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return object{}, err
		}
		k, ok := tok.(string)
		if !ok {
			return object{}, fmt.Errorf("expected object key, got %v", tok)
		}
		var v any
		if err := r.dec.Decode(&v); err != nil {
			return object{}, err
		}
		if _, dup := obj.vals[k]; !dup {
			obj.keys = append(obj.keys, k)
		}
		obj.vals[k] = v
	}
	if _, err := r.dec.Token(); err != nil {
		return object{}, err
	}
	return obj, nil
}

func (r *Reader) appendRow(f *frame.Frame, obj object) {
	f.AppendNullRow()
	row := f.Rows() - 1
	if r.opt.IndexColumn != "" {
		if v, ok := obj.vals[r.opt.IndexColumn]; ok && v != nil {
			f.SetLabel(row, text(v))
		}
	}
	for _, cs := range f.Schema().Columns {
		v, ok := obj.vals[cs.Name]
		if !ok || v == nil {
			continue
		}
		if x, ok := convert(cs.Type, v); ok {
			_ = f.SetCell(row, cs.Name, x)
		}
	}
}

func convert(kind frame.Kind, v any) (any, bool) {
	switch kind {
	case frame.KindFloat:
		switch t := v.(type) {
		case float64:
			return t, true
		case string:
			x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			return x, err == nil
		}
	case frame.KindInt:
		switch t := v.(type) {
		case float64:
			return int64(t), float64(int64(t)) == t
		case string:
			x, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
			return x, err == nil
		}
	case frame.KindBool:
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			x, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t)))
			return x, err == nil
		}
	default:
		return text(v), true
	}
	return nil, false
}

// text renders a decoded value as a label or string cell; nested values
// keep their JSON form.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	b, _ := gojson.Marshal(v)
	return string(b)
}

func inferKind(k string, sample []object) frame.Kind {
	nNum, nInt, nBool, nStr := 0, 0, 0, 0
	for _, obj := range sample {
		v, ok := obj.vals[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			nNum++
			if float64(int64(t)) == t {
				nInt++
			}
		case bool:
			nBool++
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			if numre.MatchString(s) {
				nNum++
				if !strings.ContainsAny(s, ".eE") {
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

package parquetio

import (
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/framelearn/pkg/frame"
)

type WriterOptions struct {
	// IndexColumn, when set, stores the row labels as a leading string
	// column under this name.
	IndexColumn string
	// Parallel is the number of marshalling goroutines; default 4.
	Parallel int64
}

type field struct {
	Tag string `json:"Tag"`
}

type schemaJSON struct {
	Tag    string  `json:"Tag"`
	Fields []field `json:"Fields"`
}

func parquetSchemaJSON(s frame.Schema, index string) (string, error) {
	sc := schemaJSON{Tag: "name=schema, repetitiontype=REQUIRED"}
	if index != "" {
		sc.Fields = append(sc.Fields, field{Tag: "name=" + index + ", repetitiontype=REQUIRED, type=BYTE_ARRAY, convertedtype=UTF8"})
	}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindInt:
			tag += "INT64"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := gojson.Marshal(sc)
	return string(b), err
}

// WriteAll writes a Frame to a Parquet file using the parquet-go JSON
// writer. Null cells are left unset.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) (err error) {
	if opt.IndexColumn != "" {
		if _, clash := f.ColumnByName(opt.IndexColumn); clash {
			return fmt.Errorf("parquet: %w: index column %s", frame.ErrDuplicateColumn, opt.IndexColumn)
		}
	}
	if opt.Parallel <= 0 {
		opt.Parallel = 4
	}
	schema, err := parquetSchemaJSON(f.Schema(), opt.IndexColumn)
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(schema, fw, opt.Parallel)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := writer.WriteStop(); serr != nil && err == nil {
			err = fmt.Errorf("parquet write stop: %w", serr)
		}
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, f.Cols()+1)
		if opt.IndexColumn != "" {
			rec[opt.IndexColumn] = f.Index()[r]
		}
		for c := 0; c < f.Cols(); c++ {
			if v, ok := cell(f.Column(c), r); ok {
				rec[f.Column(c).Name()] = v
			}
		}
		b, err := gojson.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet row %d: %w", r, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}

func cell(col frame.Column, r int) (any, bool) {
	switch c := col.(type) {
	case *frame.FloatColumn:
		return c.Get(r)
	case *frame.IntColumn:
		return c.Get(r)
	case *frame.BoolColumn:
		return c.Get(r)
	case *frame.StringColumn:
		return c.Get(r)
	case *frame.TimeColumn:
		v, ok := c.Get(r)
		return v.Format(time.RFC3339), ok
	}
	return nil, false
}

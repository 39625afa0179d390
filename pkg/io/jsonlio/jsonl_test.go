package jsonlio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/framelearn/pkg/frame"
)

const houses = `{"id":"h1","rooms":3,"area":70.5,"city":"leeds","new":true}
{"id":"h2","area":52,"city":"york","new":false,"rooms":null}
{"id":"h3","rooms":5,"area":120.25,"new":true,"tags":{"x":1}}
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestInferAndRead(t *testing.T) {
	p := writeFile(t, "houses.jsonl", houses)
	r, c, err := Open(p, ReaderOptions{SampleRows: 10})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	schema, err := r.InferSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "rooms", "area", "city", "new", "tags"}, schema.Names())
	kinds := make([]frame.Kind, len(schema.Columns))
	for i, cs := range schema.Columns {
		kinds[i] = cs.Type
	}
	assert.Equal(t, []frame.Kind{frame.KindString, frame.KindInt, frame.KindFloat, frame.KindString, frame.KindBool, frame.KindString}, kinds)

	fr, err := r.ReadAll(schema)
	require.NoError(t, err)
	assert.Equal(t, 3, fr.Rows())
	assert.Equal(t, frame.Index{"0", "1", "2"}, fr.Index())
	rooms, _ := fr.ColumnByName("rooms")
	assert.True(t, rooms.IsNull(1))
	city, _ := fr.ColumnByName("city")
	assert.True(t, city.IsNull(2))
	tags, _ := fr.ColumnByName("tags")
	v, ok := tags.(*frame.StringColumn).Get(2)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, v)
}

func TestSampleSmallerThanStream(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(houses), ReaderOptions{SampleRows: 1})
	schema, err := r.InferSchema()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "rooms", "area", "city", "new"}, schema.Names())

	fr, err := r.ReadAll(schema)
	require.NoError(t, err)
	assert.Equal(t, 3, fr.Rows())
	// 52 fits the float column inferred from 70.5
	area, _ := fr.ColumnByName("area")
	x, ok := area.(*frame.FloatColumn).Get(1)
	assert.True(t, ok)
	assert.Equal(t, 52.0, x)
}

func TestIndexColumn(t *testing.T) {
	p := writeFile(t, "houses.jsonl", houses)
	fr, err := ReadFile(p, ReaderOptions{IndexColumn: "id"})
	require.NoError(t, err)
	assert.Equal(t, frame.Index{"h1", "h2", "h3"}, fr.Index())
	assert.Equal(t, []string{"rooms", "area", "city", "new", "tags"}, fr.Names())

	_, err = ReadFile(p, ReaderOptions{IndexColumn: "key"})
	assert.ErrorIs(t, err, frame.ErrMissingColumn)
}

func TestNotAnObject(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("[1,2]\n"), ReaderOptions{})
	_, err := r.InferSchema()
	assert.Error(t, err)
}

func TestWriteKeepsColumnOrder(t *testing.T) {
	fr, err := frame.FromColumns(frame.Index{"r1", "r2"},
		frame.FloatColumnOf("z", []float64{1.5, 2}),
		frame.StringColumnOf("a", []string{"x", "y"}),
	)
	require.NoError(t, err)
	fr.Column(1).SetNull(1)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fr, WriterOptions{IndexColumn: "id"}))
	assert.Equal(t, "{\"id\":\"r1\",\"z\":1.5,\"a\":\"x\"}\n{\"id\":\"r2\",\"z\":2,\"a\":null}\n", buf.String())

	err = Write(&buf, fr, WriterOptions{IndexColumn: "a"})
	assert.ErrorIs(t, err, frame.ErrDuplicateColumn)
}

func TestWriteRoundTrip(t *testing.T) {
	p := writeFile(t, "houses.jsonl", houses)
	fr, err := ReadFile(p, ReaderOptions{IndexColumn: "id"})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.jsonl.gz")
	require.NoError(t, WriteAll(out, fr, WriterOptions{IndexColumn: "id"}))

	back, err := ReadFile(out, ReaderOptions{IndexColumn: "id"})
	require.NoError(t, err)
	assert.Equal(t, fr.Index(), back.Index())
	assert.Equal(t, fr.Names(), back.Names())
	area, _ := back.ColumnByName("area")
	v, ok := area.(*frame.FloatColumn).Get(2)
	assert.True(t, ok)
	assert.Equal(t, 120.25, v)
	rooms, _ := back.ColumnByName("rooms")
	assert.True(t, rooms.IsNull(1))
}

package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wdm0006/framelearn/pkg/frame"
)

func sample(t *testing.T) *frame.Frame {
	s := frame.NewStringColumn("city", 4)
	s.Set(0, "york")
	s.Set(1, "leeds")
	s.Set(2, "york")
	s.SetNull(3)
	f, err := frame.FromColumns(nil,
		frame.FloatColumnOf("x", []float64{1, math.NaN(), 3, 8}),
		frame.IntColumnOf("n", []int64{2, 4, 6, 8}),
		s,
	)
	require.NoError(t, err)
	return f
}

func TestDescribe(t *testing.T) {
	p := Describe(sample(t), 1)
	require.Len(t, p, 3)

	assert.Equal(t, "float", p[0].Kind)
	assert.Equal(t, 3, p[0].Count)
	assert.Equal(t, 1, p[0].Nulls)
	assert.Equal(t, &NumStats{Min: 1, Max: 8, Mean: 4}, p[0].Num)

	assert.Equal(t, 5.0, p[1].Num.Mean)

	assert.Nil(t, p[2].Num)
	assert.Equal(t, []string{"york"}, p[2].Top)
	assert.Equal(t, 1, p[2].Nulls)
}

func TestProfileLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("profile", zap.Array("columns", Describe(sample(t), 2)))
	require.Equal(t, 1, logs.Len())
	cols, ok := logs.All()[0].ContextMap()["columns"].([]interface{})
	require.True(t, ok)
	assert.Len(t, cols, 3)
}

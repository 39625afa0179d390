package framelearn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wdm0006/framelearn/pkg/framelearn"
	"github.com/wdm0006/framelearn/pkg/logger"
	"github.com/wdm0006/framelearn/pkg/transform/scale"
)

func TestAdapterLogsFitAndDroppedColumns(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	x, _ := makeData(t, 10, 3, 50)
	fitOn, err := x.Select("c0")
	require.NoError(t, err)
	a := framelearn.MustNew(&scale.Standard{})
	require.NoError(t, a.Fit(fitOn, nil))
	_, err = a.Transform(x)
	require.NoError(t, err)

	fits := logs.FilterMessage("fit").All()
	require.Len(t, fits, 1)
	assert.Equal(t, int64(10), fits[0].ContextMap()["rows"])
	dropped := logs.FilterMessage("dropping columns not seen at fit").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, int64(2), dropped[0].ContextMap()["extra"])
}

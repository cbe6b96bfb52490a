package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestNamedWithoutBase(t *testing.T) {
	log := Named(nil, "svc")
	require.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNamedWithBase(t *testing.T) {
	base, err := New("debug")
	require.NoError(t, err)

	log := Named(base, "svc.tracker")
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.NotSame(t, base, log)
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { Must(New("loud")) })
}

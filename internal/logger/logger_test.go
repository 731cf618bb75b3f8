package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityQuiet))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-5))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(4))
}

func TestNewJSONWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{JSON: true, Output: &buf})
	l.Infow("loaded taxonomy", FieldCount, 3)
	require.NoError(t, l.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "loaded taxonomy", line["msg"])
	assert.EqualValues(t, 3, line[FieldCount])
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Verbosity: VerbosityQuiet, Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := New(Options{})
	assert.Same(t, l, OrNop(l))
}

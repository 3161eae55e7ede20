package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("engine", &buf, zerolog.DebugLevel)
	l.Debugw("prediction", map[string]any{"weather": "clear", "success_probability": 85.0})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "prediction", entry["message"])
	assert.Equal(t, "clear", entry["weather"])
	assert.Equal(t, 85.0, entry["success_probability"])
}

func TestZerologLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("engine", &buf, zerolog.WarnLevel)
	l.Debugf("hidden")
	l.Infof("hidden")
	l.Warnf("shown")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" error "))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("nothing")
}

func TestNewWithOptions(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	l := NewWithOptions("svc", Options{Level: "debug", Format: "console"})
	z, ok := l.(*ZerologLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.DebugLevel, z.log.GetLevel())

	z, ok = New("svc").(*ZerologLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.ErrorLevel, z.log.GetLevel())
}

package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level  string
		expect zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"Warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, ParseLevel(tt.level), tt.level)
	}
}

func TestSetup(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	Setup("error", "json")
	require.NotNil(t, Log)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	Setup("debug", "console")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestJSONFields(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	l := New(&buf, "json")
	l.Info("forward step",
		"batch", 2,
		"variant", "lstm",
		"elapsed", 1500*time.Microsecond,
		"err", errors.New("boom"),
		7, true,
		"orphan",
	)

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "forward step", event["message"])
	assert.Equal(t, float64(2), event["batch"])
	assert.Equal(t, "lstm", event["variant"])
	assert.Equal(t, "boom", event["err"])
	assert.Equal(t, true, event["7"])
	assert.Contains(t, event, "elapsed")
	assert.NotContains(t, event, "orphan")
}

func TestLevelFiltering(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	l := New(&buf, "json")
	l.Debug("hidden")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	l.Error("shown")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestConsoleFormat(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	New(&buf, "console").Info("model ready", "params", 42)
	assert.Contains(t, buf.String(), "model ready")
	assert.Contains(t, buf.String(), "params=42")
	assert.False(t, isTerminal(&buf))
}

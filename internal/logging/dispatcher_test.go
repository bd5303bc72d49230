package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestDispatcherLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(*KVLogger)
	}{
		{"debug", func(l *KVLogger) { l.Debug("msg", "kind", "kill") }},
		{"info", func(l *KVLogger) { l.Info("msg", "kind", "kill") }},
		{"error", func(l *KVLogger) { l.Error("msg", "kind", "kill") }},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			dl := NewDispatcherLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

			tt.log(dl)

			entry := decodeEntry(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "msg", entry["message"])
			assert.Equal(t, "kill", entry["kind"])
			assert.Equal(t, "dispatcher", entry["component"])
		})
	}
}

func TestDispatcherLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	dl.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestKVLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewComponentLogger(zerolog.New(&buf), "storage")

	l.Info("saved", "rows", 3, 7, "seven", "err", errors.New("disk"), "dangling")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "storage", entry["component"])
	assert.EqualValues(t, 3, entry["rows"])
	assert.Equal(t, "seven", entry["7"])
	assert.Equal(t, "disk", entry["err"])
	assert.Equal(t, "dangling", entry["!BADKEY"])
}

func TestNewZerolog(t *testing.T) {
	var console, file bytes.Buffer
	log := NewZerolog("warn", &console, nil, &file)

	log.Info().Msg("quiet")
	log.Warn().Str("path", "yapr.db").Msg("loud")

	assert.NotContains(t, file.String(), "quiet")
	assert.Contains(t, file.String(), "loud")
	assert.Contains(t, file.String(), "path=yapr.db")
	assert.Contains(t, console.String(), "loud")
}

func TestNewZerolog_NoWriters(t *testing.T) {
	log := NewZerolog("info")
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ZerologLevel("debug"))
	assert.Equal(t, zerolog.TraceLevel, ZerologLevel("TRACE"))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel("bogus"))
}

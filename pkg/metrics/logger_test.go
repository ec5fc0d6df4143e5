package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"Warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"silent", LevelSilent, false},
		{"off", LevelSilent, false},
		{"none", LevelSilent, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "console": FormatText, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "text", FormatText.String())
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WithOutput(&buf), WithName("keycheck"))

	log.Info("pair validated", zap.String("scheme", "Kyber1024"))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "keycheck")
	assert.Contains(t, out, "pair validated")
	assert.Contains(t, out, "Kyber1024")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(
		WithOutput(&buf),
		WithFormat(FormatJSON),
		WithName("keycheck"),
		WithFields(zap.String("run", "r1")),
	)

	log.Warn("mismatch", zap.Int("pair", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "mismatch", entry["msg"])
	assert.Equal(t, "keycheck", entry["logger"])
	assert.Equal(t, "r1", entry["run"])
	assert.Equal(t, float64(3), entry["pair"])
	assert.Contains(t, entry, "time")
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WithOutput(&buf), WithLevel(zapcore.WarnLevel))

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, buf.String(), "\tinfo")
}

func TestLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WithOutput(&buf), WithLevel(LevelSilent))

	log.Error("should not appear")
	assert.Zero(t, buf.Len())
}

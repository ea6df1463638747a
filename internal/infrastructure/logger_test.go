package infrastructure

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected zerolog.Level
	}{
		{name: "none disables logging", input: "none", expected: zerolog.Disabled},
		{name: "upper case none", input: "NONE", expected: zerolog.Disabled},
		{name: "error", input: "error", expected: zerolog.ErrorLevel},
		{name: "warn", input: "WARN", expected: zerolog.WarnLevel},
		{name: "info", input: "info", expected: zerolog.InfoLevel},
		{name: "debug", input: "Debug", expected: zerolog.DebugLevel},
		{name: "trace", input: "trace", expected: zerolog.TraceLevel},
		{name: "empty falls back to info", input: "", expected: zerolog.InfoLevel},
		{name: "unknown falls back to info", input: "verbose", expected: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, ParseLevel(tc.input))
		})
	}
}

func TestNewLogger_LegacyLevelWins(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newLogger(config.LoggingConfig{Level: "debug", AMQPLevel: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "connection").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))

	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "connection", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_NoneIsSilent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := newLogger(config.LoggingConfig{Level: "none", Format: "json"}, &buf)
	logger.Error().Msg("dropped")

	assert.Zero(t, buf.Len())
}

package infrastructure

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/rs/zerolog"
)

const (
	formatConsole = "console"
)

// Logger is the service wide structured logger.
type Logger struct {
	zerolog.Logger
}

// New builds the logger described by cfg. An unknown level falls back to info.
func New(cfg config.LoggingConfig) Logger {
	return newLogger(cfg, os.Stdout)
}

// NewTestLogger discards everything.
func NewTestLogger() Logger {
	return Logger{Logger: zerolog.New(io.Discard)}
}

func newLogger(cfg config.LoggingConfig, out io.Writer) Logger {
	if strings.EqualFold(cfg.Format, formatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(ParseLevel(cfg.EffectiveLevel())).
		With().
		Timestamp().
		Logger()

	return Logger{Logger: logger}
}

// ParseLevel maps none, error, warn, info, debug and trace onto zerolog levels, ignoring case.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))

	if level == config.LogLevelNone {
		return zerolog.Disabled
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}

	return parsed
}

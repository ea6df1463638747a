package queue

import (
	"time"

	"github.com/rs/zerolog"
)

// LoggerAdapter adapts a zerolog.Logger to the queue Logger interface.
type LoggerAdapter struct {
	logger zerolog.Logger
}

// NewLoggerAdapter creates a new logger adapter tagging every entry with the queue component.
func NewLoggerAdapter(logger zerolog.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		logger: logger.With().Str("component", "queue").Logger(),
	}
}

func (l *LoggerAdapter) Debug() LogEvent {
	return zerologEvent{event: l.logger.Debug()}
}

func (l *LoggerAdapter) Info() LogEvent {
	return zerologEvent{event: l.logger.Info()}
}

func (l *LoggerAdapter) Warn() LogEvent {
	return zerologEvent{event: l.logger.Warn()}
}

func (l *LoggerAdapter) Error() LogEvent {
	return zerologEvent{event: l.logger.Error()}
}

// zerologEvent wraps *zerolog.Event. A nil event, returned by zerolog for disabled levels, is safe to use.
type zerologEvent struct {
	event *zerolog.Event
}

func (e zerologEvent) Msg(msg string) {
	e.event.Msg(msg)
}

func (e zerologEvent) Err(err error) LogEvent {
	return zerologEvent{event: e.event.Err(err)}
}

func (e zerologEvent) Str(key, value string) LogEvent {
	return zerologEvent{event: e.event.Str(key, value)}
}

func (e zerologEvent) Int(key string, value int) LogEvent {
	return zerologEvent{event: e.event.Int(key, value)}
}

func (e zerologEvent) Dur(key string, value time.Duration) LogEvent {
	return zerologEvent{event: e.event.Dur(key, value)}
}

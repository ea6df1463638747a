package queue

import "time"

// Logger defines a small leveled logging interface shaped after zerolog's fluent API.
type Logger interface {
	Debug() LogEvent
	Info() LogEvent
	Warn() LogEvent
	Error() LogEvent
}

// LogEvent defines a single structured log entry under construction.
type LogEvent interface {
	Msg(string)
	Err(error) LogEvent
	Str(string, string) LogEvent
	Int(string, int) LogEvent
	Dur(string, time.Duration) LogEvent
}

type noopLogger struct{}

type noopEvent struct{}

func (noopLogger) Debug() LogEvent { return noopEvent{} }
func (noopLogger) Info() LogEvent { return noopEvent{} }
func (noopLogger) Warn() LogEvent { return noopEvent{} }
func (noopLogger) Error() LogEvent { return noopEvent{} }

func (noopEvent) Msg(string) {}
func (e noopEvent) Err(error) LogEvent { return e }
func (e noopEvent) Str(string, string) LogEvent { return e }
func (e noopEvent) Int(string, int) LogEvent { return e }
func (e noopEvent) Dur(string, time.Duration) LogEvent { return e }

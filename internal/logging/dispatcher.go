package logging

import (
	"fmt"
	"log/slog"
)

// DispatcherLogger adapts a *slog.Logger to the dispatcher.Logger interface.
// Values implementing fmt.Stringer, such as event types and buttons, are logged
// by their string form.
type DispatcherLogger struct {
	logger *slog.Logger
}

// NewDispatcherLogger creates a new DispatcherLogger tagged with component=dispatcher.
func NewDispatcherLogger(logger *slog.Logger) *DispatcherLogger {
	return &DispatcherLogger{logger: logger.With("component", "dispatcher")}
}

// Debug logs a debug message with optional key-value pairs.
func (l *DispatcherLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, toArgs(keysAndValues)...)
}

// Info logs an info message with optional key-value pairs.
func (l *DispatcherLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, toArgs(keysAndValues)...)
}

// Error logs an error message with optional key-value pairs.
func (l *DispatcherLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, toArgs(keysAndValues)...)
}

func toArgs(keysAndValues []any) []any {
	args := make([]any, len(keysAndValues))
	for i, v := range keysAndValues {
		if s, ok := v.(fmt.Stringer); ok && i%2 == 1 {
			v = s.String()
		}
		args[i] = v
	}
	return args
}

package logging

import (
	"context"
	"maps"
	"os"

	"github.com/rs/zerolog"
)

// DefaultLogger is the standard logger implementation backed by zerolog.
// Debug/Info/Warn/Error are written to stderr as structured JSON; when
// stderr is a terminal the zerolog console writer is used instead.
type DefaultLogger struct {
	zl     zerolog.Logger
	level  Level
	fields Fields
}

// NewDefaultLogger creates a new zerolog-backed logger
func NewDefaultLogger() *DefaultLogger {
	var zl zerolog.Logger
	if isTerminal() {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return &DefaultLogger{
		zl:     zl,
		level:  InfoLevel,
		fields: make(Fields),
	}
}

// NewLoggerWithWriter creates a logger writing to an arbitrary writer.
// Useful for capturing output in tests.
func NewLoggerWithWriter(zl zerolog.Logger) *DefaultLogger {
	return &DefaultLogger{
		zl:     zl,
		level:  InfoLevel,
		fields: make(Fields),
	}
}

// isTerminal checks if stderr is attached to a character device
func isTerminal() bool {
	if fileInfo, _ := os.Stderr.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func (d *DefaultLogger) mergeFields(fields ...Fields) map[string]any {
	allFields := make(map[string]any, len(d.fields))
	maps.Copy(allFields, d.fields)
	for _, f := range fields {
		maps.Copy(allFields, f)
	}
	return allFields
}

func (d *DefaultLogger) emit(ev *zerolog.Event, msg string, fields ...Fields) {
	merged := d.mergeFields(fields...)
	if len(merged) > 0 {
		ev = ev.Fields(merged)
	}
	ev.Msg(msg)
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	if d.level > DebugLevel {
		return
	}
	d.emit(d.zl.Debug(), msg, fields...)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	if d.level > InfoLevel {
		return
	}
	d.emit(d.zl.Info(), msg, fields...)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	if d.level > WarnLevel {
		return
	}
	d.emit(d.zl.Warn(), msg, fields...)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	if d.level > ErrorLevel {
		return
	}
	d.emit(d.zl.Error().Err(err), msg, fields...)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	// zerolog's Fatal exits the process after writing the event
	d.emit(d.zl.Fatal().Err(err), msg, fields...)
}

// WithFields returns a new logger with preset fields merged in
func (d *DefaultLogger) WithFields(fields Fields) Logger {
	newFields := make(Fields, len(d.fields)+len(fields))
	maps.Copy(newFields, d.fields)
	maps.Copy(newFields, fields)

	return &DefaultLogger{
		zl:     d.zl,
		level:  d.level,
		fields: newFields,
	}
}

// WithContext extracts preset fields from the context if present
func (d *DefaultLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := ctx.Value(fieldsContextKey{}).(Fields); ok {
		return d.WithFields(fields)
	}
	return d
}

// SetLevel sets the minimum log level
func (d *DefaultLogger) SetLevel(level Level) {
	d.level = level
}

type fieldsContextKey struct{}

// ContextWithFields attaches logging fields to a context for WithContext
func ContextWithFields(ctx context.Context, fields Fields) context.Context {
	return context.WithValue(ctx, fieldsContextKey{}, fields)
}

// ParseLevel converts a level name to a Level. Unknown names return InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "info", "":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// Package logger wraps zerolog with the project's field conventions:
// compact T/L/M field names and helpers for deriving per-service and
// per-request loggers.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type (
	Logger struct {
		zerolog.Logger
	}

	LoggerOptions struct {
		Debug bool
		// Output overrides the destination; defaults to stdout.
		Output io.Writer
	}
)

func NewLogger(options LoggerOptions) *Logger {
	output := options.Output
	if output == nil {
		output = os.Stdout
	}
	level := zerolog.InfoLevel
	if options.Debug {
		level = zerolog.DebugLevel
	}

	zerolog.TimestampFieldName = "T"
	zerolog.LevelFieldName = "L"
	zerolog.MessageFieldName = "M"
	zerolog.LevelDebugValue = "DEBUG"
	zerolog.LevelInfoValue = "INFO"
	zerolog.LevelWarnValue = "WARN"
	zerolog.LevelErrorValue = "ERROR"

	l := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{l}
}

// NewNopLogger returns a logger that discards everything; handy in
// tests.
func NewNopLogger() *Logger {
	return &Logger{zerolog.Nop()}
}

func (l *Logger) SpawnForService(serviceName string) *Logger {
	return &Logger{l.With().Str("service", serviceName).Logger()}
}

func (l *Logger) SpawnForContext(reqCount string, reqID string) *Logger {
	return &Logger{l.With().Str("reqCount", reqCount).Str("reqID", reqID).Logger()}
}

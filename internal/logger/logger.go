package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the root logger. LOG_LEVEL picks the level (default info) and
// LOG_FORMAT=console switches to human-readable output for local runs.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || os.Getenv("LOG_LEVEL") == "" {
		level = zerolog.InfoLevel
	}
	return WithLevel(level)
}

// WithLevel builds a logger at a fixed level.
func WithLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var out io.Writer = os.Stdout
	if os.Getenv("LOG_FORMAT") == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}

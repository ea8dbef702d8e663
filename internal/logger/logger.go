// Package logger wraps zerolog with the constructors used across the
// project tracker. All application logging goes through a *Logger so that
// every entry carries the role field and a timestamp.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available
// directly on *Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger writing to stdout tagged with the given
// role label (e.g. "server").
func New(role string) *Logger {
	return NewWithWriter(role, os.Stdout)
}

// NewWithWriter is New with an explicit output, used by tests.
func NewWithWriter(role string, w io.Writer) *Logger {
	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

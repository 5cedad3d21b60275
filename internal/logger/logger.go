// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors and context helpers used throughout habitkeeper.
//
// Logger embeds zerolog.Logger, so the full zerolog API is available on
// *Logger. Components receive a *Logger at construction and derive
// run-scoped loggers via FromContext.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given role label (e.g. "client",
// "sync"). Entries are JSON on stdout with a timestamp and a "func" caller
// field carrying the fully-qualified function name.
func New(role string) *Logger {
	return NewWithOutput(role, os.Stdout)
}

// NewWithOutput is New with an explicit output writer, used by the client
// binary to log into a file next to the executable.
func NewWithOutput(role string, out io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithContext attaches the logger to ctx so per-run fields survive across
// layer boundaries.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx. If none was
// attached zerolog falls back to its global logger, so the result is never
// nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

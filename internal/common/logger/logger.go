// Package logger configures the process-wide zerolog logger. Production
// output is plain JSON on stdout for the log shipper; debug runs switch to
// a human-readable console writer.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init must be called once at startup, before anything logs.
func Init(service string, debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	log.Logger = newLogger(os.Stdout, service, debug)
}

func newLogger(out io.Writer, service string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// The helpers below proxy the global logger so call sites need a single
// import and no logger plumbing through constructors.

func Debug() *zerolog.Event { return log.Debug() }

func Info() *zerolog.Event { return log.Info() }

func Warn() *zerolog.Event { return log.Warn() }

func Error() *zerolog.Event { return log.Error() }

// Fatal logs and then exits the process.
func Fatal() *zerolog.Event { return log.Fatal() }

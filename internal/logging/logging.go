// Package logging configures the diagnostic logger for the loglady CLI.
// Diagnostics go to stderr so they never mix with rendered changelog output.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05"

// New returns a console logger writing to stderr.
// The default level is warn; verbose lowers it to debug.
func New(verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit sink, for tests.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

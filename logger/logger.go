package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init builds the diagnostic logger. Diagnostics go to stderr so stdout only
// carries command output. Verbose lowers the level to debug, which surfaces
// the per-source failures the group reconciliation tolerates.
func Init(verbose bool) zerolog.Logger {
	l := New(os.Stderr, verbose)
	log.Logger = l
	return l
}

func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("app", "cg").
		Logger()
}

package swiftgrep

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// newLogger builds the logger used for the error-reporting edges of a run
// (per-file and per-directory failures, startup failures). The hot path —
// walk_step and the matcher's inner scan loop — never touches this logger.
func newLogger() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

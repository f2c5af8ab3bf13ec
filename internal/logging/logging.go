package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes a zerolog.Logger based on the requested format.
// format can be "text" (human-friendly console) or "json" (structured).
// Logs go to stderr so report output on stdout stays clean.
func Setup(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// WithLevel returns log filtered at level ("debug", "info", "warn", ...).
// An unknown level leaves log unchanged.
func WithLevel(log zerolog.Logger, level string) zerolog.Logger {
	if level == "" {
		return log
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, keeping default")
		return log
	}
	return log.Level(lvl)
}

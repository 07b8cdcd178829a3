package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger tuned for the given environment: human-readable
// console output in development, JSON everywhere else.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

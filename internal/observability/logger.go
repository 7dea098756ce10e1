package observability

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. format "text" gets a console
// writer, anything else is JSON.
func NewLogger(level, format string) zerolog.Logger {
	var output io.Writer = os.Stdout
	if format == "text" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

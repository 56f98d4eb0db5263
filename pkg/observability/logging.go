package observability

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. format "console" selects the human
// readable writer, anything else emits JSON lines.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `envconfig:"LEVEL" default:"info"`
	// Format is json or console.
	Format string `envconfig:"FORMAT" default:"console"`
	// TimeFormat is RFC3339, Unix or a Go layout.
	TimeFormat string `envconfig:"TIME_FORMAT" default:"RFC3339"`
	// Output is stdout, stderr or a file path.
	Output string `envconfig:"OUTPUT" default:"stderr"`
}

// Setup builds the process logger from cfg and installs it as the global
// zerolog logger. The returned closer releases a log file, if one was opened.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var (
		out    io.Writer
		closer io.Closer = io.NopCloser(nil)
	)

	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("opening log file: %w", err)
		}

		out, closer = f, f
	}

	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = timeFormat(cfg.TimeFormat)

	l := New(out, cfg.Format, zerolog.TimeFieldFormat)
	log.Logger = l

	return l, closer, nil
}

// New returns a timestamped logger writing to w in the given format.
func New(w io.Writer, format, timeLayout string) zerolog.Logger {
	if !strings.EqualFold(format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeLayout}
	}

	return zerolog.New(w).With().Timestamp().Logger()
}

func timeFormat(name string) string {
	switch strings.ToLower(name) {
	case "", "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	}

	return name
}

// WithComponent returns the global logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

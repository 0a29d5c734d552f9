package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "fxpulse"

var (
	base        zerolog.Logger
	initialized atomic.Bool
)

// Init configures the global JSON logger. It may be called again to pick up new settings.
//
// Environment variables (optional):
//   - LOG_LEVEL: trace|debug|info|warn|error|disabled (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter is Init with an explicit sink; tests use it to capture output.
func InitWithWriter(out io.Writer) {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger().Level(level)
	initialized.Store(true)
}

// L returns the global logger, initializing it from the environment on first use.
func L() *zerolog.Logger {
	if !initialized.Load() {
		Init()
	}
	return &base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

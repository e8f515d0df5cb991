// Package logger builds the zerolog logger shared by bridgectl and the
// observer it drives.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"

	appName = "bridgectl"
)

// New logs to stderr so command output on stdout stays parseable.
func New(logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, logLevel, logFormat, logSampler)
}

// NewWithWriter is New writing to out. Any format other than FormatJSON
// renders human readable lines.
func NewWithWriter(out io.Writer, logLevel int, logFormat string, logSampler bool) zerolog.Logger {
	if logFormat != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(zerolog.Level(logLevel)).
		With().
		Timestamp().
		Str("app", appName).
		Logger()

	// simulate emits one line per event; keep one in five when sampling
	if logSampler {
		l = l.Sample(&zerolog.BasicSampler{N: 5})
	}
	return l
}

package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLevel converts a config log level to a zerolog level.
func ZerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewZerolog returns a console-format zerolog logger writing to every
// non-nil writer. Only the first writer is coloured.
func NewZerolog(level string, writers ...io.Writer) zerolog.Logger {
	var outs []io.Writer
	for _, w := range writers {
		if w == nil {
			continue
		}
		outs = append(outs, zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    len(outs) > 0,
		})
	}
	if len(outs) == 0 {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.MultiLevelWriter(outs...)).
		Level(ZerologLevel(level)).
		With().
		Timestamp().
		Logger()
}

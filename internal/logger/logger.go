// Package logger builds the zerolog logger shared by the service.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a logger writing to w with the service name on every event.
// format is "json" or "console"; level is any zerolog level name and
// defaults to info when empty. Use .Stack() on error events to attach a
// stack trace.
func New(w io.Writer, service, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logger: invalid level %q: %w", level, err)
		}
		lvl = parsed
	}

	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	out := w
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: true}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Str("service", service).
		Timestamp().
		Logger(), nil
}

package cmd

import (
	"io"
	"log/slog"

	"dronedelivery/internal/pkg/errs"
)

// NewLogger builds the process logger. format is "text" or "json"; level is
// one of debug, info, warn, error.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, errs.NewValueIsInvalidError("LOG_FORMAT")
	}
}

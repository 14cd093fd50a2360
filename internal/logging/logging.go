// Package logging builds the slog loggers used by the reltime command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable key=value form.
	FormatText Format = iota
	// FormatJSON outputs one JSON object per record.
	FormatJSON
)

// ParseFormat maps a config or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("invalid log format %q: must be text or json", s)
}

// New returns a logger writing to w. Verbose enables debug records; otherwise
// only warnings and errors are emitted.
func New(w io.Writer, format Format, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects how log records are rendered.
type Format string

const (
	// FormatText is the standard slog key=value format.
	FormatText Format = "text"
	// FormatCompact prints one line per record with attributes as JSON:
	//	15:04:05  INFO session started {"model":"gpt-4o-mini"}
	FormatCompact Format = "compact"
	// FormatJSON is the standard slog JSON format.
	FormatJSON Format = "json"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatText

// ParseFormat parses a format name in any case. An empty value means
// DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return DefaultFormat, nil
	case FormatText, FormatCompact, FormatJSON:
		return f, nil
	default:
		return DefaultFormat, fmt.Errorf("unknown log format %q (want text, compact or json)", s)
	}
}

// New returns a logger writing records at or above level to w.
func New(w io.Writer, format Format, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, format, level))
}

// NewHandler returns the slog.Handler for format.
func NewHandler(w io.Writer, format Format, level slog.Leveler) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatCompact:
		return NewCompactHandler(w, level, isTerminal(w))
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
}

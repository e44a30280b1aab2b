// Package logging builds the application's charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/internal/config"
)

// New creates a logger writing to w with timestamps and caller reporting
// enabled. The writer defaults to os.Stderr.
func New(w io.Writer, cfg config.LogConfig) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	formatter, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           level,
		Formatter:       formatter,
	}), nil
}

// ParseFormat maps a config format name to a formatter. Empty means text.
func ParseFormat(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("logging: unknown format %q", name)
	}
}

// Component returns a child logger tagged with the component name.
func Component(l *log.Logger, name string, kv ...any) *log.Logger {
	return l.With(append([]any{"component", name}, kv...)...)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Package logging builds the leveled logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level string
	// File receives the log when set. The TUI always logs to a file because
	// it owns the terminal.
	File     string
	Fallback io.Writer
}

// New returns a logger and a closer for its file, if one was opened.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)

	var w io.Writer = opts.Fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "tarefa",
		ReportTimestamp: opts.File != "",
		Formatter:       log.LogfmtFormatter,
	})
	if opts.File == "" {
		logger.SetFormatter(log.TextFormatter)
	}
	return logger, closer, nil
}

// ParseLevel maps a config value to a level, defaulting to info.
func ParseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

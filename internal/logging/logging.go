// Package logging sets up pixelcard's structured logger.
//
// The TUI owns stdout and stderr while it runs, so interactive sessions log
// to a file in the XDG state directory, or nowhere. Servers log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

const logRelPath = "pixelcard/pixelcard.log"

// Options selects where and how much to log.
type Options struct {
	// Level is off, debug, info, warn or error. Empty means off.
	Level string
	// File overrides the log file path.
	File string
	// Stderr logs to stderr instead of a file.
	Stderr bool
	// Prefix is shown before every message.
	Prefix string
}

// Setup builds a logger for opts, installs it as the default logger and
// returns it with a close function for the underlying file.
func Setup(opts Options) (*log.Logger, func() error, error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if level == "" || level == "off" {
		logger := log.New(io.Discard)
		log.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if !opts.Stderr {
		path, err := Path(opts.File)
		if err != nil {
			return nil, nil, err
		}
		// #nosec G304 - path is the user's log file
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	log.SetDefault(logger)
	return logger, closeFn, nil
}

// Path returns the log file path, creating its directory. An empty file
// selects the XDG state location.
func Path(file string) (string, error) {
	if file == "" {
		path, err := xdg.StateFile(logRelPath)
		if err != nil {
			return "", fmt.Errorf("failed to get log path: %w", err)
		}
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return file, nil
}

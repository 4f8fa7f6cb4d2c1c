package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// OpenLogFile creates a logger appending to path. Terminal frontends log to a
// file so log lines do not land on the game screen. An empty path discards
// all output. The returned close function is never nil.
func OpenLogFile(path, prefix string, debug bool) (*log.Logger, func() error, error) {
	if path == "" {
		return NewLogger(io.Discard, prefix, debug), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewLogger(f, prefix, debug), f.Close, nil
}

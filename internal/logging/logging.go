// Package logging sets up file-backed structured logging. The terminal
// belongs to the TUI, so log output never goes to stdout or stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing to the given file, creating parent
// directories as needed. When the file cannot be opened (or path is empty)
// the logger is disabled rather than failing startup.
func New(path string, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	w := openLogFile(path)
	if w == nil {
		return zerolog.Nop()
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func openLogFile(path string) io.Writer {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}

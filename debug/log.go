// Package debug sets up file-backed logging for TUI runs, where bubbletea
// owns the terminal and stderr output would corrupt the display.
package debug

import (
	"log/slog"
	"os"
	"path/filepath"
)

// LogPath returns ~/.config/midimix/debug.log.
func LogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midimix", "debug.log"), nil
}

// FileLogger opens the debug log (truncating any previous run) and returns a
// slog.Logger writing there. The close func flushes and releases the file.
func FileLogger() (*slog.Logger, func(), error) {
	path, err := LogPath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, err
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)
	logger.Info("debug logging started")

	return logger, func() { f.Close() }, nil
}

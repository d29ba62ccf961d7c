package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New builds the application logger. The UI owns the terminal while the
// program runs, so log output goes to the file at path; an empty path yields
// a logger that discards everything. The returned close function releases the
// file and is safe to call for the discarding logger too.
func New(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f.Close, nil
}

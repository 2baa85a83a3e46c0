package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// OpenTrail opens path for appending and returns a text logger over it.
// The returned closer releases the file.
func OpenTrail(path string) (*slog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create audit log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}

	return slog.New(slog.NewTextHandler(f, nil)), f, nil
}

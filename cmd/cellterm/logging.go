package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const maxLogSize = 10 * 1024 * 1024

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging returns a file logger when debug is set, otherwise a discarding one
// The terminal owns stdout and stderr while a session is active, so logs never go there
func setupLogging(debug bool, path string) (*log.Logger, io.Closer, error) {
	if !debug || path == "" {
		return log.New(io.Discard), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}

	// Rotate oversized log
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, nil, fmt.Errorf("log rotate: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
		Prefix:          "cellterm",
	})
	logger.Info("=== cellterm started ===")
	return logger, f, nil
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// OpenLogFile creates dir if needed and opens a timestamped log file for appending
func OpenLogFile(dir, service string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	name := filepath.Join(dir, fmt.Sprintf("%s_%s.log", service, timestamp))

	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// Output returns stdout, or stdout teed into a log file under dir when dir is set.
// The returned closer is never nil.
func Output(dir, service string) (io.Writer, io.Closer, error) {
	if dir == "" {
		return os.Stdout, nopCloser{}, nil
	}

	file, err := OpenLogFile(dir, service)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stdout, file), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

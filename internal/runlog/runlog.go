// Package runlog keeps the local application log and mirrors it to the
// bucket after every run, so the latest log is always readable next to the
// data it describes.
package runlog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Store is the upload surface the mirror needs.
type Store interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64) error
}

// Log owns the local log file.
type Log struct {
	path string
	file *os.File
}

// Open opens (or creates) the local log file for appending.
func Open(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &Log{path: path, file: file}, nil
}

// Handler returns an slog handler writing JSON lines to stdout and the
// local file.
func (l *Log) Handler() slog.Handler {
	return slog.NewJSONHandler(io.MultiWriter(os.Stdout, l.file), nil)
}

// Upload mirrors the full local log to the bucket at key, overwriting the
// previous copy. The caller decides what to do with the error; by contract
// it can only be reported locally.
func (l *Log) Upload(ctx context.Context, store Store, key string) error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read log file %s: %w", l.path, err)
	}
	if err := store.Put(ctx, key, bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("upload log file: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.file.Close()
}

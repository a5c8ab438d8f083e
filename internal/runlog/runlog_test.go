package runlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

type stubStore struct {
	key  string
	data string
	err  error
}

func (s *stubStore) Put(ctx context.Context, key string, reader io.Reader, size int64) error {
	if s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.key = key
	s.data = string(b)
	return nil
}

func TestLog_HandlerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	logger := slog.New(log.Handler())
	logger.Info("moved object", "key", "sr1_a.csv")

	store := &stubStore{}
	if err := log.Upload(context.Background(), store, "dct-sales/application_logs.log"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if store.key != "dct-sales/application_logs.log" {
		t.Fatalf("unexpected upload key %q", store.key)
	}
	if !strings.Contains(store.data, "moved object") {
		t.Fatalf("expected log line in upload, got %q", store.data)
	}
}

func TestLog_UploadOverwritesWithFullContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	logger := slog.New(log.Handler())
	store := &stubStore{}

	logger.Info("first run")
	if err := log.Upload(context.Background(), store, "k"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	logger.Info("second run")
	if err := log.Upload(context.Background(), store, "k"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	// The second mirror carries the whole accumulated log.
	if !strings.Contains(store.data, "first run") || !strings.Contains(store.data, "second run") {
		t.Fatalf("expected both runs in mirrored log, got %q", store.data)
	}
}

func TestLog_UploadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	store := &stubStore{err: errors.New("put failed")}
	if err := log.Upload(context.Background(), store, "k"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOpen_BadPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "app.log")); err == nil {
		t.Fatal("expected error for unreachable path")
	}
}

package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dctops/salesmover/internal/model"
	"github.com/dctops/salesmover/internal/storage"
)

// ObjectStore is the bucket surface the organizer needs.
type ObjectStore interface {
	ListRootObjects(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	Remove(ctx context.Context, key string) error
	PutFile(ctx context.Context, key, filePath string) error
}

// Publisher sends one notification message.
type Publisher interface {
	Publish(ctx context.Context, subject, message string) error
}

// Service files root-level report objects under per-representative
// directories and notifies each representative that received new files.
type Service struct {
	store     ObjectStore
	publisher Publisher
	prefix    string // destination prefix, ends with "/"
	sourceDir string // local CSV directory, empty disables ingest
}

func NewService(store ObjectStore, publisher Publisher, prefix, sourceDir string) *Service {
	return &Service{store: store, publisher: publisher, prefix: prefix, sourceDir: sourceDir}
}

// Run executes one full pass: local CSV ingest, reorganize, notify.
// Per-object and per-publish failures are logged and skipped; only
// failures that invalidate the whole pass are returned.
func (s *Service) Run(ctx context.Context, runID model.RunID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	if s.sourceDir != "" {
		if err := s.ingestLocalCSVs(ctx); err != nil {
			return fmt.Errorf("ingest local csvs: %w", err)
		}
	}

	moved, err := s.reorganize(ctx)
	if err != nil {
		return fmt.Errorf("reorganize: %w", err)
	}

	s.notify(ctx, moved)

	slog.InfoContext(ctx, "run complete", "run_id", runID, "reps_notified", len(moved))
	return nil
}

// reorganize moves every root-level object to prefix/<rep>/<filename> and
// returns the filenames newly moved per representative. An object whose
// destination already exists is deduplicated: the root copy is deleted and
// the representative is not counted as touched, so no notification goes out
// for files that were already filed.
func (s *Service) reorganize(ctx context.Context) (map[string][]string, error) {
	keys, err := s.store.ListRootObjects(ctx)
	if err != nil {
		return nil, err
	}

	moved := make(map[string][]string)
	for _, key := range keys {
		rep, err := storage.RepFromFilename(key)
		if err != nil {
			slog.ErrorContext(ctx, "skipping object", "key", key, "error", err)
			continue
		}

		dst := storage.DestinationKey{Prefix: s.prefix, Rep: rep, Filename: key}.Key()

		exists, err := s.store.Exists(ctx, dst)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check destination", "key", key, "dst", dst, "error", err)
			continue
		}

		if exists {
			slog.InfoContext(ctx, "destination already exists, removing root copy", "key", key, "dst", dst)
			if err := s.store.Remove(ctx, key); err != nil {
				slog.ErrorContext(ctx, "failed to remove duplicate", "key", key, "error", err)
			}
			continue
		}

		if err := s.store.Copy(ctx, key, dst); err != nil {
			slog.ErrorContext(ctx, "failed to copy object", "key", key, "dst", dst, "error", err)
			continue
		}
		// The new copy is in place, so the rep counts as touched even if
		// the cleanup below fails; next run will only deduplicate.
		moved[rep] = append(moved[rep], key)

		if err := s.store.Remove(ctx, key); err != nil {
			slog.ErrorContext(ctx, "failed to remove original after copy", "key", key, "error", err)
			continue
		}
		slog.InfoContext(ctx, "moved object", "key", key, "dst", dst)
	}

	return moved, nil
}

// notify publishes one message per representative with newly moved files.
// A failed publish does not stop the remaining representatives.
func (s *Service) notify(ctx context.Context, moved map[string][]string) {
	reps := make([]string, 0, len(moved))
	for rep := range moved {
		reps = append(reps, rep)
	}
	sort.Strings(reps)

	for _, rep := range reps {
		subject := fmt.Sprintf("Files moved for rep %s", rep)
		message := fmt.Sprintf("Files moved for rep %s: %s", rep, strings.Join(moved[rep], ", "))
		if err := s.publisher.Publish(ctx, subject, message); err != nil {
			slog.ErrorContext(ctx, "failed to publish notification", "rep", rep, "error", err)
			continue
		}
		slog.InfoContext(ctx, "notification sent", "rep", rep, "files", len(moved[rep]))
	}
}

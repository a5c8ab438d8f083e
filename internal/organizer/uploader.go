package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ingestLocalCSVs uploads CSV files from the local source directory to the
// bucket root, where the next reorganize pass picks them up. Files already
// present in the bucket are skipped so repeated runs do not re-upload.
func (s *Service) ingestLocalCSVs(ctx context.Context) error {
	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return fmt.Errorf("read source dir %s: %w", s.sourceDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		exists, err := s.store.Exists(ctx, entry.Name())
		if err != nil {
			slog.ErrorContext(ctx, "failed to check for existing upload", "file", entry.Name(), "error", err)
			continue
		}
		if exists {
			slog.InfoContext(ctx, "file already uploaded, skipping", "file", entry.Name())
			continue
		}

		path := filepath.Join(s.sourceDir, entry.Name())
		if err := s.store.PutFile(ctx, entry.Name(), path); err != nil {
			slog.ErrorContext(ctx, "failed to upload file", "file", entry.Name(), "error", err)
			continue
		}
		slog.InfoContext(ctx, "uploaded file", "file", entry.Name())
	}

	return nil
}

// Package app holds the catalog services. Each service owns the business
// rules for one resource and runs multi-step changes in a single transaction.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

// FileStore keeps uploaded assets. Paths returned by Store are relative.
type FileStore interface {
	Store(bucket string, u storage.Upload) (string, error)
	Remove(path string) error
}

// stagedFiles tracks files written and replaced during one operation so the
// caller can undo new files on failure and drop old ones on success.
type stagedFiles struct {
	files    FileStore
	log      *logger.Logger
	added    []string
	replaced []string
}

func newStagedFiles(files FileStore, log *logger.Logger) *stagedFiles {
	return &stagedFiles{files: files, log: log}
}

// store saves u when present. A nil upload yields an empty path.
func (s *stagedFiles) store(bucket string, u storage.Upload) (string, error) {
	if u == nil {
		return "", nil
	}
	path, err := s.files.Store(bucket, u)
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", bucket, err)
	}
	s.added = append(s.added, path)
	return path, nil
}

// replace schedules old for removal once the operation succeeds.
func (s *stagedFiles) replace(old string) {
	if old != "" {
		s.replaced = append(s.replaced, old)
	}
}

func (s *stagedFiles) commit() {
	removeFiles(s.files, s.log, s.replaced...)
}

func (s *stagedFiles) rollback() {
	removeFiles(s.files, s.log, s.added...)
}

// removeFiles deletes paths best effort; failures are only logged.
func removeFiles(files FileStore, log *logger.Logger, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := files.Remove(p); err != nil {
			log.Warn("Failed to remove file", "path", p, "error", err)
		}
	}
}

// verifyIDs fails with ErrNotFound when any id has no row in table.
func verifyIDs(ctx context.Context, tx *store.DB, table, kind string, ids []int) error {
	missing, err := tx.MissingIDs(ctx, table, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s %v: %w", kind, missing, domain.ErrNotFound)
	}
	return nil
}

// requireText trims v and records a validation problem when it is empty.
func requireText(verr *domain.ValidationError, field string, v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		verr.Add(field, "is required")
		return ""
	}
	return strings.TrimSpace(*v)
}

// optionalText records a problem when v is supplied but blank.
func optionalText(verr *domain.ValidationError, field string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		verr.Add(field, "must not be empty")
	}
}

func noMatch(kind, query string) error {
	return fmt.Errorf("no %s match %q: %w", kind, query, domain.ErrNotFound)
}

// Package backup snapshots folder trees before mutating operations and
// restores them on demand. Snapshots are immutable once written and are
// never pruned by this process.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/logging"
	"github.com/folderguard/folderguard/internal/shared/paths"
)

// ErrSnapshotNotFound is returned by Rollback when the chosen snapshot
// directory no longer exists.
var ErrSnapshotNotFound = errors.New("backup snapshot not found")

// Snapshot describes one complete timestamped copy of a source folder.
type Snapshot struct {
	SourceFolder string    `json:"source_folder"`
	Path         string    `json:"path"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary reports per-entry outcomes of a best-effort tree walk.
type Summary struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// Store owns the process-wide backup root directory.
type Store struct {
	root   string
	logger *logging.Logger
	now    func() time.Time
}

// NewStore creates the store and its root directory (idempotent). The
// root lives for the process lifetime.
func NewStore(root string, logger *logging.Logger) (*Store, error) {
	if root == "" {
		root = paths.DefaultBackupRoot()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup root: %w", err)
	}
	return &Store{root: root, logger: logger, now: time.Now}, nil
}

// Root returns the backup root directory.
func (s *Store) Root() string {
	return s.root
}

// Create snapshots folder's full tree under the backup root. The copy is
// best-effort: a file that fails to copy is skipped, not fatal, so the
// snapshot may be partial. It always completes before the caller is
// allowed to mutate the source folder.
func (s *Store) Create(ctx context.Context, folder string) (*Snapshot, *Summary, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, nil, fmt.Errorf("source folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%s is not a directory", folder)
	}

	createdAt := s.now()
	snapPath := filepath.Join(s.root, paths.SnapshotName(folder, createdAt))
	snapshot := &Snapshot{
		SourceFolder: folder,
		Path:         snapPath,
		CreatedAt:    createdAt,
	}

	// First attempt: single recursive tree copy.
	if err := os.CopyFS(snapPath, os.DirFS(folder)); err == nil {
		summary := &Summary{Copied: countFiles(snapPath)}
		s.logger.Info("backup created",
			zap.String("source", folder),
			zap.String("snapshot", snapPath),
			zap.Int("copied", summary.Copied),
		)
		return snapshot, summary, nil
	} else {
		s.logger.Warn("backup: tree copy failed, falling back to per-entry copy",
			zap.String("source", folder), zap.Error(err))
	}

	// Fallback: manual walk, best-effort per entry. The snapshot is
	// allowed to be partial.
	summary := &Summary{}
	if err := os.MkdirAll(snapPath, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	err = filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			summary.Skipped++
			s.logger.Warn("backup: skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == folder {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			summary.Skipped++
			return nil
		}
		dst := filepath.Join(snapPath, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				summary.Skipped++
				s.logger.Warn("backup: failed to create directory", zap.String("path", dst), zap.Error(err))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if err := copyFile(path, dst); err != nil {
			summary.Skipped++
			s.logger.Warn("backup: failed to copy file", zap.String("path", path), zap.Error(err))
			return nil
		}
		summary.Copied++
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("backup walk failed: %w", err)
	}

	s.logger.Info("backup created",
		zap.String("source", folder),
		zap.String("snapshot", snapPath),
		zap.Int("copied", summary.Copied),
		zap.Int("skipped", summary.Skipped),
	)

	return snapshot, summary, nil
}

// countFiles counts regular files under root, used to report how many
// entries a whole-tree copy captured.
func countFiles(root string) int {
	n := 0
	_ = filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && d.Type().IsRegular() {
			n++
		}
		return nil
	})
	return n
}

// List returns every snapshot taken for folder, newest first. Descending
// lexical order of the encoded timestamp suffix equals reverse
// chronological order.
func (s *Store) List(folder string) ([]Snapshot, error) {
	pattern := filepath.Join(s.root, paths.SafeName(filepath.Base(folder))+"_*")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	snapshots := make([]Snapshot, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			SourceFolder: folder,
			Path:         m,
			CreatedAt:    parseSnapshotTime(m),
		})
	}
	return snapshots, nil
}

// Rollback restores folder from snapshotPath. It fails fast when the
// snapshot no longer exists; otherwise every snapshot entry is recreated
// under folder, removing an existing destination first. Per-entry
// failures are counted, not fatal. A nil error means the walk completed,
// not that the restore is byte-for-byte complete.
func (s *Store) Rollback(ctx context.Context, folder, snapshotPath string) (*Summary, error) {
	if _, err := os.Stat(snapshotPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, snapshotPath)
	}

	summary := &Summary{}
	err := filepath.WalkDir(snapshotPath, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			summary.Skipped++
			return nil
		}
		if path == snapshotPath {
			return nil
		}

		rel, err := filepath.Rel(snapshotPath, path)
		if err != nil {
			summary.Skipped++
			return nil
		}
		dst := filepath.Join(folder, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				summary.Skipped++
				s.logger.Warn("rollback: failed to create directory", zap.String("path", dst), zap.Error(err))
			}
			return nil
		}

		if info, err := os.Stat(dst); err == nil {
			if info.IsDir() {
				if err := os.RemoveAll(dst); err != nil {
					s.logger.Warn("rollback: failed to remove directory", zap.String("path", dst), zap.Error(err))
				}
			} else if err := os.Remove(dst); err != nil {
				s.logger.Warn("rollback: failed to remove file", zap.String("path", dst), zap.Error(err))
			}
		}

		if err := copyFile(path, dst); err != nil {
			summary.Skipped++
			s.logger.Warn("rollback: failed to restore file", zap.String("path", dst), zap.Error(err))
			return nil
		}
		summary.Copied++
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("rollback walk failed: %w", err)
	}

	s.logger.Info("rollback completed",
		zap.String("folder", folder),
		zap.String("snapshot", snapshotPath),
		zap.Int("restored", summary.Copied),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// copyFile copies src to dst, creating parent directories and preserving
// the modification time.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// parseSnapshotTime decodes the trailing timestamp of a snapshot
// directory name; zero time when the name does not match.
func parseSnapshotTime(snapshotPath string) time.Time {
	name := filepath.Base(snapshotPath)
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return time.Time{}
	}
	// Timestamp spans the last two underscore-separated segments.
	idx = strings.LastIndex(name[:idx], "_")
	if idx < 0 {
		return time.Time{}
	}
	t, err := time.ParseInLocation(paths.TimestampLayout, name[idx+1:], time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

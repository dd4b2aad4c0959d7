// Package inventory enumerates files and folders for display and as the
// enumeration basis for organize and scan operations.
package inventory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/logging"
)

// FileRecord describes one regular file at scan time. Records are produced
// fresh on each pass and never persisted.
type FileRecord struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ParentFolder string    `json:"parent_folder"`
	Size         uint64    `json:"size"`
	Modified     time.Time `json:"modified"`
}

// Lister walks directories on the local filesystem.
type Lister struct {
	logger *logging.Logger
}

// NewLister creates a file lister.
func NewLister(logger *logging.Logger) *Lister {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Lister{logger: logger}
}

// ListFiles recursively walks folder and returns one record per regular
// file found. Entries that fail to stat are logged and omitted, never
// fatal. Ordering is traversal order, not sorted.
func (l *Lister) ListFiles(ctx context.Context, folder string) ([]FileRecord, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	var (
		mu      sync.Mutex
		records []FileRecord
	)
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			l.logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			l.logger.Debug("skipping entry without metadata", zap.String("path", path), zap.Error(err))
			return nil
		}

		rec := FileRecord{
			Name:         d.Name(),
			Path:         path,
			ParentFolder: filepath.Base(filepath.Dir(path)),
			Size:         uint64(fi.Size()),
			Modified:     fi.ModTime(),
		}

		mu.Lock()
		records = append(records, rec)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk failed: %w", err)
	}

	return records, nil
}

// ListFolders returns basePath plus every nested directory, deduplicated,
// insertion order preserved.
func (l *Lister) ListFolders(ctx context.Context, basePath string) ([]string, error) {
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("base path not accessible: %w", err)
	}

	seen := map[string]struct{}{basePath: {}}
	folders := []string{basePath}

	// Sequential filepath.WalkDir keeps insertion order deterministic;
	// fastwalk's parallel callbacks would not.
	err := filepath.WalkDir(basePath, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			l.logger.Debug("skipping unreadable directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		seen[path] = struct{}{}
		folders = append(folders, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk failed: %w", err)
	}

	return folders, nil
}

// TopLevelFiles returns the direct child regular files of folder, the
// enumeration basis for organize operations.
func (l *Lister) TopLevelFiles(folder string) ([]FileRecord, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}

	records := make([]FileRecord, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			l.logger.Debug("skipping entry without metadata", zap.String("name", e.Name()), zap.Error(err))
			continue
		}
		records = append(records, FileRecord{
			Name:         e.Name(),
			Path:         filepath.Join(folder, e.Name()),
			ParentFolder: filepath.Base(folder),
			Size:         uint64(fi.Size()),
			Modified:     fi.ModTime(),
		})
	}
	return records, nil
}

// Summary aggregates records into per-parent-folder file counts, consumed
// by the dashboard's chart rendering.
func Summary(records []FileRecord) map[string]int {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.ParentFolder]++
	}
	return counts
}

// TotalSize sums record sizes in bytes.
func TotalSize(records []FileRecord) uint64 {
	var total uint64
	for _, r := range records {
		total += r.Size
	}
	return total
}

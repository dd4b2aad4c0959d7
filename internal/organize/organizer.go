// Package organize reclassifies the top-level files of a folder into
// bucket subfolders by extension, modification month, or size tier.
// Every organize run is preceded by a backup snapshot of the same folder;
// the snapshot is the only recovery path for partial failures.
package organize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/backup"
	"github.com/folderguard/folderguard/internal/inventory"
	"github.com/folderguard/folderguard/internal/logging"
	"github.com/folderguard/folderguard/internal/shared/paths"
)

// Strategy selects how files are bucketed.
type Strategy string

const (
	ByExtension Strategy = "extension"
	ByDate      Strategy = "date"
	BySize      Strategy = "size"
)

// Size tier boundaries, decimal (base-1000), not binary.
const (
	smallLimit  = 10_000_000
	mediumLimit = 100_000_000
)

// Size tier labels.
const (
	bucketSmall   = "Small_0-10MB"
	bucketMedium  = "Medium_10-100MB"
	bucketLarge   = "Large_100MB_plus"
	bucketUnknown = "UNKNOWN"
)

// Summary reports the outcome of one organize pass.
type Summary struct {
	Strategy Strategy `json:"strategy"`
	Moved    int      `json:"moved"`
	Skipped  int      `json:"skipped"`
	Buckets  []string `json:"buckets"`
}

// Result pairs the organize summary with the snapshot taken beforehand.
type Result struct {
	Snapshot *backup.Snapshot `json:"snapshot"`
	Summary  Summary          `json:"summary"`
}

// Organizer moves top-level files into bucket subfolders.
type Organizer struct {
	store  *backup.Store
	lister *inventory.Lister
	logger *logging.Logger
}

// New creates an organizer bound to a backup store.
func New(store *backup.Store, lister *inventory.Lister, logger *logging.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{store: store, lister: lister, logger: logger}
}

// BackupThenOrganize snapshots folder, then applies the strategy to its
// direct child files. The pairing is the reversibility contract: the
// snapshot always completes (possibly partially) before any file moves.
func (o *Organizer) BackupThenOrganize(ctx context.Context, folder string, strategy Strategy) (*Result, error) {
	snapshot, _, err := o.store.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("backup before organize failed: %w", err)
	}

	summary, err := o.organize(ctx, folder, strategy)
	if err != nil {
		return nil, err
	}
	return &Result{Snapshot: snapshot, Summary: *summary}, nil
}

// organize applies the strategy to the direct children of folder. A move
// failure for one file is skipped; organizing continues for the rest.
func (o *Organizer) organize(ctx context.Context, folder string, strategy Strategy) (*Summary, error) {
	records, err := o.lister.TopLevelFiles(folder)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Strategy: strategy}
	seen := make(map[string]struct{})

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		bucket, err := Bucket(strategy, rec)
		if err != nil {
			return nil, err
		}

		destDir := filepath.Join(folder, paths.SafeName(bucket))
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			summary.Skipped++
			o.logger.Warn("organize: failed to create bucket directory",
				zap.String("bucket", bucket), zap.Error(err))
			continue
		}

		if err := os.Rename(rec.Path, filepath.Join(destDir, rec.Name)); err != nil {
			summary.Skipped++
			o.logger.Warn("organize: failed to move file",
				zap.String("file", rec.Path), zap.Error(err))
			continue
		}

		summary.Moved++
		if _, ok := seen[bucket]; !ok {
			seen[bucket] = struct{}{}
			summary.Buckets = append(summary.Buckets, bucket)
		}
	}

	o.logger.Info("organize completed",
		zap.String("folder", folder),
		zap.String("strategy", string(strategy)),
		zap.Int("moved", summary.Moved),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// Bucket derives the destination bucket label for a record.
func Bucket(strategy Strategy, rec inventory.FileRecord) (string, error) {
	switch strategy {
	case ByExtension:
		return extensionBucket(rec.Name), nil
	case ByDate:
		return rec.Modified.Format(paths.MonthLayout), nil
	case BySize:
		return sizeBucket(rec.Size), nil
	default:
		return "", fmt.Errorf("unknown organize strategy: %s", strategy)
	}
}

func extensionBucket(name string) string {
	ext := filepath.Ext(name)
	// A leading dot alone marks a hidden file, not an extension.
	if ext == "" || ext == name {
		return bucketUnknown
	}
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

func sizeBucket(size uint64) string {
	switch {
	case size < smallLimit:
		return bucketSmall
	case size < mediumLimit:
		return bucketMedium
	default:
		return bucketLarge
	}
}

// Package scan applies offline filename/metadata heuristics to folder
// trees, quarantining matches and producing per-file reports. It is not
// malware detection; it flags naming patterns worth a manual look.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/logging"
	"github.com/folderguard/folderguard/internal/shared/paths"
)

// maxCollisionAttempts bounds quarantine name resolution; an entry that
// exhausts it is counted as skipped instead of looping forever.
const maxCollisionAttempts = 10_000

// ReportRow is the per-file classification result, produced for
// reporting only and never persisted.
type ReportRow struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Extension string    `json:"extension"`
	Size      uint64    `json:"size"`
	Modified  time.Time `json:"modified"`
	Hash      string    `json:"hash"`
	MIMEType  string    `json:"mime_type,omitempty"`
	Status    Status    `json:"status"`
	Reason    string    `json:"reason"`
}

// QuarantineSummary reports the outcome of a quarantine pass.
type QuarantineSummary struct {
	Moved   []string `json:"moved"`
	Skipped int      `json:"skipped"`
}

// Scanner walks folders and isolates suspicious files.
type Scanner struct {
	backupRoot string
	logger     *logging.Logger
}

// NewScanner creates a scanner. backupRoot is the configured snapshot
// root; anything under it is exempt from scanning, in addition to the
// well-known protected directory names. Empty means only the well-known
// names apply.
func NewScanner(backupRoot string, logger *logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if backupRoot != "" {
		backupRoot = filepath.Clean(backupRoot)
	}
	return &Scanner{backupRoot: backupRoot, logger: logger}
}

// protected reports whether path belongs to a subtree scans must never
// touch: quarantine contents, a default-named backup root, or the
// configured backup root.
func (s *Scanner) protected(path string) bool {
	if paths.IsProtectedSubtree(path) {
		return true
	}
	if s.backupRoot == "" {
		return false
	}
	if path == s.backupRoot {
		return true
	}
	return strings.HasPrefix(path, s.backupRoot+string(os.PathSeparator))
}

// Quarantine recursively walks folder and moves every suspicious file
// into folder/_quarantine, resolving name collisions with a numeric
// suffix before the extension. Subtrees belonging to a quarantine folder
// or the backup root are never entered. Per-file move failures are
// skipped, not fatal. Returns the final destination paths.
func (s *Scanner) Quarantine(ctx context.Context, folder string) (*QuarantineSummary, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	quarantineDir := filepath.Join(folder, paths.QuarantineDirName)
	if err := os.MkdirAll(quarantineDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create quarantine directory: %w", err)
	}

	summary := &QuarantineSummary{Moved: []string{}}

	// Sequential walk: the tree is mutated while being traversed.
	err = filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != folder && s.protected(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || s.protected(path) {
			return nil
		}
		if !IsSuspicious(path) {
			return nil
		}

		dest, ok := freeDestination(quarantineDir, d.Name())
		if !ok {
			summary.Skipped++
			s.logger.Warn("quarantine: collision resolution exhausted", zap.String("file", path))
			return nil
		}
		if err := os.Rename(path, dest); err != nil {
			summary.Skipped++
			s.logger.Warn("quarantine: failed to move file", zap.String("file", path), zap.Error(err))
			return nil
		}
		summary.Moved = append(summary.Moved, dest)
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("scan walk failed: %w", err)
	}

	s.logger.Info("quarantine scan completed",
		zap.String("folder", folder),
		zap.Int("moved", len(summary.Moved)),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// Report recursively classifies every file under folder without moving
// anything. Skip rules match Quarantine. Files that cannot be read are
// omitted.
func (s *Scanner) Report(ctx context.Context, folder string) ([]ReportRow, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	var (
		mu   sync.Mutex
		rows []ReportRow
	)
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, folder, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != folder && s.protected(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || s.protected(path) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}

		hash, err := Digest(path)
		if err != nil {
			s.logger.Debug("report: skipping unreadable file", zap.String("file", path), zap.Error(err))
			return nil
		}

		name := d.Name()
		status, reason := Classify(name)

		row := ReportRow{
			Name:      name,
			Path:      path,
			Extension: strings.ToLower(extension(name)),
			Size:      uint64(fi.Size()),
			Modified:  fi.ModTime(),
			Hash:      hash,
			Status:    status,
			Reason:    reason,
		}
		if mtype, err := mimetype.DetectFile(path); err == nil {
			row.MIMEType = mtype.String()
		}

		mu.Lock()
		rows = append(rows, row)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("report walk failed: %w", err)
	}

	return rows, nil
}

// freeDestination finds an unused name for file inside dir, inserting
// _<n> before the extension on collision.
func freeDestination(dir, name string) (string, bool) {
	dest := filepath.Join(dir, name)
	if !exists(dest) {
		return dest, true
	}

	ext := extension(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxCollisionAttempts; i++ {
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(dest) {
			return dest, true
		}
	}
	return "", false
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

package paths

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Well-known directory names
const (
	// BackupRootName is the directory under the system temp root that
	// holds every backup snapshot taken by this process.
	BackupRootName = "file_organizer_backups"

	// QuarantineDirName is the subfolder created inside a scanned folder
	// to isolate suspicious files.
	QuarantineDirName = "_quarantine"
)

// TimestampLayout encodes snapshot creation time at second resolution.
// Lexical order of encoded timestamps equals chronological order.
const TimestampLayout = "20060102_150405"

// MonthLayout is the date-bucket label format.
const MonthLayout = "2006-01"

// DefaultBackupRoot returns the fixed per-machine backup root location.
func DefaultBackupRoot() string {
	return filepath.Join(os.TempDir(), BackupRootName)
}

// SafeName maps every character outside [A-Za-z0-9._-] to underscore,
// producing a name safe to use as a directory entry on any filesystem.
func SafeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '-' || c == '_' || c == '.':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SnapshotName builds the snapshot directory name for a source folder.
func SnapshotName(folder string, at time.Time) string {
	return SafeName(filepath.Base(folder)) + "_" + at.Format(TimestampLayout)
}

// IsProtectedSubtree reports whether path belongs to a subtree the
// scanner must never touch: quarantine contents or backup snapshots.
func IsProtectedSubtree(path string) bool {
	for _, part := range strings.Split(path, string(os.PathSeparator)) {
		if part == QuarantineDirName || part == BackupRootName {
			return true
		}
	}
	return false
}

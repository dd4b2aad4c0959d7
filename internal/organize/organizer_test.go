package organize

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folderguard/folderguard/internal/backup"
	"github.com/folderguard/folderguard/internal/inventory"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestOrganizer(t *testing.T) *Organizer {
	t.Helper()
	store, err := backup.NewStore(filepath.Join(t.TempDir(), "backups"), nil)
	require.NoError(t, err)
	return New(store, inventory.NewLister(nil), nil)
}

func TestExtensionBucket(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
	}{
		{"report.pdf", "PDF"},
		{"notes.TXT", "TXT"},
		{"archive.tar.gz", "GZ"},
		{"README", "UNKNOWN"},
		{".profile", "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bucket(ByExtension, inventory.FileRecord{Name: tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, got)
		})
	}
}

func TestDateBucket(t *testing.T) {
	rec := inventory.FileRecord{
		Name:     "a.txt",
		Modified: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	got, err := Bucket(ByDate, rec)
	require.NoError(t, err)
	assert.Equal(t, "2026-03", got)
}

func TestSizeBucketBoundaries(t *testing.T) {
	tests := []struct {
		size   uint64
		bucket string
	}{
		{0, "Small_0-10MB"},
		{9_999_999, "Small_0-10MB"},
		{10_000_000, "Medium_10-100MB"},
		{99_999_999, "Medium_10-100MB"},
		{100_000_000, "Large_100MB_plus"},
		{5_000_000_000, "Large_100MB_plus"},
	}

	for _, tt := range tests {
		got, err := Bucket(BySize, inventory.FileRecord{Name: "f", Size: tt.size})
		require.NoError(t, err)
		assert.Equal(t, tt.bucket, got, "size %d", tt.size)
	}
}

func TestBucketUnknownStrategy(t *testing.T) {
	_, err := Bucket(Strategy("shuffle"), inventory.FileRecord{Name: "f"})
	assert.Error(t, err)
}

func TestBackupThenOrganizeByExtension(t *testing.T) {
	org := newTestOrganizer(t)

	dir := filepath.Join(t.TempDir(), "downloads")
	writeFile(t, filepath.Join(dir, "report.pdf"), "pdf")
	writeFile(t, filepath.Join(dir, "notes.txt"), "txt")
	writeFile(t, filepath.Join(dir, "todo.txt"), "txt2")
	writeFile(t, filepath.Join(dir, "README"), "plain")

	result, err := org.BackupThenOrganize(context.Background(), dir, ByExtension)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Summary.Moved)
	assert.Equal(t, 0, result.Summary.Skipped)
	assert.ElementsMatch(t, []string{"PDF", "TXT", "UNKNOWN"}, result.Summary.Buckets)

	// The snapshot preserves the pre-organize layout.
	require.NotNil(t, result.Snapshot)
	assert.FileExists(t, filepath.Join(result.Snapshot.Path, "report.pdf"))

	assert.FileExists(t, filepath.Join(dir, "PDF", "report.pdf"))
	assert.FileExists(t, filepath.Join(dir, "TXT", "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "TXT", "todo.txt"))
	assert.FileExists(t, filepath.Join(dir, "UNKNOWN", "README"))
	assert.NoFileExists(t, filepath.Join(dir, "report.pdf"))
}

func TestBackupThenOrganizeByDate(t *testing.T) {
	org := newTestOrganizer(t)

	dir := filepath.Join(t.TempDir(), "downloads")
	march := filepath.Join(dir, "march.txt")
	april := filepath.Join(dir, "april.txt")
	writeFile(t, march, "m")
	writeFile(t, april, "a")

	marchTime := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	aprilTime := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(march, marchTime, marchTime))
	require.NoError(t, os.Chtimes(april, aprilTime, aprilTime))

	result, err := org.BackupThenOrganize(context.Background(), dir, ByDate)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.Moved)
	assert.ElementsMatch(t, []string{"2026-03", "2026-04"}, result.Summary.Buckets)

	assert.FileExists(t, filepath.Join(dir, "2026-03", "march.txt"))
	assert.FileExists(t, filepath.Join(dir, "2026-04", "april.txt"))
	assert.NoFileExists(t, march)
	assert.NoFileExists(t, april)

	// The snapshot captured the flat pre-organize layout.
	require.NotNil(t, result.Snapshot)
	assert.FileExists(t, filepath.Join(result.Snapshot.Path, "march.txt"))
	assert.FileExists(t, filepath.Join(result.Snapshot.Path, "april.txt"))
}

func TestOrganizeTouchesOnlyTopLevel(t *testing.T) {
	org := newTestOrganizer(t)

	dir := filepath.Join(t.TempDir(), "downloads")
	writeFile(t, filepath.Join(dir, "top.txt"), "x")
	writeFile(t, filepath.Join(dir, "already", "nested.pdf"), "y")

	result, err := org.BackupThenOrganize(context.Background(), dir, ByExtension)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Moved)
	assert.FileExists(t, filepath.Join(dir, "already", "nested.pdf"))
}

func TestOrganizeSecondRunMovesNothing(t *testing.T) {
	org := newTestOrganizer(t)

	dir := filepath.Join(t.TempDir(), "downloads")
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	first, err := org.BackupThenOrganize(context.Background(), dir, ByExtension)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Summary.Moved)

	second, err := org.BackupThenOrganize(context.Background(), dir, ByExtension)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Summary.Moved)
	assert.FileExists(t, filepath.Join(dir, "TXT", "a.txt"))
}

func TestOrganizeBySizePlacesSmallFiles(t *testing.T) {
	org := newTestOrganizer(t)

	dir := filepath.Join(t.TempDir(), "downloads")
	writeFile(t, filepath.Join(dir, "tiny.bin"), "abc")

	result, err := org.BackupThenOrganize(context.Background(), dir, BySize)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Moved)
	assert.FileExists(t, filepath.Join(dir, "Small_0-10MB", "tiny.bin"))
}

func TestOrganizeMissingFolderAborts(t *testing.T) {
	org := newTestOrganizer(t)
	_, err := org.BackupThenOrganize(context.Background(), filepath.Join(t.TempDir(), "nope"), ByExtension)
	assert.Error(t, err)
}

package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "backups"), nil)
	require.NoError(t, err)
	return store
}

func TestCreateSnapshotsFullTree(t *testing.T) {
	store := newTestStore(t)

	src := filepath.Join(t.TempDir(), "photos")
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "nested", "b.txt"), "beta")

	snapshot, summary, err := store.Create(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, src, snapshot.SourceFolder)
	assert.Equal(t, 2, summary.Copied)
	assert.Equal(t, 0, summary.Skipped)

	assert.Equal(t, "alpha", readFile(t, filepath.Join(snapshot.Path, "a.txt")))
	assert.Equal(t, "beta", readFile(t, filepath.Join(snapshot.Path, "nested", "b.txt")))
}

func TestCreateMissingSource(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.Create(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	src := filepath.Join(t.TempDir(), "docs")
	writeFile(t, filepath.Join(src, "a.txt"), "a")

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	store.now = func() time.Time { return base }
	first, _, err := store.Create(context.Background(), src)
	require.NoError(t, err)

	store.now = func() time.Time { return base.Add(time.Hour) }
	second, _, err := store.Create(context.Background(), src)
	require.NoError(t, err)

	snapshots, err := store.List(src)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, second.Path, snapshots[0].Path)
	assert.Equal(t, first.Path, snapshots[1].Path)
	assert.True(t, snapshots[0].CreatedAt.After(snapshots[1].CreatedAt))
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)
	snapshots, err := store.List(filepath.Join(t.TempDir(), "never-backed-up"))
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestRollbackRestoresSnapshotState(t *testing.T) {
	store := newTestStore(t)

	src := filepath.Join(t.TempDir(), "work")
	writeFile(t, filepath.Join(src, "keep.txt"), "original")
	writeFile(t, filepath.Join(src, "nested", "deep.txt"), "deep")

	snapshot, _, err := store.Create(context.Background(), src)
	require.NoError(t, err)

	// Mutate the source after the snapshot.
	writeFile(t, filepath.Join(src, "keep.txt"), "changed")
	require.NoError(t, os.Remove(filepath.Join(src, "nested", "deep.txt")))
	writeFile(t, filepath.Join(src, "extra.txt"), "new")

	summary, err := store.Rollback(context.Background(), src, snapshot.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Copied)

	assert.Equal(t, "original", readFile(t, filepath.Join(src, "keep.txt")))
	assert.Equal(t, "deep", readFile(t, filepath.Join(src, "nested", "deep.txt")))

	// Restore recreates snapshot entries; files added afterwards stay.
	assert.Equal(t, "new", readFile(t, filepath.Join(src, "extra.txt")))
}

func TestRollbackMissingSnapshot(t *testing.T) {
	store := newTestStore(t)

	src := t.TempDir()
	_, err := store.Rollback(context.Background(), src, filepath.Join(store.Root(), "gone_20260101_000000"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestParseSnapshotTime(t *testing.T) {
	at := parseSnapshotTime("/backups/photos_20260314_090102")
	assert.Equal(t, time.Date(2026, 3, 14, 9, 1, 2, 0, time.Local), at)

	assert.True(t, parseSnapshotTime("/backups/garbage").IsZero())
	assert.True(t, parseSnapshotTime("/backups/photos_notatime").IsZero())
}

package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.pdf"), "beta")
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), "gamma")

	lister := NewLister(nil)
	records, err := lister.ListFiles(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byName := make(map[string]FileRecord)
	for _, r := range records {
		byName[r.Name] = r
	}

	assert.Equal(t, uint64(5), byName["a.txt"].Size)
	assert.Equal(t, filepath.Base(dir), byName["a.txt"].ParentFolder)
	assert.Equal(t, "nested", byName["c.txt"].ParentFolder)
	assert.False(t, byName["b.pdf"].Modified.IsZero())
}

func TestListFilesMissingFolder(t *testing.T) {
	lister := NewLister(nil)
	_, err := lister.ListFiles(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListFilesNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	writeFile(t, file, "x")

	lister := NewLister(nil)
	_, err := lister.ListFiles(context.Background(), file)
	assert.Error(t, err)
}

func TestListFolders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one", "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "one", "deep", "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "two", "c.txt"), "c")

	lister := NewLister(nil)
	folders, err := lister.ListFolders(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, folders[0])
	assert.Contains(t, folders, filepath.Join(dir, "one"))
	assert.Contains(t, folders, filepath.Join(dir, "one", "deep"))
	assert.Contains(t, folders, filepath.Join(dir, "two"))
	assert.Len(t, folders, 4)
}

func TestTopLevelFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "nested", "c.txt"), "c")

	lister := NewLister(nil)
	records, err := lister.TopLevelFiles(dir)
	require.NoError(t, err)

	require.Len(t, records, 2)
	names := []string{records[0].Name, records[1].Name}
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
}

func TestSummary(t *testing.T) {
	records := []FileRecord{
		{Name: "a.txt", ParentFolder: "docs"},
		{Name: "b.txt", ParentFolder: "docs"},
		{Name: "c.txt", ParentFolder: "media"},
	}

	counts := Summary(records)
	assert.Equal(t, map[string]int{"docs": 2, "media": 1}, counts)
}

func TestTotalSize(t *testing.T) {
	records := []FileRecord{
		{Size: 100},
		{Size: 250},
	}
	assert.Equal(t, uint64(350), TotalSize(records))
	assert.Equal(t, uint64(0), TotalSize(nil))
}

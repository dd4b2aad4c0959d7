package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		reason string
	}{
		{"report.pdf", StatusClean, "-"},
		{"notes.txt", StatusClean, "-"},
		{"setup.exe", StatusSuspicious, "Executable/script extension"},
		{"SETUP.EXE", StatusSuspicious, "Executable/script extension"},
		{"run.bat", StatusSuspicious, "Executable/script extension"},
		{"invoice.pdf.exe", StatusDangerous, "Double extension"},
		{"photo.jpg.scr", StatusDangerous, "Double extension"},
		{".bashrc", StatusHidden, "Hidden file"},
		{".secret.exe", StatusHidden, "Hidden file"},
		{"archive.tar.gz", StatusClean, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, reason := Classify(tt.name)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestIsSuspicious(t *testing.T) {
	dir := t.TempDir()

	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		return path
	}

	assert.False(t, IsSuspicious(write("notes.txt")))
	assert.True(t, IsSuspicious(write("setup.exe")))
	assert.True(t, IsSuspicious(write("library.DLL")))
	assert.True(t, IsSuspicious(write("invoice.pdf.exe")))
	assert.True(t, IsSuspicious(write(".hidden")))
	assert.False(t, IsSuspicious(write("archive.tar.gz")))
}

func TestIsSuspiciousMissingFileUsesNameOnly(t *testing.T) {
	// Stat fails for a nonexistent path, so only name heuristics apply.
	assert.True(t, IsSuspicious(filepath.Join(t.TempDir(), "gone.exe")))
	assert.False(t, IsSuspicious(filepath.Join(t.TempDir(), "gone.txt")))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".txt", extension("a.txt"))
	assert.Equal(t, ".exe", extension("a.pdf.exe"))
	assert.Equal(t, "", extension("README"))
	assert.Equal(t, "", extension(".profile"))
}

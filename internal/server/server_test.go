package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folderguard/folderguard/internal/config"
	"github.com/folderguard/folderguard/internal/logging"
)

func TestNewRegistersAllProviders(t *testing.T) {
	cfg := config.Default()
	cfg.Backup.Root = filepath.Join(t.TempDir(), "backups")

	// Prometheus collectors register globally, so the server is built
	// once for the whole test binary.
	srv, err := New(cfg, logging.NewNop())
	require.NoError(t, err)

	stats := srv.Registry().Stats()
	assert.Equal(t, 6, stats["total_services"])
	assert.Equal(t, 16, stats["total_tools"])

	categories := stats["categories"].(map[string]int)
	for _, cat := range []string{"files", "organize", "backup", "scan", "archive", "system"} {
		assert.Equal(t, 1, categories[cat], "category %s", cat)
	}
}

package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/folderguard/folderguard/internal/backup"
	"github.com/folderguard/folderguard/internal/types"
)

// Backup exposes snapshot creation, listing, and rollback
type Backup struct {
	store *backup.Store
}

// NewBackup creates the backup provider
func NewBackup(store *backup.Store) *Backup {
	return &Backup{store: store}
}

// Definition returns service metadata
func (b *Backup) Definition() types.Service {
	return types.Service{
		ID:          "backup",
		Name:        "Backup Service",
		Description: "Folder snapshots under the process-wide backup root, with rollback",
		Category:    types.CategoryBackup,
		Capabilities: []string{
			"create",
			"list",
			"rollback",
		},
		Tools: []types.Tool{
			{
				ID:          "backup.create",
				Name:        "Create Backup",
				Description: "Snapshot a folder's full tree before a mutating operation",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to snapshot", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "backup.list",
				Name:        "List Backups",
				Description: "List snapshots for a folder, newest first",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Source folder", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "backup.rollback",
				Name:        "Rollback",
				Description: "Restore a folder from a chosen snapshot, best-effort per entry",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to restore", Required: true},
					{Name: "snapshot", Type: "string", Description: "Snapshot path", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a backup operation
func (b *Backup) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "backup.create":
		return b.create(ctx, params)
	case "backup.list":
		return b.list(params)
	case "backup.rollback":
		return b.rollback(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (b *Backup) create(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	snapshot, summary, err := b.store.Create(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("backup failed: %v", err))
	}

	return success(map[string]interface{}{
		"snapshot": snapshot,
		"copied":   summary.Copied,
		"skipped":  summary.Skipped,
	})
}

func (b *Backup) list(params map[string]interface{}) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	snapshots, err := b.store.List(folder)
	if err != nil {
		return failure(fmt.Sprintf("listing backups failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder":  folder,
		"backups": snapshots,
		"count":   len(snapshots),
	})
}

func (b *Backup) rollback(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}
	snapshot, ok := stringParam(params, "snapshot")
	if !ok {
		return failure("snapshot parameter required")
	}

	summary, err := b.store.Rollback(ctx, folder, snapshot)
	if err != nil {
		if errors.Is(err, backup.ErrSnapshotNotFound) {
			return failure(fmt.Sprintf("snapshot no longer exists: %s", snapshot))
		}
		return failure(fmt.Sprintf("rollback failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder":   folder,
		"snapshot": snapshot,
		"restored": summary.Copied,
		"skipped":  summary.Skipped,
	})
}

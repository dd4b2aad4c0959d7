package providers

import (
	"context"
	"fmt"

	"github.com/folderguard/folderguard/internal/organize"
	"github.com/folderguard/folderguard/internal/types"
)

// Organizer exposes the backup-then-organize operations
type Organizer struct {
	organizer *organize.Organizer
}

// NewOrganizer creates the organizer provider
func NewOrganizer(organizer *organize.Organizer) *Organizer {
	return &Organizer{organizer: organizer}
}

// Definition returns service metadata
func (o *Organizer) Definition() types.Service {
	folderParam := []types.Parameter{
		{Name: "folder", Type: "string", Description: "Folder to organize", Required: true},
	}
	return types.Service{
		ID:          "organize",
		Name:        "Organizer Service",
		Description: "Moves top-level files into bucket subfolders, snapshotting first",
		Category:    types.CategoryOrganize,
		Capabilities: []string{
			"by_extension",
			"by_date",
			"by_size",
		},
		Tools: []types.Tool{
			{
				ID:          "organize.by_extension",
				Name:        "Organize by Extension",
				Description: "Bucket top-level files by upper-cased extension",
				Parameters:  folderParam,
				Returns:     "object",
			},
			{
				ID:          "organize.by_date",
				Name:        "Organize by Date",
				Description: "Bucket top-level files by modification month (YYYY-MM)",
				Parameters:  folderParam,
				Returns:     "object",
			},
			{
				ID:          "organize.by_size",
				Name:        "Organize by Size",
				Description: "Bucket top-level files into small/medium/large tiers",
				Parameters:  folderParam,
				Returns:     "object",
			},
		},
	}
}

// Execute runs an organize operation. Every variant snapshots the folder
// before moving anything; the snapshot path is part of the result so the
// UI can offer rollback.
func (o *Organizer) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	var strategy organize.Strategy
	switch toolID {
	case "organize.by_extension":
		strategy = organize.ByExtension
	case "organize.by_date":
		strategy = organize.ByDate
	case "organize.by_size":
		strategy = organize.BySize
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	result, err := o.organizer.BackupThenOrganize(ctx, folder, strategy)
	if err != nil {
		return failure(fmt.Sprintf("organize failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder":   folder,
		"strategy": string(strategy),
		"backup":   result.Snapshot,
		"moved":    result.Summary.Moved,
		"skipped":  result.Summary.Skipped,
		"buckets":  result.Summary.Buckets,
	})
}

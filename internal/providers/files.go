package providers

import (
	"context"
	"fmt"

	"github.com/folderguard/folderguard/internal/inventory"
	"github.com/folderguard/folderguard/internal/types"
)

// Files exposes folder inventory to the dashboard
type Files struct {
	lister *inventory.Lister
}

// NewFiles creates the inventory provider
func NewFiles(lister *inventory.Lister) *Files {
	return &Files{lister: lister}
}

// Definition returns service metadata
func (f *Files) Definition() types.Service {
	return types.Service{
		ID:          "files",
		Name:        "File Inventory Service",
		Description: "Folder browsing and file listings for table and chart display",
		Category:    types.CategoryFiles,
		Capabilities: []string{
			"list",
			"folders",
			"summary",
		},
		Tools: []types.Tool{
			{
				ID:          "files.list",
				Name:        "List Files",
				Description: "Recursively list files with name, path, size, and modified time",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder path", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "files.folders",
				Name:        "List Folders",
				Description: "List a base path and every nested folder",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Base path", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "files.summary",
				Name:        "Folder Summary",
				Description: "File counts grouped by parent folder, for chart rendering",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder path", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs an inventory operation
func (f *Files) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "files.list":
		return f.list(ctx, params)
	case "files.folders":
		return f.folders(ctx, params)
	case "files.summary":
		return f.summary(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (f *Files) list(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	records, err := f.lister.ListFiles(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("list failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder":     folder,
		"files":      records,
		"count":      len(records),
		"total_size": inventory.TotalSize(records),
	})
}

func (f *Files) folders(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return failure("path parameter required")
	}

	folders, err := f.lister.ListFolders(ctx, path)
	if err != nil {
		return failure(fmt.Sprintf("folder listing failed: %v", err))
	}

	return success(map[string]interface{}{
		"path":    path,
		"folders": folders,
		"count":   len(folders),
	})
}

func (f *Files) summary(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	records, err := f.lister.ListFiles(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("summary failed: %v", err))
	}

	counts := inventory.Summary(records)
	return success(map[string]interface{}{
		"folder":        folder,
		"folder_counts": counts,
		"total_files":   len(records),
		"total_folders": len(counts),
		"total_size":    inventory.TotalSize(records),
	})
}

package providers

import (
	"context"
	"fmt"

	"github.com/folderguard/folderguard/internal/archive"
	"github.com/folderguard/folderguard/internal/types"
)

// Archive exposes folder archiving
type Archive struct {
	archiver *archive.Archiver
}

// NewArchive creates the archive provider
func NewArchive(archiver *archive.Archiver) *Archive {
	return &Archive{archiver: archiver}
}

// Definition returns service metadata
func (a *Archive) Definition() types.Service {
	return types.Service{
		ID:          "archive",
		Name:        "Archive Service",
		Description: "Package a folder into an archive written next to the folder",
		Category:    types.CategoryArchive,
		Capabilities: []string{
			"zip",
			"tar",
		},
		Tools: []types.Tool{
			{
				ID:          "archive.zip",
				Name:        "Zip Folder",
				Description: "Create a zip of the folder's full tree",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to archive", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "archive.tar",
				Name:        "Tar Folder",
				Description: "Create a tarball of the folder, optionally compressed",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to archive", Required: true},
					{Name: "compression", Type: "string", Description: "Codec: none, gzip, or zstd", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs an archive operation
func (a *Archive) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	switch toolID {
	case "archive.zip":
		path, err := a.archiver.Zip(ctx, folder)
		if err != nil {
			return failure(fmt.Sprintf("zip failed: %v", err))
		}
		return success(map[string]interface{}{
			"folder": folder,
			"path":   path,
		})
	case "archive.tar":
		compression := archive.CompressionNone
		if raw, ok := stringParam(params, "compression"); ok {
			compression = archive.Compression(raw)
		}
		path, err := a.archiver.Tar(ctx, folder, compression)
		if err != nil {
			return failure(fmt.Sprintf("tar failed: %v", err))
		}
		return success(map[string]interface{}{
			"folder":      folder,
			"path":        path,
			"compression": string(compression),
		})
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

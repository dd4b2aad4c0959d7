package providers

import (
	"context"
	"fmt"

	"github.com/folderguard/folderguard/internal/sysinfo"
	"github.com/folderguard/folderguard/internal/types"
)

// System surfaces host resource usage for the dashboard header
type System struct{}

// NewSystem creates the system provider
func NewSystem() *System {
	return &System{}
}

// Definition returns service metadata
func (s *System) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Info",
		Description: "CPU, memory, and disk statistics for the host",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"stats",
			"drives",
		},
		Tools: []types.Tool{
			{
				ID:          "system.stats",
				Name:        "System Stats",
				Description: "Current CPU, RAM, and root disk usage",
				Returns:     "object",
			},
			{
				ID:          "system.drives",
				Name:        "List Drives",
				Description: "Mounted drives with capacity and usage",
				Returns:     "array",
			},
		},
	}
}

// Execute runs a system query
func (s *System) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.stats":
		stats, err := sysinfo.Collect(ctx)
		if err != nil {
			return failure(fmt.Sprintf("collecting stats failed: %v", err))
		}
		return success(map[string]interface{}{
			"stats": stats,
		})
	case "system.drives":
		drives := sysinfo.Drives(ctx)
		return success(map[string]interface{}{
			"drives": drives,
			"count":  len(drives),
		})
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

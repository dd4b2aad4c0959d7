package providers

import (
	"context"
	"fmt"

	"github.com/folderguard/folderguard/internal/scan"
	"github.com/folderguard/folderguard/internal/types"
)

// Scanner exposes heuristic security scanning over a folder tree
type Scanner struct {
	scanner *scan.Scanner
}

// NewScanner creates the scan provider
func NewScanner(scanner *scan.Scanner) *Scanner {
	return &Scanner{scanner: scanner}
}

// Definition returns service metadata
func (s *Scanner) Definition() types.Service {
	return types.Service{
		ID:          "scan",
		Name:        "Security Scanner",
		Description: "Heuristic detection of suspicious files with quarantine and reporting",
		Category:    types.CategoryScan,
		Capabilities: []string{
			"quarantine",
			"report",
			"export",
		},
		Tools: []types.Tool{
			{
				ID:          "scan.quarantine",
				Name:        "Quarantine Suspicious Files",
				Description: "Move suspicious files into the folder's quarantine directory",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to scan", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "scan.report",
				Name:        "Scan Report",
				Description: "Per-file report with hash, MIME type, and risk classification",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to scan", Required: true},
				},
				Returns: "array",
			},
			{
				ID:          "scan.export",
				Name:        "Export Scan Report",
				Description: "Run a scan report and write it as JSON next to the folder",
				Parameters: []types.Parameter{
					{Name: "folder", Type: "string", Description: "Folder to scan", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a scan operation
func (s *Scanner) Execute(ctx context.Context, toolID string, params map[string]interface{}, opCtx *types.Context) (*types.Result, error) {
	folder, ok := stringParam(params, "folder")
	if !ok {
		return failure("folder parameter required")
	}

	switch toolID {
	case "scan.quarantine":
		return s.quarantine(ctx, folder)
	case "scan.report":
		return s.report(ctx, folder)
	case "scan.export":
		return s.export(ctx, folder)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (s *Scanner) quarantine(ctx context.Context, folder string) (*types.Result, error) {
	summary, err := s.scanner.Quarantine(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("quarantine failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder":  folder,
		"moved":   summary.Moved,
		"count":   len(summary.Moved),
		"skipped": summary.Skipped,
	})
}

func (s *Scanner) report(ctx context.Context, folder string) (*types.Result, error) {
	rows, err := s.scanner.Report(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("scan failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder": folder,
		"report": rows,
		"count":  len(rows),
	})
}

func (s *Scanner) export(ctx context.Context, folder string) (*types.Result, error) {
	rows, err := s.scanner.Report(ctx, folder)
	if err != nil {
		return failure(fmt.Sprintf("scan failed: %v", err))
	}

	path, err := scan.ExportReport(folder, rows)
	if err != nil {
		return failure(fmt.Sprintf("export failed: %v", err))
	}

	return success(map[string]interface{}{
		"folder": folder,
		"path":   path,
		"count":  len(rows),
	})
}

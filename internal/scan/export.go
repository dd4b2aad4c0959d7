package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// ExportReport writes rows as indented JSON next to the scanned folder
// (<parent>/<base>_scan_report.json) and returns the output path. Write
// failures are hard failures; reports are small enough that no partial
// output is left behind on error.
func ExportReport(folder string, rows []ReportRow) (string, error) {
	data, err := sonic.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	out := filepath.Join(filepath.Dir(folder), filepath.Base(folder)+"_scan_report.json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return out, nil
}

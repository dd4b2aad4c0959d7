package scan

import (
	"os"
	"path/filepath"
	"strings"
)

// Status is the per-file classification outcome.
type Status string

const (
	StatusClean      Status = "Clean"
	StatusSuspicious Status = "Suspicious"
	StatusDangerous  Status = "Dangerous"
	StatusHidden     Status = "Hidden"
)

// maxBenignSize is the size above which a file is flagged regardless of
// name: 500 MiB.
const maxBenignSize = 500 * 1024 * 1024

// suspiciousExts is the fixed set of executable/script extensions,
// matched case-insensitively.
var suspiciousExts = map[string]struct{}{
	".exe": {},
	".bat": {},
	".vbs": {},
	".js":  {},
	".scr": {},
	".cmd": {},
	".dll": {},
	".com": {},
	".pif": {},
}

// IsSuspicious reports whether the file matches any heuristic: a
// suspicious extension, a double extension ending in one, a hidden-file
// leading dot, or a size above 500 MiB. Pure function of path and
// filesystem metadata.
func IsSuspicious(path string) bool {
	name := filepath.Base(path)
	ext := strings.ToLower(extension(name))

	if _, ok := suspiciousExts[ext]; ok {
		return true
	}
	// Double extension like report.txt.exe. Redundant with the check
	// above by construction, kept as explicit intent.
	if strings.Count(name, ".") > 1 {
		if _, ok := suspiciousExts[ext]; ok {
			return true
		}
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxBenignSize {
		return true
	}
	return false
}

// Classify derives the report status and reason for a file name. Later
// rules override earlier ones in this fixed order: Clean, Suspicious,
// Dangerous, Hidden. A hidden file with a dangerous double extension is
// therefore reported Hidden.
func Classify(name string) (Status, string) {
	ext := strings.ToLower(extension(name))

	status, reason := StatusClean, "-"
	if _, ok := suspiciousExts[ext]; ok {
		status, reason = StatusSuspicious, "Executable/script extension"
	}
	if strings.Count(name, ".") > 1 {
		if _, ok := suspiciousExts[ext]; ok {
			status, reason = StatusDangerous, "Double extension"
		}
	}
	if strings.HasPrefix(name, ".") {
		status, reason = StatusHidden, "Hidden file"
	}
	return status, reason
}

// extension returns the file's extension, treating a bare leading dot
// (".profile") as no extension.
func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

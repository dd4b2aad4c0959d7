// Package main is the entry point for the FolderGuard server.
//
// The server backs a folder-organization dashboard: it inventories files,
// organizes folders by extension, date, or size with an automatic backup
// first, scans for suspicious files with quarantine, and packages folders
// into archives.
//
// The server provides:
//   - REST API for folder operations via the service registry
//   - Backup snapshots with rollback
//   - Heuristic security scanning and quarantine
//   - Prometheus metrics and rate limiting
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML overlay via FOLDERGUARD_CONFIG
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

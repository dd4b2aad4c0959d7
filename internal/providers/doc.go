// Package providers implements the service provider system for FolderGuard.
//
// Service providers expose folder operations to the dashboard through a
// standardized tool-based interface. Each provider wraps one domain package
// and translates tool calls into typed operations.
//
// Available Providers:
//   - Files: Inventory of files and folders under a base path
//   - Organizer: Backup-then-organize by extension, date, or size
//   - Backup: Snapshot creation, listing, and rollback
//   - Scanner: Heuristic security scan, quarantine, and report export
//   - Archive: Zip and tar packaging of folders
//   - System: Host CPU, memory, and disk statistics
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	org := providers.NewOrganizer(organizer)
//	result, err := org.Execute(ctx, "organize.by_extension", params, opCtx)
package providers

// Package http provides HTTP handlers and routing for the FolderGuard REST API.
//
// This package implements all HTTP endpoints using the Gin framework, including
// health checks, service listing, and tool execution.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/execute
//   - Status: /status
//
// Features:
//   - JSON request/response handling
//   - Proper HTTP status codes
//   - Error response formatting
//
// Example Usage:
//
//	handlers := http.NewHandlers(registry, metrics)
//	router.GET("/health", handlers.Health)
//	router.POST("/services/execute", handlers.ExecuteService)
package http

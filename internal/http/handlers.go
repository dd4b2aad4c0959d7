package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folderguard/folderguard/internal/api/middleware"
	"github.com/folderguard/folderguard/internal/monitoring"
	"github.com/folderguard/folderguard/internal/service"
	"github.com/folderguard/folderguard/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		metrics:  metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "FolderGuard Service (Go)",
		"version": "0.2.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	})
}

// Status reports aggregate request statistics for the dashboard
func (h *Handlers) Status(c *gin.Context) {
	snapshot := h.metrics.Snapshot()

	avgDuration := 0.0
	if snapshot.RequestCount > 0 {
		avgDuration = snapshot.TotalDuration / float64(snapshot.RequestCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_requests":       snapshot.TotalRequests,
		"total_errors":         snapshot.TotalErrors,
		"avg_duration_seconds": avgDuration,
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opCtx *types.Context
	if id := middleware.GetRequestID(c); id != "" {
		opCtx = &types.Context{RequestID: &id}
	}

	serviceID, method := splitToolID(req.ToolID)
	timer := monitoring.NewTimer(h.metrics, serviceID, method)

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, opCtx)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordServiceError(serviceID, method, "execute")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Success {
		timer.Stop("success")
		h.recordOperation(req.ToolID, result)
	} else {
		timer.Stop("failure")
	}

	c.JSON(http.StatusOK, result)
}

// recordOperation bumps the domain counters for a successful tool call
func (h *Handlers) recordOperation(toolID string, result *types.Result) {
	switch {
	case toolID == "backup.create":
		h.metrics.BackupsCreated.Inc()
	case toolID == "backup.rollback":
		h.metrics.Rollbacks.Inc()
	case strings.HasPrefix(toolID, "organize."):
		h.metrics.BackupsCreated.Inc()
		h.metrics.AddFilesOrganized(intField(result, "moved"))
	case toolID == "scan.quarantine":
		h.metrics.ScansRun.Inc()
		h.metrics.AddFilesQuarantined(intField(result, "count"))
	case strings.HasPrefix(toolID, "scan."):
		h.metrics.ScansRun.Inc()
	case strings.HasPrefix(toolID, "archive."):
		h.metrics.ArchivesCreated.Inc()
	}
}

func intField(result *types.Result, name string) int {
	if result.Data == nil {
		return 0
	}
	switch v := result.Data[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func splitToolID(toolID string) (string, string) {
	if i := strings.Index(toolID, "."); i >= 0 {
		return toolID[:i], toolID[i+1:]
	}
	return toolID, ""
}

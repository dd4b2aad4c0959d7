/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the server,
tracking HTTP requests, service calls, and folder operation counts.

# Features

- HTTP request metrics (latency, throughput, size)
- Service call metrics (duration, errors)
- Folder operation counters (backups, rollbacks, organize moves, quarantines, archives)
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.BackupsCreated.Inc()
	metrics.AddFilesOrganized(12)

	// Time operations
	timer := monitoring.NewTimer(metrics, "backup", "create")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring

/*
Package monitoring provides Prometheus metrics for the script bridge.

# Overview

Each Metrics value owns its own registry so several windows (or tests) can
coexist in one process. All Record methods are safe on a nil *Metrics, so
components take metrics as an optional dependency.

# Metrics

  - webuikit_script_executions_total{backend,outcome}
  - webuikit_script_duration_seconds{backend}
  - webuikit_batch_statements (statements per flush)
  - webuikit_frames_total, webuikit_frame_duration_seconds
  - webuikit_items_drawn_total{type}
  - webuikit_handles_live
  - webuikit_ws_connections, webuikit_ws_messages_total{direction,type}
  - webuikit_http_requests_total{server,status}, webuikit_asset_bytes_total

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics, "assets"))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring

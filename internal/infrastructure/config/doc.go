// Package config provides 12-factor configuration for WebUIKit.
//
// Configuration is loaded from environment variables with defaults. CLI
// flags in cmd/webuikit override individual values.
//
// Configuration Sections:
//   - Backend: "sandbox" (in-process goja) or "remote" (browser over websocket)
//   - Window: canvas size and title
//   - Server: page and websocket listener for the remote backend
//   - Assets: binary asset server and optional preload directory
//   - Render: frame rate, clock maximum and its wrap/clamp policy
//   - Sandbox: script timeout and console capture
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("page on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
